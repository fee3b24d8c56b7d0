// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package business

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlebrun/otaclub/internal/platform/cache"
	"github.com/mlebrun/otaclub/internal/platform/middleware"
	requestutil "github.com/mlebrun/otaclub/internal/platform/request"
	"github.com/mlebrun/otaclub/internal/platform/respond"
	"github.com/mlebrun/otaclub/pkg/pagination"
)

type Handler struct {
	service *Service
	cache   *cache.Store
}

func NewHandler(service *Service, cacheStore *cache.Store) *Handler {
	return &Handler{service: service, cache: cacheStore}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.With(cache.Middleware(handler.cache, CachePrefix)).Get("/", handler.listBusinesses)
	router.Get("/{id}", handler.getBusiness)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createBusiness)
		adminRoute.Put("/{id}", handler.updateBusiness)
		adminRoute.Delete("/{id}", handler.deleteBusiness)
	})
}

func (handler *Handler) listBusinesses(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search:    queryParams.Get("search"),
		Type:      queryParams.Get("type"),
		Origine:   queryParams.Get("origine"),
		Sort:      queryParams.Get("sort"),
		Direction: queryParams.Get("direction"),
	}

	businesses, total, err := handler.service.ListBusinesses(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, businesses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBusiness(writer http.ResponseWriter, request *http.Request) {
	businessID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetBusiness(request.Context(), businessID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) createBusiness(writer http.ResponseWriter, request *http.Request) {
	var input Business
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBusiness(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBusiness(writer http.ResponseWriter, request *http.Request) {
	businessID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Business
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBusiness(request.Context(), businessID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBusiness(writer http.ResponseWriter, request *http.Request) {
	businessID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBusiness(request.Context(), businessID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
