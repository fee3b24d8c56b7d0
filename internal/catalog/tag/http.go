// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlebrun/otaclub/internal/platform/middleware"
	requestutil "github.com/mlebrun/otaclub/internal/platform/request"
	"github.com/mlebrun/otaclub/internal/platform/respond"
	"github.com/mlebrun/otaclub/pkg/pagination"
	"github.com/mlebrun/otaclub/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listTags)
	router.Get("/{id}", handler.getTag)
	router.Get("/fiche/{type}/{ficheId}", handler.listTagsForFiche)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createTag)
		adminRoute.Put("/{id}", handler.updateTag)
		adminRoute.Delete("/{id}", handler.deleteTag)
		adminRoute.Post("/{id}/attach", handler.attach)
		adminRoute.Post("/{id}/detach", handler.detach)
	})
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search:     queryParams.Get("search"),
		Categories: query.StringSlice(queryParams.Get("categorie")),
	}

	tags, total, err := handler.service.ListTags(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tags, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetTag(request.Context(), tagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) listTagsForFiche(writer http.ResponseWriter, request *http.Request) {
	ficheID, err := requestutil.IntParam(request, "ficheId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.ListTagsForFiche(request.Context(), ficheID, requestutil.Param(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input Tag
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTag(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Tag
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateTag(request.Context(), tagID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTag(request.Context(), tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// linkPayload is the attach/detach request body.
type linkPayload struct {
	FicheID int64  `json:"fiche_id"`
	Type    string `json:"type"`
}

func (handler *Handler) attach(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload linkPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link := Link{TagID: tagID, FicheID: payload.FicheID, Type: payload.Type}
	if err := handler.service.Attach(request.Context(), link); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Tag attached")
}

func (handler *Handler) detach(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload linkPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link := Link{TagID: tagID, FicheID: payload.FicheID, Type: payload.Type}
	if err := handler.service.Detach(request.Context(), link); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Tag detached")
}
