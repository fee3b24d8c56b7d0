// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlebrun/otaclub/internal/platform/cache"
	"github.com/mlebrun/otaclub/internal/platform/middleware"
	requestutil "github.com/mlebrun/otaclub/internal/platform/request"
	"github.com/mlebrun/otaclub/internal/platform/respond"
	"github.com/mlebrun/otaclub/internal/platform/upload"
	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/convert"
	"github.com/mlebrun/otaclub/pkg/pagination"
)

type Handler struct {
	service *Service
	cache   *cache.Store
	uploads *upload.Saver
}

func NewHandler(service *Service, cacheStore *cache.Store, uploads *upload.Saver) *Handler {
	return &Handler{service: service, cache: cacheStore, uploads: uploads}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.With(cache.Middleware(handler.cache, CachePrefix)).Get("/", handler.listAnimes)
	router.Get("/by-url/{niceUrl}", handler.getAnimeByNiceURL)
	router.Get("/{id}", handler.getAnime)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createAnime)
		adminRoute.Put("/{id}", handler.updateAnime)
		adminRoute.Delete("/{id}", handler.deleteAnime)
		adminRoute.Post("/{id}/screenshot", handler.uploadScreenshot)
	})
}

func (handler *Handler) listAnimes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search:    queryParams.Get("search"),
		Year:      convert.ToInt(queryParams.Get("year")),
		Studio:    queryParams.Get("studio"),
		TagID:     convert.ToInt64(queryParams.Get("tag")),
		Sort:      queryParams.Get("sort"),
		Direction: queryParams.Get("direction"),
	}

	animes, total, err := handler.service.ListAnimes(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, animes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAnime(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetAnime(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getAnimeByNiceURL(writer http.ResponseWriter, request *http.Request) {
	niceURL := requestutil.Param(request, "niceUrl")

	result, err := handler.service.GetAnimeByNiceURL(request.Context(), niceURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) createAnime(writer http.ResponseWriter, request *http.Request) {
	var input Anime
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAnime(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAnime(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Anime
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateAnime(request.Context(), animeID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteAnime(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAnime(request.Context(), animeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Anime archived")
}

func (handler *Handler) uploadScreenshot(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(upload.MaxUploadSize); err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Invalid multipart payload"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Missing file field"))
		return
	}
	defer file.Close()

	filename, err := handler.uploads.Save(file, header, "anime-screenshot")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AttachScreenshot(request.Context(), animeID, filename); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"image": filename})
}
