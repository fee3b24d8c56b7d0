// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package manga

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
	router.With(cache.Middleware(handler.cache, CachePrefix)).Get("/", handler.listMangas)
	router.Get("/by-url/{niceUrl}", handler.getMangaByNiceURL)
	router.Get("/{id}", handler.getManga)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.createManga)
		adminRoute.Put("/{id}", handler.updateManga)
		adminRoute.Delete("/{id}", handler.deleteManga)
		adminRoute.Post("/{id}/cover", handler.uploadCover)
	})
}

func (handler *Handler) listMangas(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search:    queryParams.Get("search"),
		Year:      convert.ToInt(queryParams.Get("year")),
		Auteur:    queryParams.Get("auteur"),
		TagID:     convert.ToInt64(queryParams.Get("tag")),
		Sort:      queryParams.Get("sort"),
		Direction: queryParams.Get("direction"),
	}

	mangas, total, err := handler.service.ListMangas(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, mangas, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetManga(request.Context(), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getMangaByNiceURL(writer http.ResponseWriter, request *http.Request) {
	niceURL := requestutil.Param(request, "niceUrl")

	result, err := handler.service.GetMangaByNiceURL(request.Context(), niceURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {
	var input Manga
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateManga(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateManga(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Manga
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateManga(request.Context(), mangaID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteManga(request.Context(), mangaID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Manga archived")
}

func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.IntParam(request, "id")
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

	filename, err := handler.uploads.Save(file, header, "manga-cover")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AttachCover(request.Context(), mangaID, filename); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"image": filename})
}
