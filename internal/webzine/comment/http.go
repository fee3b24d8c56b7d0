// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlebrun/otaclub/internal/platform/middleware"
	requestutil "github.com/mlebrun/otaclub/internal/platform/request"
	"github.com/mlebrun/otaclub/internal/platform/respond"
	"github.com/mlebrun/otaclub/pkg/convert"
	"github.com/mlebrun/otaclub/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterArticleRoutes mounts the per-article comment surface under
// /articles/{id}/comments.
func (handler *Handler) RegisterArticleRoutes(router chi.Router) {
	router.Get("/{id}/comments", handler.listComments)
	router.Post("/{id}/comments", handler.createComment)
}

// RegisterAdminRoutes mounts the moderation surface under /comments.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Get("/", handler.listModerationQueue)
		adminRoute.Patch("/{id}", handler.moderateComment)
		adminRoute.Delete("/{id}", handler.deleteComment)
	})
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	comments, total, err := handler.service.ListApprovedComments(request.Context(), articleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Anonymous posting is allowed; claims only upgrade the moderation default.
	var userID *int64
	var userName string
	if claims := requestutil.Claims(request); claims != nil {
		userID = &claims.UserID
		userName = claims.Username
	}

	result, err := handler.service.CreateComment(request.Context(), articleID, userID, userName, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) listModerationQueue(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	moderation := convert.ToIntD(request.URL.Query().Get("moderation"), ModerationPending)

	comments, total, err := handler.service.ListModerationQueue(request.Context(), moderation, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// moderationPayload is the PATCH body for a moderation transition.
type moderationPayload struct {
	Moderation int `json:"moderation"`
}

func (handler *Handler) moderateComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload moderationPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Moderate(request.Context(), commentID, payload.Moderation)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
