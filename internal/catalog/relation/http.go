// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package relation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlebrun/otaclub/internal/platform/middleware"
	requestutil "github.com/mlebrun/otaclub/internal/platform/request"
	"github.com/mlebrun/otaclub/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/{fiche}", handler.listRelations)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/{fiche}", handler.createRelation)
		adminRoute.Delete("/{fiche}", handler.deleteRelation)
	})
}

func (handler *Handler) listRelations(writer http.ResponseWriter, request *http.Request) {
	relations, err := handler.service.ListRelations(request.Context(), requestutil.Param(request, "fiche"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, relations)
}

// relationPayload is the admin create/delete request body.
type relationPayload struct {
	IDFicheCible int64  `json:"id_fiche_cible"`
	TypeCible    string `json:"type_cible"`
}

func (handler *Handler) createRelation(writer http.ResponseWriter, request *http.Request) {
	var payload relationPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ficheKey := requestutil.Param(request, "fiche")
	if err := handler.service.CreateRelation(request.Context(), ficheKey, payload.IDFicheCible, payload.TypeCible); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Relation created")
}

func (handler *Handler) deleteRelation(writer http.ResponseWriter, request *http.Request) {
	var payload relationPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ficheKey := requestutil.Param(request, "fiche")
	if err := handler.service.DeleteRelation(request.Context(), ficheKey, payload.IDFicheCible, payload.TypeCible); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Relation deleted")
}
