// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sso

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Get("/", handler.request)
	router.Post("/authenticate", handler.authenticate)
}

// request validates the redirect Discourse just made and hands the nonce and
// return URL to the login page.
func (handler *Handler) request(writer http.ResponseWriter, request *http.Request) {
	loginRequest, err := handler.service.DecodeRequest(
		request.URL.Query().Get("sso"),
		request.URL.Query().Get("sig"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginRequest)
}

func (handler *Handler) authenticate(writer http.ResponseWriter, request *http.Request) {
	var input AuthenticateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Authenticate(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
