// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sso

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/sec"
	"github.com/mlebrun/otaclub/internal/users/auth"
)

// Authenticator is the slice of the auth service the SSO flow needs. Going
// through Login keeps the legacy-hash upgrade behaviour on this path too.
type Authenticator interface {
	Login(context context.Context, input auth.LoginInput) (*auth.Session, error)
}

type Service struct {
	signer *sec.SSOSigner
	authn  Authenticator
	logger *slog.Logger
}

func NewService(signer *sec.SSOSigner, authn Authenticator, logger *slog.Logger) *Service {
	return &Service{signer: signer, authn: authn, logger: logger}
}

// DecodeRequest validates the signature of an incoming SSO payload and
// extracts the nonce and return URL.
//
// The signature check is constant-time; a single flipped bit in either the
// payload or the signature rejects the request.
func (service *Service) DecodeRequest(payload, sig string) (*LoginRequest, error) {
	fields, err := service.signer.DecodePayload(payload, sig)
	if err != nil {
		service.logger.Warn("sso_invalid_signature", slog.Any("error", err))
		return nil, apperr.Unauthorized("Invalid SSO signature")
	}

	request := &LoginRequest{
		Nonce:     fields.Get("nonce"),
		ReturnURL: fields.Get("return_sso_url"),
	}
	if request.Nonce == "" || request.ReturnURL == "" {
		return nil, apperr.ValidationError("SSO payload is missing nonce or return URL")
	}

	return request, nil
}

// Authenticate verifies the incoming payload and the member's credentials,
// then builds the signed response payload Discourse expects.
func (service *Service) Authenticate(context context.Context, input AuthenticateInput) (*Result, error) {
	request, err := service.DecodeRequest(input.SSO, input.Sig)
	if err != nil {
		return nil, err
	}

	session, err := service.authn.Login(context, auth.LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	member := session.User

	fields := url.Values{}
	fields.Set("nonce", request.Nonce)
	fields.Set("external_id", strconv.FormatInt(member.IDMember, 10))
	fields.Set("email", member.EmailAddress)
	fields.Set("username", member.MemberName)
	fields.Set("name", member.MemberName)
	fields.Set("admin", strconv.FormatBool(member.IsAdmin))
	fields.Set("moderator", strconv.FormatBool(member.IsAdmin))

	payload, sig := service.signer.EncodePayload(fields)

	redirect, err := url.Parse(request.ReturnURL)
	if err != nil {
		return nil, apperr.ValidationError("SSO return URL is not a valid URL")
	}
	query := redirect.Query()
	query.Set("sso", payload)
	query.Set("sig", sig)
	redirect.RawQuery = query.Encode()

	service.logger.Info("sso_authenticated", slog.Int64("member_id", member.IDMember))
	return &Result{RedirectURL: redirect.String()}, nil
}
