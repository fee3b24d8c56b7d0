// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package sso implements the Discourse single sign-on (SSO) provider side.

The forum delegates authentication to the API: Discourse redirects the
browser here with a signed payload carrying a nonce, the API verifies the
member's credentials and sends the browser back with a signed response
payload identifying the member.
*/
package sso

// LoginRequest is a decoded, signature-checked incoming SSO request.
type LoginRequest struct {
	Nonce     string `json:"nonce"`
	ReturnURL string `json:"return_url"`
}

// AuthenticateInput is the payload of POST /sso/authenticate.
type AuthenticateInput struct {
	SSO      string `json:"sso"`
	Sig      string `json:"sig"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Result carries the signed redirect Discourse expects after a successful
// authentication.
type Result struct {
	RedirectURL string `json:"redirect_url"`
}
