// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package auth implements member accounts on top of the legacy SMF forum table.

New accounts are hashed with bcrypt. Legacy rows keep their SMF SHA-1 digests
and verify through the ordered fallback in the sec package; the first
successful bcrypt-era login transparently upgrades the stored hash.
*/
package auth

// AdminGroupID is the SMF member group that carries admin rights.
const AdminGroupID = 1

// Member mirrors a row of the legacy forum member table. Credential columns
// never serialize.
type Member struct {
	IDMember       int64  `json:"id"`
	MemberName     string `json:"username"`
	EmailAddress   string `json:"email"`
	Passwd         string `json:"-"`
	PasswordSalt   string `json:"-"`
	IDGroup        int    `json:"-"`
	DateRegistered int64  `json:"date_registered"`
	Posts          int    `json:"posts"`
	IsAdmin        bool   `json:"is_admin"`
}

// ComputeIsAdmin derives the admin flag from the member group. Rights live in
// the database row, not in code.
func (m *Member) ComputeIsAdmin() {
	m.IsAdmin = m.IDGroup == AdminGroupID
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for authentication.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the response to a successful register or login.
type Session struct {
	Token string  `json:"token"`
	User  *Member `json:"user"`
}

// Global field names for validation
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
