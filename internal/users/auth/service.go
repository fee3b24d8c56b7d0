// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/sec"
	"github.com/mlebrun/otaclub/internal/platform/validate"
)

// TokenIssuer is the slice of the token service this package depends on.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username, email string, isAdmin bool) (string, error)
}

// Hasher abstracts password hashing so tests can swap the bcrypt cost out.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher is the production Hasher.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) { return sec.HashPassword(password) }
func (BcryptHasher) Compare(hash, password string) bool {
	return sec.CheckPasswordHash(password, hash)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	hasher Hasher
	logger *slog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, hasher Hasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a bcrypt-hashed account and returns a ready session.
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.UsernameExists(context, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Username already taken")
	}

	taken, err = service.repo.EmailExists(context, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	member := &Member{
		MemberName:   input.Username,
		EmailAddress: input.Email,
		Passwd:       hash,
	}
	if err := service.repo.Create(context, member); err != nil {
		return nil, err
	}
	member.ComputeIsAdmin()

	service.logger.Info("member_registered", slog.Int64("member_id", member.IDMember), slog.String("username", member.MemberName))
	return service.newSession(member)
}

// Login verifies credentials with the ordered fallback: bcrypt when the stored
// hash is a bcrypt string, otherwise the two legacy SMF digest forms. A legacy
// match upgrades the row to bcrypt so the fallback runs at most once per
// member.
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	member, err := service.repo.GetByUsername(context, input.Username)
	if err != nil {
		// A missing member reads the same as a bad password.
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == 404 {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !service.verifyPassword(context, member, input.Password) {
		service.logger.Warn("login_failed", slog.String("username", input.Username))
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	service.logger.Info("member_logged_in", slog.Int64("member_id", member.IDMember))
	return service.newSession(member)
}

// Me returns the current member's profile.
func (service *Service) Me(context context.Context, memberID int64) (*Member, error) {
	return service.repo.GetByID(context, memberID)
}

func (service *Service) verifyPassword(context context.Context, member *Member, password string) bool {
	if sec.IsBcryptHash(member.Passwd) {
		return service.hasher.Compare(member.Passwd, password)
	}

	if !sec.VerifySMFPassword(member.MemberName, password, member.PasswordSalt, member.Passwd) {
		return false
	}

	// Legacy digest verified: upgrade in place. Best effort, the login
	// succeeds either way.
	if hash, err := service.hasher.Hash(password); err == nil {
		if err := service.repo.UpdatePasswordHash(context, member.IDMember, hash); err != nil {
			service.logger.Warn("password_upgrade_failed", slog.Int64("member_id", member.IDMember), slog.Any("error", err))
		} else {
			member.Passwd = hash
			service.logger.Info("password_upgraded", slog.Int64("member_id", member.IDMember))
		}
	}

	return true
}

func (service *Service) newSession(member *Member) (*Session, error) {
	token, err := service.tokens.GenerateAccessToken(member.IDMember, member.MemberName, member.EmailAddress, member.IsAdmin)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{Token: token, User: member}, nil
}
