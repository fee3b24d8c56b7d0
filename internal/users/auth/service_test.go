// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/sec"
)

type fakeRepository struct {
	members map[int64]*Member
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{members: map[int64]*Member{}, nextID: 1}
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, apperr.NotFound("Member")
	}
	copy := *member
	return &copy, nil
}

func (f *fakeRepository) GetByUsername(_ context.Context, username string) (*Member, error) {
	for _, member := range f.members {
		if strings.EqualFold(member.MemberName, username) {
			copy := *member
			return &copy, nil
		}
	}
	return nil, apperr.NotFound("Member")
}

func (f *fakeRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, member := range f.members {
		if strings.EqualFold(member.MemberName, username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, member := range f.members {
		if strings.EqualFold(member.EmailAddress, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, member *Member) error {
	member.IDMember = f.nextID
	f.nextID++
	member.DateRegistered = 1700000000
	copy := *member
	f.members[member.IDMember] = &copy
	return nil
}

func (f *fakeRepository) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	member, ok := f.members[id]
	if !ok {
		return apperr.NotFound("Member")
	}
	member.Passwd = hash
	member.PasswordSalt = ""
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) GenerateAccessToken(userID int64, username, _ string, _ bool) (string, error) {
	return "tok-" + username, nil
}

// fakeHasher produces strings that pass sec.IsBcryptHash without paying
// bcrypt's cost in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "$2a$fake$" + password, nil }
func (fakeHasher) Compare(hash, password string) bool   { return hash == "$2a$fake$"+password }

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, fakeIssuer{}, fakeHasher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegister(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	session, err := service.Register(context.Background(), RegisterInput{
		Username: "kaori",
		Email:    "kaori@example.org",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-kaori", session.Token)
	assert.Equal(t, int64(1), session.User.IDMember)
	assert.False(t, session.User.IsAdmin)

	stored := repo.members[1]
	assert.True(t, sec.IsBcryptHash(stored.Passwd), "password must be stored hashed")
	assert.Empty(t, stored.PasswordSalt)
}

func TestRegister_IssuesJWT(t *testing.T) {
	repo := newFakeRepository()
	tokens, err := sec.NewTokenService("test-secret-at-least-32-characters!!", "otaclub.test", time.Hour)
	require.NoError(t, err)
	service := NewService(repo, tokens, fakeHasher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	session, err := service.Register(context.Background(), RegisterInput{
		Username: "alice123",
		Email:    "a@b.com",
		Password: "secret17",
	})
	require.NoError(t, err)

	assert.Len(t, strings.Split(session.Token, "."), 3, "token must be a compact JWT")
	assert.Equal(t, "alice123", session.User.MemberName)

	claims, err := tokens.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.IDMember, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{Username: "kaori", Email: "a@example.org", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{Username: "KAORI", Email: "b@example.org", Password: "correct-horse"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{Username: "kaori", Email: "same@example.org", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{Username: "ryo", Email: "same@example.org", Password: "correct-horse"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Register(context.Background(), RegisterInput{Username: "ab", Email: "nope", Password: "short"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
}

func TestLogin_Bcrypt(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{Username: "kaori", Email: "kaori@example.org", Password: "correct-horse"})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), LoginInput{Username: "kaori", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "tok-kaori", session.Token)

	_, err = service.Login(context.Background(), LoginInput{Username: "kaori", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	// Unknown member is indistinguishable from a bad password.
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogin_LegacySMFUpgrade(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	// Seed a member carried over from the forum, still on a salted SHA-1.
	repo.members[7] = &Member{
		IDMember:     7,
		MemberName:   "veteran",
		EmailAddress: "veteran@example.org",
		Passwd:       sec.SMF2Hash("veteran", "old-forum-pass", "abcd"),
		PasswordSalt: "abcd",
	}

	session, err := service.Login(context.Background(), LoginInput{Username: "veteran", Password: "old-forum-pass"})
	require.NoError(t, err)
	assert.Equal(t, "tok-veteran", session.Token)

	// The stored credential must now be bcrypt, salt cleared.
	stored := repo.members[7]
	assert.True(t, sec.IsBcryptHash(stored.Passwd))
	assert.Empty(t, stored.PasswordSalt)

	// Second login takes the bcrypt path against the upgraded hash.
	_, err = service.Login(context.Background(), LoginInput{Username: "veteran", Password: "old-forum-pass"})
	require.NoError(t, err)
}

func TestLogin_LegacySMFUnsalted(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	repo.members[8] = &Member{
		IDMember:     8,
		MemberName:   "ancien",
		EmailAddress: "ancien@example.org",
		Passwd:       sec.SMF1Hash("ancien", "tres-vieux"),
	}

	_, err := service.Login(context.Background(), LoginInput{Username: "ancien", Password: "tres-vieux"})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Username: "ancien", Password: "faux"})
	require.Error(t, err)
}

func TestComputeIsAdmin(t *testing.T) {
	admin := &Member{IDGroup: AdminGroupID}
	admin.ComputeIsAdmin()
	assert.True(t, admin.IsAdmin)

	regular := &Member{IDGroup: 0}
	regular.ComputeIsAdmin()
	assert.False(t, regular.IsAdmin)
}
