package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/academics-api/internal/models"
	"github.com/campuskit/academics-api/pkg/config"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type userRepoStub struct {
	user       *models.User
	passwords  map[string]string
	lastLogins int
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *userRepoStub) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if s.passwords == nil {
		s.passwords = make(map[string]string)
	}
	s.passwords[id] = passwordHash
	return nil
}

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogins++
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "academics-api"}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	repo := &userRepoStub{user: &models.User{
		ID:                 "u1",
		Username:           "20CS042",
		PasswordHash:       hashOf(t, "20CS042"),
		Role:               models.RoleStudent,
		MustChangePassword: true,
		Active:             true,
	}}
	svc := NewAuthService(repo, testJWTConfig(), nil, zap.NewNop())

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "20CS042", Password: "20CS042"})

	require.NoError(t, err)
	assert.True(t, result.MustChangePassword)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.Equal(t, 1, repo.lastLogins)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &userRepoStub{user: &models.User{
		ID: "u1", Username: "20CS042", PasswordHash: hashOf(t, "correct"), Active: true,
	}}
	svc := NewAuthService(repo, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "20CS042", Password: "wrong"})

	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &userRepoStub{user: &models.User{
		ID: "u1", Username: "EMP01", PasswordHash: hashOf(t, "EMP01"), Active: false,
	}}
	svc := NewAuthService(repo, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "EMP01", Password: "EMP01"})

	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&userRepoStub{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")

	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := &userRepoStub{user: &models.User{
		ID: "u1", Username: "20CS042", PasswordHash: hashOf(t, "old-password"), Active: true,
	}}
	svc := NewAuthService(repo, testJWTConfig(), nil, zap.NewNop())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new-password-1",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	err = svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "old-password", NewPassword: "new-password-1",
	})
	require.NoError(t, err)
	require.Contains(t, repo.passwords, "u1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwords["u1"]), []byte("new-password-1")))
}
