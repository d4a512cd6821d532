package service

import (
	"testing"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22hunter22")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createTestUser(t, db, "alice", model.RoleUser)

	_, err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hunter22hunter22",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createTestUser(t, db, "alice", model.RoleUser)

	_, err := svc.Register(RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "correct-horse-battery",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	token, err := svc.Login("bob", "correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Login("carol", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredential)

	_, err = svc.Login("nobody", "correct-horse-battery")
	assert.ErrorIs(t, err, util.ErrInvalidCredential)
}
