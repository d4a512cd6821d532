package service

import (
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	user := createTestUser(t, db, "alice", model.RoleUser)
	createTestUser(t, db, "bob", model.RoleUser)

	newName := "alice2"
	adminRole := model.RoleAdmin
	updated, err := svc.UpdateUser(user.ID, UserUpdateRequest{Username: &newName, Role: &adminRole})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	taken := "bob"
	_, err = svc.UpdateUser(user.ID, UserUpdateRequest{Username: &taken})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	takenEmail := "bob@example.com"
	_, err = svc.UpdateUser(user.ID, UserUpdateRequest{Email: &takenEmail})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = svc.UpdateUser(9999, UserUpdateRequest{Username: &newName})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	user := createTestUser(t, db, "carol", model.RoleUser)
	require.NoError(t, svc.DeleteUser(user.ID))
	assert.ErrorIs(t, svc.DeleteUser(user.ID), util.ErrUserNotFound)

	_, err := svc.GetUser(user.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
