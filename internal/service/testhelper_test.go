package service

import (
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.MCQ{},
		&model.Submission{},
		&model.UserHistory{},
		&model.UserHistoryDetail{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMCQ(t *testing.T, db *gorm.DB, mcqType, question, correct string) *model.MCQ {
	t.Helper()
	mcq := &model.MCQ{
		Type:          mcqType,
		Question:      question,
		OptionA:       "option a",
		OptionB:       "option b",
		OptionC:       "option c",
		OptionD:       "option d",
		CorrectAnswer: correct,
	}
	require.NoError(t, db.Create(mcq).Error)
	return mcq
}
