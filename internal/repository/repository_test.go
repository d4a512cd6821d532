package repository

import (
	"testing"
	"time"

	"quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
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

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

func TestSubmissionFindLatestByUser(t *testing.T) {
	db := setupDB(t)
	repo := NewSubmissionRepository(db)

	now := time.Now()
	first := &model.Submission{UserID: 1, TotalQuestions: 3, Type: "python"}
	mustCreate(t, db, first)
	require.NoError(t, db.Model(first).Update("created_at", now.Add(-2*time.Hour)).Error)

	second := &model.Submission{UserID: 1, TotalQuestions: 7, Type: "java"}
	mustCreate(t, db, second)
	require.NoError(t, db.Model(second).Update("created_at", now.Add(-time.Hour)).Error)

	// Another user's newer attempt must not leak in.
	other := &model.Submission{UserID: 2, TotalQuestions: 9, Type: "python"}
	mustCreate(t, db, other)

	latest, err := repo.FindLatestByUser(1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 7, latest.TotalQuestions)

	_, err = repo.FindLatestByUser(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHistorySortAllowlist(t *testing.T) {
	db := setupDB(t)
	repo := NewHistoryRepository(db)

	for i, score := range []int{5, 2, 9} {
		mustCreate(t, db, &model.UserHistory{
			UserID:      1,
			TotalScore:  score,
			AttemptedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}

	histories, err := repo.FindAllByUser(1, "total_score", "desc")
	require.NoError(t, err)
	require.Len(t, histories, 3)
	assert.Equal(t, 9, histories[0].TotalScore)
	assert.Equal(t, 2, histories[2].TotalScore)

	// Unknown column falls back to unsorted rather than erroring.
	histories, err = repo.FindAllByUser(1, "certificate; --", "desc")
	require.NoError(t, err)
	assert.Len(t, histories, 3)

	// Anything but desc sorts ascending.
	histories, err = repo.FindAllByUser(1, "total_score", "sideways")
	require.NoError(t, err)
	assert.Equal(t, 2, histories[0].TotalScore)
}

func TestHistorySetCertificateIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewHistoryRepository(db)

	history := &model.UserHistory{UserID: 1, AttemptedAt: time.Now()}
	mustCreate(t, db, history)

	require.NoError(t, repo.SetCertificate(history.ID, "certificates/abc.pdf"))
	require.NoError(t, repo.SetCertificate(history.ID, "certificates/abc.pdf"))

	stored, err := repo.FindByID(history.ID)
	require.NoError(t, err)
	assert.Equal(t, "certificates/abc.pdf", stored.Certificate)
}

func TestMcqFindByIDAnyIncludesSoftDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewMcqRepository(db)

	mcq := &model.MCQ{
		Type:          "python",
		Question:      "soft delete survivor",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "a",
	}
	mustCreate(t, db, mcq)
	require.NoError(t, repo.Delete(mcq.ID))

	_, err := repo.FindByID(mcq.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByIDAny(mcq.ID)
	require.NoError(t, err)
	assert.Equal(t, "soft delete survivor", found.Question)
}

func TestMcqDistinctTypesExcludesDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewMcqRepository(db)

	keep := &model.MCQ{Type: "python", Question: "kept", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "a"}
	gone := &model.MCQ{Type: "cobol", Question: "gone", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "a"}
	mustCreate(t, db, keep)
	mustCreate(t, db, gone)
	require.NoError(t, repo.Delete(gone.ID))

	types, err := repo.DistinctTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, types)
}

func TestMcqDeleteMissing(t *testing.T) {
	db := setupDB(t)
	repo := NewMcqRepository(db)
	assert.ErrorIs(t, repo.Delete("missing"), gorm.ErrRecordNotFound)
}

func TestUserDeleteMissing(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	assert.ErrorIs(t, repo.Delete(12345), gorm.ErrRecordNotFound)
}

func TestHistoryDetailFindByHistory(t *testing.T) {
	db := setupDB(t)
	repo := NewHistoryDetailRepository(db)

	history := &model.UserHistory{UserID: 1, AttemptedAt: time.Now()}
	mustCreate(t, db, history)

	details := []model.UserHistoryDetail{
		{HistoryID: history.ID, McqID: model.GenerateUUID(), UserAnswer: "a", IsCorrect: true},
		{HistoryID: history.ID, McqID: model.GenerateUUID(), UserAnswer: "c", IsCorrect: false},
	}
	require.NoError(t, repo.CreateBatch(details))

	found, err := repo.FindByHistory(history.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindByHistory("other-history")
	require.NoError(t, err)
	assert.Empty(t, found)
}
