package service

import (
	"context"
	"fmt"
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(
		repository.NewMcqRepository(db),
		repository.NewSubmissionRepository(db),
		nil,
	)
}

func seedQuestions(t *testing.T, db *gorm.DB, mcqType string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		createTestMCQ(t, db, mcqType, fmt.Sprintf("%s question %d", mcqType, i), "a")
	}
}

func TestGetQuestionPageMetadata(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	user := createTestUser(t, db, "alice", model.RoleUser)
	seedQuestions(t, db, "python", 5)

	page, err := svc.GetQuestionPage(context.Background(), user.ID, "python", 1, 2)
	require.NoError(t, err)

	assert.Len(t, page.Questions, 2)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPage)
	assert.EqualValues(t, 5, page.TotalCount)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
}

func TestGetQuestionPageLastPage(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	user := createTestUser(t, db, "bob", model.RoleUser)
	seedQuestions(t, db, "python", 5)

	page, err := svc.GetQuestionPage(context.Background(), user.ID, "python", 3, 2)
	require.NoError(t, err)

	assert.Len(t, page.Questions, 1)
	assert.Nil(t, page.NextPage)
}

func TestGetQuestionPageRecordsAttempt(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	user := createTestUser(t, db, "carol", model.RoleUser)
	seedQuestions(t, db, "java", 3)

	page, err := svc.GetQuestionPage(context.Background(), user.ID, "java", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 2)

	var attempt model.Submission
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&attempt).Error)
	assert.Equal(t, 2, attempt.TotalQuestions)
	assert.Equal(t, "java", attempt.Type)
}

func TestGetQuestionPageHidesCorrectAnswer(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	user := createTestUser(t, db, "dave", model.RoleUser)
	seedQuestions(t, db, "python", 1)

	page, err := svc.GetQuestionPage(context.Background(), user.ID, "python", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Questions, 1)

	q := page.Questions[0]
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "option a", q.Options.A)
	assert.Equal(t, "python", q.Type)
}

func TestGetQuestionPageEmptyType(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	user := createTestUser(t, db, "erin", model.RoleUser)

	page, err := svc.GetQuestionPage(context.Background(), user.ID, "fortran", 1, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Questions)
	assert.Equal(t, 0, page.TotalPage)
	assert.Nil(t, page.NextPage)

	// Even an empty serve records an attempt with zero questions.
	var attempt model.Submission
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&attempt).Error)
	assert.Equal(t, 0, attempt.TotalQuestions)
}

func TestCreateMCQUnknownType(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	seedQuestions(t, db, "python", 1)

	_, err := svc.CreateMCQ(context.Background(), admin.ID, MCQCreateRequest{
		Type:          "klingon",
		Question:      "what is qapla",
		Options:       model.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectAnswer: "a",
	})
	assert.ErrorIs(t, err, util.ErrInvalidMCQType)
}

func TestCreateMCQDuplicateQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	createTestMCQ(t, db, "python", "what is a tuple", "a")

	_, err := svc.CreateMCQ(context.Background(), admin.ID, MCQCreateRequest{
		Type:          "python",
		Question:      "what is a tuple",
		Options:       model.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectAnswer: "b",
	})
	assert.ErrorIs(t, err, util.ErrDuplicateQuestion)
}

func TestCreateMCQNormalizesAnswer(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	seedQuestions(t, db, "python", 1)

	mcq, err := svc.CreateMCQ(context.Background(), admin.ID, MCQCreateRequest{
		Type:          "python",
		Question:      "what is a dict",
		Options:       model.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectAnswer: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "c", mcq.CorrectAnswer)
	require.NotNil(t, mcq.CreatedBy)
	assert.Equal(t, admin.ID, *mcq.CreatedBy)
}

func TestDistinctTypesWithoutRedis(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	seedQuestions(t, db, "python", 2)
	seedQuestions(t, db, "java", 1)

	types, err := svc.DistinctTypes(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"python", "java"}, types)
}

func TestUpdateMCQ(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	mcq := createTestMCQ(t, db, "python", "old text", "a")

	newQ := "new text"
	newAns := "D"
	updated, err := svc.UpdateMCQ(mcq.ID, MCQUpdateRequest{Question: &newQ, CorrectAnswer: &newAns})
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Question)
	assert.Equal(t, "d", updated.CorrectAnswer)

	_, err = svc.UpdateMCQ("missing", MCQUpdateRequest{Question: &newQ})
	assert.ErrorIs(t, err, util.ErrMCQNotFound)
}

func TestDeleteMCQ(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionService(db)
	mcq := createTestMCQ(t, db, "python", "to delete", "a")

	require.NoError(t, svc.DeleteMCQ(context.Background(), mcq.ID))
	assert.ErrorIs(t, svc.DeleteMCQ(context.Background(), mcq.ID), util.ErrMCQNotFound)
}
