package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	mcqTypesCacheKey = "mcq:types"
	mcqTypesCacheTTL = 10 * time.Minute
)

type QuestionService struct {
	McqRepo        *repository.McqRepository
	SubmissionRepo *repository.SubmissionRepository
	Redis          *redis.Client
}

func NewQuestionService(mcqRepo *repository.McqRepository, submissionRepo *repository.SubmissionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		McqRepo:        mcqRepo,
		SubmissionRepo: submissionRepo,
		Redis:          rdb,
	}
}

type MCQCreateRequest struct {
	Type          string        `json:"type" binding:"required"`
	Question      string        `json:"question" binding:"required"`
	Options       model.Options `json:"options" binding:"required"`
	CorrectAnswer string        `json:"correctAnswer" binding:"required,oneof=a b c d"`
}

type MCQUpdateRequest struct {
	Question      *string        `json:"question"`
	Options       *model.Options `json:"options"`
	CorrectAnswer *string        `json:"correctAnswer" binding:"omitempty,oneof=a b c d"`
}

// QuestionView is an MCQ as served to a quiz taker: no correct answer.
type QuestionView struct {
	ID       string        `json:"mcqId"`
	Type     string        `json:"type"`
	Question string        `json:"question"`
	Options  model.Options `json:"options"`
}

type QuestionPage struct {
	Questions   []QuestionView `json:"questions"`
	CurrentPage int            `json:"currentPage"`
	TotalPage   int            `json:"totalPage"`
	NextPage    *int           `json:"nextPage"`
	TotalCount  int64          `json:"totalCount"`
}

// DistinctTypes returns the known question categories, cached in redis for a
// short window.
func (s *QuestionService) DistinctTypes(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, mcqTypesCacheKey).Result(); err == nil {
			var types []string
			if json.Unmarshal([]byte(cached), &types) == nil {
				return types, nil
			}
		}
	}

	types, err := s.McqRepo.DistinctTypes()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(types); err == nil {
			if err := s.Redis.Set(ctx, mcqTypesCacheKey, payload, mcqTypesCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache mcq types", zap.Error(err))
			}
		}
	}
	return types, nil
}

// CreateMCQ adds a question. The type must already exist as a category and the
// question text must be unique system-wide.
func (s *QuestionService) CreateMCQ(ctx context.Context, creatorID uint, req MCQCreateRequest) (*model.MCQ, error) {
	types, err := s.McqRepo.DistinctTypes()
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range types {
		if t == req.Type {
			known = true
			break
		}
	}
	if !known {
		return nil, util.ErrInvalidMCQType
	}

	exists, err := s.McqRepo.ExistsByQuestion(req.Question)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateQuestion
	}

	mcq := &model.MCQ{
		Type:          req.Type,
		Question:      req.Question,
		OptionA:       req.Options.A,
		OptionB:       req.Options.B,
		OptionC:       req.Options.C,
		OptionD:       req.Options.D,
		CorrectAnswer: util.NormalizeOption(req.CorrectAnswer),
		CreatedBy:     &creatorID,
	}
	if err := s.McqRepo.Create(mcq); err != nil {
		// The unique index is the backstop for concurrent creates.
		if strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return nil, util.ErrDuplicateQuestion
		}
		return nil, err
	}

	s.invalidateTypeCache(ctx)
	return mcq, nil
}

func (s *QuestionService) UpdateMCQ(id string, req MCQUpdateRequest) (*model.MCQ, error) {
	mcq, err := s.McqRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrMCQNotFound
	} else if err != nil {
		return nil, err
	}

	if req.Question != nil && *req.Question != mcq.Question {
		exists, err := s.McqRepo.ExistsByQuestion(*req.Question)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.ErrDuplicateQuestion
		}
		mcq.Question = *req.Question
	}
	if req.Options != nil {
		mcq.OptionA = req.Options.A
		mcq.OptionB = req.Options.B
		mcq.OptionC = req.Options.C
		mcq.OptionD = req.Options.D
	}
	if req.CorrectAnswer != nil {
		mcq.CorrectAnswer = util.NormalizeOption(*req.CorrectAnswer)
	}

	if err := s.McqRepo.Update(mcq); err != nil {
		return nil, err
	}
	return mcq, nil
}

func (s *QuestionService) DeleteMCQ(ctx context.Context, id string) error {
	err := s.McqRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrMCQNotFound
	}
	if err == nil {
		s.invalidateTypeCache(ctx)
	}
	return err
}

// GetQuestionPage serves one page of questions of a type and records the
// attempt. Count and page boundaries are computed before the shuffle, so
// repeated calls agree on totals but not on which questions land on a page.
func (s *QuestionService) GetQuestionPage(ctx context.Context, userID uint, mcqType string, page, pageSize int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalCount, err := s.McqRepo.CountByType(mcqType)
	if err != nil {
		return nil, err
	}
	totalPage := int((totalCount + int64(pageSize) - 1) / int64(pageSize))

	mcqs, err := s.McqRepo.FindByType(mcqType)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(mcqs), func(i, j int) {
		mcqs[i], mcqs[j] = mcqs[j], mcqs[i]
	})

	start := (page - 1) * pageSize
	if start > len(mcqs) {
		start = len(mcqs)
	}
	end := start + pageSize
	if end > len(mcqs) {
		end = len(mcqs)
	}
	paged := mcqs[start:end]

	questions := make([]QuestionView, len(paged))
	for i, m := range paged {
		questions[i] = QuestionView{
			ID:       m.ID,
			Type:     m.Type,
			Question: m.Question,
			Options:  m.Options(),
		}
	}

	submission := &model.Submission{
		UserID:         userID,
		TotalQuestions: len(paged),
		Type:           mcqType,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	var nextPage *int
	if page < totalPage {
		n := page + 1
		nextPage = &n
	}

	return &QuestionPage{
		Questions:   questions,
		CurrentPage: page,
		TotalPage:   totalPage,
		NextPage:    nextPage,
		TotalCount:  totalCount,
	}, nil
}

func (s *QuestionService) invalidateTypeCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, mcqTypesCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate mcq type cache", zap.Error(err))
	}
}
