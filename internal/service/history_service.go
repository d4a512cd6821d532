package service

import (
	"errors"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

// HistoryService reads the immutable ledger back out.
type HistoryService struct {
	HistoryRepo *repository.HistoryRepository
	DetailRepo  *repository.HistoryDetailRepository
	McqRepo     *repository.McqRepository
}

func NewHistoryService(historyRepo *repository.HistoryRepository, detailRepo *repository.HistoryDetailRepository, mcqRepo *repository.McqRepository) *HistoryService {
	return &HistoryService{
		HistoryRepo: historyRepo,
		DetailRepo:  detailRepo,
		McqRepo:     mcqRepo,
	}
}

type HistorySummary struct {
	HistoryID     string  `json:"historyId"`
	UserID        uint    `json:"userId"`
	TotalScore    int     `json:"totalScore"`
	Percentage    float64 `json:"percentage"`
	TotalAttempts int     `json:"totalAttempts"`
	Certificate   string  `json:"certificate"`
	AttemptedAt   string  `json:"attemptedAt"`
}

func (s *HistoryService) ListByUser(userID uint, sortBy, order string) ([]HistorySummary, error) {
	histories, err := s.HistoryRepo.FindAllByUser(userID, sortBy, order)
	if err != nil {
		return nil, err
	}

	summaries := make([]HistorySummary, len(histories))
	for i, h := range histories {
		summaries[i] = summarize(&h)
	}
	return summaries, nil
}

// ViewParticularHistory rebuilds the full per-question result of one scored
// attempt. Details store only the chosen letter and correctness flag; the
// question text and options come from a read-time join against the question
// store, soft-deleted questions included.
func (s *HistoryService) ViewParticularHistory(callerID uint, callerRole model.UserRole, historyID string) (*ScoredResult, error) {
	history, err := s.getOwned(callerID, callerRole, historyID)
	if err != nil {
		return nil, err
	}

	details, err := s.DetailRepo.FindByHistory(history.ID)
	if err != nil {
		return nil, err
	}

	questionResults := make([]QuestionResult, len(details))
	for i, d := range details {
		mcq, err := s.McqRepo.FindByIDAny(d.McqID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMCQNotFound
		} else if err != nil {
			return nil, err
		}
		questionResults[i] = QuestionResult{
			McqID:         mcq.ID,
			Type:          mcq.Type,
			Question:      mcq.Question,
			Options:       mcq.Options(),
			CorrectAnswer: mcq.CorrectAnswer,
			UserAnswer:    d.UserAnswer,
			IsCorrect:     d.IsCorrect,
		}
	}

	return &ScoredResult{
		HistoryID:     history.ID,
		UserID:        history.UserID,
		TotalScore:    history.TotalScore,
		TotalAttempts: history.TotalAttempts,
		Percentage:    history.Percentage,
		Certificate:   history.Certificate,
		AttemptedAt:   history.AttemptedAt,
		Details:       questionResults,
	}, nil
}

// GetHistory returns the aggregate row, owner or admin only.
func (s *HistoryService) GetHistory(callerID uint, callerRole model.UserRole, historyID string) (*model.UserHistory, error) {
	return s.getOwned(callerID, callerRole, historyID)
}

func (s *HistoryService) getOwned(callerID uint, callerRole model.UserRole, historyID string) (*model.UserHistory, error) {
	history, err := s.HistoryRepo.FindByID(historyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHistoryNotFound
	} else if err != nil {
		return nil, err
	}

	if history.UserID != callerID && callerRole != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}
	return history, nil
}

func summarize(h *model.UserHistory) HistorySummary {
	return HistorySummary{
		HistoryID:     h.ID,
		UserID:        h.UserID,
		TotalScore:    h.TotalScore,
		Percentage:    h.Percentage,
		TotalAttempts: h.TotalAttempts,
		Certificate:   h.Certificate,
		AttemptedAt:   h.AttemptedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
