package service

import (
	"errors"
	"fmt"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizService grades submitted answers against the question store and writes
// the history ledger.
type QuizService struct {
	McqRepo        *repository.McqRepository
	SubmissionRepo *repository.SubmissionRepository
	HistoryRepo    *repository.HistoryRepository
	DetailRepo     *repository.HistoryDetailRepository
	Certificates   *CertificateService
	DB             *gorm.DB
}

func NewQuizService(
	mcqRepo *repository.McqRepository,
	submissionRepo *repository.SubmissionRepository,
	historyRepo *repository.HistoryRepository,
	detailRepo *repository.HistoryDetailRepository,
	certificates *CertificateService,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		McqRepo:        mcqRepo,
		SubmissionRepo: submissionRepo,
		HistoryRepo:    historyRepo,
		DetailRepo:     detailRepo,
		Certificates:   certificates,
		DB:             db,
	}
}

type AnswerInput struct {
	McqID      string `json:"mcqId" binding:"required"`
	UserAnswer string `json:"userAnswer" binding:"required,oneof=a b c d A B C D"`
}

type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

type QuestionResult struct {
	McqID         string        `json:"mcqId"`
	Type          string        `json:"type"`
	Question      string        `json:"question"`
	Options       model.Options `json:"options"`
	CorrectAnswer string        `json:"correctAnswer"`
	UserAnswer    string        `json:"userAnswer"`
	IsCorrect     bool          `json:"isCorrect"`
}

type ScoredResult struct {
	HistoryID     string           `json:"historyId"`
	UserID        uint             `json:"userId"`
	TotalScore    int              `json:"totalScore"`
	TotalAttempts int              `json:"totalAttempts"`
	Percentage    float64          `json:"percentage"`
	Certificate   string           `json:"certificate"`
	AttemptedAt   time.Time        `json:"attemptedAt"`
	Details       []QuestionResult `json:"details"`
}

// SubmitAnswers scores a submission against the user's most recent attempt.
//
// The percentage denominator is the attempt's total_questions, not the number
// of answers in the request: a partial submission scores against everything
// that was served. All history rows are written in one transaction; any
// unknown mcq id aborts the whole operation with nothing persisted. The
// certificate issuer runs after commit so no transaction waits on the network.
func (s *QuizService) SubmitAnswers(userID uint, req SubmitRequest) (*ScoredResult, error) {
	attempt, err := s.SubmissionRepo.FindLatestByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	} else if err != nil {
		return nil, err
	}

	totalQuestions := attempt.TotalQuestions

	var result *ScoredResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		mcqRepo := s.McqRepo.WithTx(tx)

		totalScore := 0
		details := make([]model.UserHistoryDetail, 0, len(req.Answers))
		questionResults := make([]QuestionResult, 0, len(req.Answers))

		historyID := model.GenerateUUID()

		for _, answer := range req.Answers {
			mcq, err := mcqRepo.FindByID(answer.McqID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", util.ErrMCQNotFound, answer.McqID)
			} else if err != nil {
				return err
			}

			chosen := util.NormalizeOption(answer.UserAnswer)
			isCorrect := chosen == mcq.CorrectAnswer
			if isCorrect {
				totalScore++
			}

			details = append(details, model.UserHistoryDetail{
				UUIDBase:   model.UUIDBase{ID: model.GenerateUUID()},
				HistoryID:  historyID,
				McqID:      mcq.ID,
				UserAnswer: chosen,
				IsCorrect:  isCorrect,
			})
			questionResults = append(questionResults, QuestionResult{
				McqID:         mcq.ID,
				Type:          mcq.Type,
				Question:      mcq.Question,
				Options:       mcq.Options(),
				CorrectAnswer: mcq.CorrectAnswer,
				UserAnswer:    chosen,
				IsCorrect:     isCorrect,
			})
		}

		percentage := 0.0
		if totalQuestions > 0 {
			percentage = float64(totalScore) / float64(totalQuestions) * 100
		}

		history := &model.UserHistory{
			UUIDBase:      model.UUIDBase{ID: historyID},
			UserID:        userID,
			SubmissionID:  attempt.ID,
			TotalScore:    totalScore,
			Percentage:    percentage,
			TotalAttempts: totalQuestions,
			AttemptedAt:   time.Now(),
		}
		if err := s.HistoryRepo.WithTx(tx).Create(history); err != nil {
			return err
		}
		if err := s.DetailRepo.WithTx(tx).CreateBatch(details); err != nil {
			return err
		}

		result = &ScoredResult{
			HistoryID:     history.ID,
			UserID:        userID,
			TotalScore:    totalScore,
			TotalAttempts: totalQuestions,
			Percentage:    percentage,
			AttemptedAt:   history.AttemptedAt,
			Details:       questionResults,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: the history row is durable whatever happens from here.
	if s.Certificates != nil && s.Certificates.Enabled() {
		certificate, err := s.Certificates.IssueForHistory(result.HistoryID)
		if err != nil {
			logger.Log.Error("certificate issuance failed after commit",
				zap.String("historyId", result.HistoryID),
				zap.Error(err))
			return nil, err
		}
		result.Certificate = certificate
	}

	return result, nil
}
