package service

import (
	"context"
	"errors"
	"fmt"

	"quiz_backend/internal/config"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CertificateService bridges a scored history to the external certificate
// issuer and resolves stored references to short-lived download URLs.
type CertificateService struct {
	HistoryRepo    *repository.HistoryRepository
	SubmissionRepo *repository.SubmissionRepository
	UserRepo       *repository.UserRepository
	Storage        *StorageService
	Cfg            *config.CertificateConfig
	client         *resty.Client
}

func NewCertificateService(
	historyRepo *repository.HistoryRepository,
	submissionRepo *repository.SubmissionRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	cfg *config.CertificateConfig,
) *CertificateService {
	client := resty.New()
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}
	return &CertificateService{
		HistoryRepo:    historyRepo,
		SubmissionRepo: submissionRepo,
		UserRepo:       userRepo,
		Storage:        storage,
		Cfg:            cfg,
		client:         client,
	}
}

func (s *CertificateService) Enabled() bool {
	return s.Cfg.IssuerURL != ""
}

type issueCertificateRequest struct {
	Name       string  `json:"name"`
	QuizType   string  `json:"quiz_type"`
	Percentage float64 `json:"percentage"`
}

type issueCertificateResponse struct {
	ObjectName string `json:"object_name"`
}

// IssueForHistory asks the issuer for a certificate and applies the returned
// object reference to the history row. Runs outside any open transaction, and
// re-running it just overwrites the reference with a fresh one.
func (s *CertificateService) IssueForHistory(historyID string) (string, error) {
	history, err := s.HistoryRepo.FindByID(historyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrHistoryNotFound
	} else if err != nil {
		return "", err
	}

	user, err := s.UserRepo.FindByID(history.UserID)
	if err != nil {
		return "", err
	}

	quizType := ""
	if history.SubmissionID != "" {
		if attempt, err := s.SubmissionRepo.FindByID(history.SubmissionID); err == nil {
			quizType = attempt.Type
		}
	}

	resp, err := s.client.R().
		SetBody(issueCertificateRequest{
			Name:       user.Username,
			QuizType:   quizType,
			Percentage: history.Percentage,
		}).
		SetResult(&issueCertificateResponse{}).
		Post(s.Cfg.IssuerURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrCertificateIssuer, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: issuer returned %s", util.ErrCertificateIssuer, resp.Status())
	}

	objectName := resp.Result().(*issueCertificateResponse).ObjectName
	if objectName == "" {
		return "", fmt.Errorf("%w: issuer returned empty object name", util.ErrCertificateIssuer)
	}

	if err := s.HistoryRepo.SetCertificate(history.ID, objectName); err != nil {
		return "", err
	}

	logger.Log.Info("certificate issued",
		zap.String("historyId", history.ID),
		zap.String("objectName", objectName))
	return objectName, nil
}

// ResolveURL returns a short-lived download URL for the certificate stored on
// a history record. The empty string is the "not yet generated" sentinel.
func (s *CertificateService) ResolveURL(ctx context.Context, historyID string) (string, error) {
	history, err := s.HistoryRepo.FindByID(historyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrHistoryNotFound
	} else if err != nil {
		return "", err
	}

	if history.Certificate == "" {
		return "", util.ErrNoCertificate
	}

	url, err := s.Storage.PresignedURL(ctx, history.Certificate, s.Cfg.URLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrCertificateIssuer, err)
	}
	return url, nil
}
