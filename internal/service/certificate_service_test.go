package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCertificateService(t *testing.T, db *gorm.DB, issuerURL string) *CertificateService {
	t.Helper()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
	return NewCertificateService(
		repository.NewHistoryRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewUserRepository(db),
		storage,
		&config.CertificateConfig{
			IssuerURL:      issuerURL,
			RequestTimeout: 5 * time.Second,
			URLExpiry:      5 * time.Minute,
		},
	)
}

func TestIssueForHistory(t *testing.T) {
	db := setupTestDB(t)

	user := createTestUser(t, db, "alice", model.RoleUser)
	attempt := recordAttempt(t, db, user.ID, "python", 2)
	history := &model.UserHistory{
		UserID:        user.ID,
		SubmissionID:  attempt.ID,
		TotalScore:    2,
		Percentage:    100,
		TotalAttempts: 2,
		AttemptedAt:   time.Now(),
	}
	require.NoError(t, db.Create(history).Error)

	var received issueCertificateRequest
	issuer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(issueCertificateResponse{ObjectName: "certificates/alice.pdf"})
	}))
	defer issuer.Close()

	svc := newCertificateService(t, db, issuer.URL)
	assert.True(t, svc.Enabled())

	objectName, err := svc.IssueForHistory(history.ID)
	require.NoError(t, err)
	assert.Equal(t, "certificates/alice.pdf", objectName)

	assert.Equal(t, "alice", received.Name)
	assert.Equal(t, "python", received.QuizType)
	assert.InDelta(t, 100.0, received.Percentage, 0.001)

	stored, err := repository.NewHistoryRepository(db).FindByID(history.ID)
	require.NoError(t, err)
	assert.Equal(t, "certificates/alice.pdf", stored.Certificate)
}

func TestIssueForHistoryIssuerFailure(t *testing.T) {
	db := setupTestDB(t)

	user := createTestUser(t, db, "bob", model.RoleUser)
	history := &model.UserHistory{UserID: user.ID, AttemptedAt: time.Now()}
	require.NoError(t, db.Create(history).Error)

	issuer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer issuer.Close()

	svc := newCertificateService(t, db, issuer.URL)
	_, err := svc.IssueForHistory(history.ID)
	assert.ErrorIs(t, err, util.ErrCertificateIssuer)

	// The history row keeps its empty sentinel after a failed issuance.
	stored, err := repository.NewHistoryRepository(db).FindByID(history.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Certificate)
}

func TestIssueForHistoryMissingHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := newCertificateService(t, db, "http://127.0.0.1:0")

	_, err := svc.IssueForHistory("missing")
	assert.ErrorIs(t, err, util.ErrHistoryNotFound)
}

func TestResolveURLWithoutCertificate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol", model.RoleUser)
	history := &model.UserHistory{UserID: user.ID, AttemptedAt: time.Now()}
	require.NoError(t, db.Create(history).Error)

	svc := newCertificateService(t, db, "")
	assert.False(t, svc.Enabled())

	_, err := svc.ResolveURL(context.Background(), history.ID)
	assert.ErrorIs(t, err, util.ErrNoCertificate)
}

func TestResolveURL(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dave", model.RoleUser)
	history := &model.UserHistory{
		UserID:      user.ID,
		Certificate: "certificates/dave.pdf",
		AttemptedAt: time.Now(),
	}
	require.NoError(t, db.Create(history).Error)

	svc := newCertificateService(t, db, "")
	_, err := svc.Storage.Upload(context.Background(), "certificates/dave.pdf",
		strings.NewReader("pdf bytes"), 9, "application/pdf")
	require.NoError(t, err)

	url, err := svc.ResolveURL(context.Background(), history.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/certificates/dave.pdf", url)
}
