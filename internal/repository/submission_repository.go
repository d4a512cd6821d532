package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) WithTx(tx *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: tx}
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("id = ?", id).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

// FindLatestByUser returns the most recently created attempt row for a user.
// No attempt id is threaded through the client, so scoring keys off creation
// order alone; two page fetches before a submit race with last-write-wins.
func (r *SubmissionRepository) FindLatestByUser(userID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindAllByUser(userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&submissions).Error
	return submissions, err
}
