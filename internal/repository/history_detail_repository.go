package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type HistoryDetailRepository struct {
	DB *gorm.DB
}

func NewHistoryDetailRepository(db *gorm.DB) *HistoryDetailRepository {
	return &HistoryDetailRepository{DB: db}
}

func (r *HistoryDetailRepository) WithTx(tx *gorm.DB) *HistoryDetailRepository {
	return &HistoryDetailRepository{DB: tx}
}

// CreateBatch inserts all detail rows of one scored attempt.
func (r *HistoryDetailRepository) CreateBatch(details []model.UserHistoryDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.DB.Create(&details).Error
}

func (r *HistoryDetailRepository) FindByHistory(historyID string) ([]model.UserHistoryDetail, error) {
	var details []model.UserHistoryDetail
	err := r.DB.Where("history_id = ?", historyID).
		Order("created_at asc").
		Find(&details).Error
	return details, err
}
