package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

// sortableHistoryColumns is the allowlist for the sort_by query parameter.
// Unknown fields are ignored rather than rejected.
var sortableHistoryColumns = map[string]bool{
	"total_score":    true,
	"percentage":     true,
	"total_attempts": true,
	"attempted_at":   true,
	"created_at":     true,
}

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) WithTx(tx *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: tx}
}

func (r *HistoryRepository) Create(history *model.UserHistory) error {
	return r.DB.Create(history).Error
}

func (r *HistoryRepository) FindByID(id string) (*model.UserHistory, error) {
	var history model.UserHistory
	err := r.DB.Where("id = ?", id).First(&history).Error
	return &history, err
}

func (r *HistoryRepository) FindAllByUser(userID uint, sortBy, order string) ([]model.UserHistory, error) {
	query := r.DB.Where("user_id = ?", userID)

	if sortBy != "" && sortableHistoryColumns[sortBy] {
		direction := "asc"
		if order == "desc" {
			direction = "desc"
		}
		query = query.Order(sortBy + " " + direction)
	}

	var histories []model.UserHistory
	err := query.Find(&histories).Error
	return histories, err
}

// SetCertificate applies the issued certificate reference to a history row.
// Safe to repeat: the update writes the same single column each time.
func (r *HistoryRepository) SetCertificate(historyID, certificate string) error {
	return r.DB.Model(&model.UserHistory{}).
		Where("id = ?", historyID).
		Update("certificate", certificate).Error
}
