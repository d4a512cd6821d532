package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type McqRepository struct {
	DB *gorm.DB
}

func NewMcqRepository(db *gorm.DB) *McqRepository {
	return &McqRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *McqRepository) WithTx(tx *gorm.DB) *McqRepository {
	return &McqRepository{DB: tx}
}

func (r *McqRepository) Create(mcq *model.MCQ) error {
	return r.DB.Create(mcq).Error
}

func (r *McqRepository) FindByID(id string) (*model.MCQ, error) {
	var mcq model.MCQ
	err := r.DB.Where("id = ?", id).First(&mcq).Error
	return &mcq, err
}

// FindByIDAny also matches soft-deleted questions. History reconstruction
// must keep working after an admin removes a question from circulation.
func (r *McqRepository) FindByIDAny(id string) (*model.MCQ, error) {
	var mcq model.MCQ
	err := r.DB.Unscoped().Where("id = ?", id).First(&mcq).Error
	return &mcq, err
}

func (r *McqRepository) FindByType(mcqType string) ([]model.MCQ, error) {
	var mcqs []model.MCQ
	query := r.DB.Model(&model.MCQ{})
	if mcqType != "" {
		query = query.Where("type = ?", mcqType)
	}
	err := query.Find(&mcqs).Error
	return mcqs, err
}

func (r *McqRepository) CountByType(mcqType string) (int64, error) {
	var count int64
	query := r.DB.Model(&model.MCQ{})
	if mcqType != "" {
		query = query.Where("type = ?", mcqType)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *McqRepository) DistinctTypes() ([]string, error) {
	var types []string
	err := r.DB.Model(&model.MCQ{}).Distinct("type").Order("type asc").Pluck("type", &types).Error
	return types, err
}

func (r *McqRepository) ExistsByQuestion(question string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.MCQ{}).Where("question = ?", question).Count(&count).Error
	return count > 0, err
}

func (r *McqRepository) Update(mcq *model.MCQ) error {
	return r.DB.Save(mcq).Error
}

func (r *McqRepository) Delete(id string) error {
	res := r.DB.Where("id = ?", id).Delete(&model.MCQ{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
