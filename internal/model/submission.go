package model

// Submission records that a page of questions was served to a user. One row is
// written per page fetch and never mutated; scoring reads back the most recent
// row to recover how many questions were in play.
//
// swagger:model Submission
type Submission struct {
	UUIDBase
	UserID         uint   `gorm:"index;not null" json:"userId"`
	TotalQuestions int    `gorm:"not null" json:"totalQuestions"`
	Type           string `gorm:"size:50;not null" json:"type"`
}

func (Submission) TableName() string {
	return "submissions"
}
