package model

import "time"

// UserHistory is the persisted aggregate result of scoring one attempt.
// Created exactly once per scoring operation; only the certificate reference
// may be set afterwards, by the issuance follow-up update.
//
// swagger:model UserHistory
type UserHistory struct {
	UUIDBase
	UserID        uint      `gorm:"index;not null" json:"userId"`
	SubmissionID  string    `gorm:"type:varchar(36);index" json:"submissionId"`
	TotalScore    int       `gorm:"not null" json:"totalScore"`
	Percentage    float64   `gorm:"not null" json:"percentage"`
	TotalAttempts int       `gorm:"not null" json:"totalAttempts"`
	Certificate   string    `gorm:"size:255;default:''" json:"certificate"`
	AttemptedAt   time.Time `json:"attemptedAt"`

	Details []UserHistoryDetail `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (UserHistory) TableName() string {
	return "user_histories"
}
