package model

// UserHistoryDetail is one per-question result row owned by a UserHistory.
// Rows are written in bulk with their parent and never touched again; the
// question text is recovered by joining back to mcqs at read time.
//
// swagger:model UserHistoryDetail
type UserHistoryDetail struct {
	UUIDBase
	HistoryID  string `gorm:"type:varchar(36);index;not null" json:"historyId"`
	McqID      string `gorm:"type:varchar(36);index;not null" json:"mcqId"`
	UserAnswer string `gorm:"size:1;not null" json:"userAnswer"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (UserHistoryDetail) TableName() string {
	return "user_history_details"
}
