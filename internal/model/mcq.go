package model

// Options holds the four labeled choices of an MCQ.
type Options struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// swagger:model MCQ
type MCQ struct {
	UUIDBase
	Type          string `gorm:"size:50;index;not null" json:"type"`
	Question      string `gorm:"size:500;uniqueIndex;not null" json:"question"`
	OptionA       string `gorm:"size:255;not null" json:"-"`
	OptionB       string `gorm:"size:255;not null" json:"-"`
	OptionC       string `gorm:"size:255;not null" json:"-"`
	OptionD       string `gorm:"size:255;not null" json:"-"`
	CorrectAnswer string `gorm:"size:1;not null" json:"correctAnswer"`
	CreatedBy     *uint  `gorm:"index" json:"createdBy,omitempty"`
}

func (MCQ) TableName() string {
	return "mcqs"
}

func (m *MCQ) Options() Options {
	return Options{A: m.OptionA, B: m.OptionB, C: m.OptionC, D: m.OptionD}
}

// OptionFor returns the choice text for a letter, empty when the letter is unknown.
func (m *MCQ) OptionFor(letter string) string {
	switch letter {
	case "a":
		return m.OptionA
	case "b":
		return m.OptionB
	case "c":
		return m.OptionC
	case "d":
		return m.OptionD
	}
	return ""
}
