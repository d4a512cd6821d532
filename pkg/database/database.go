package database

import (
	"fmt"
	"log"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.MCQ{},
		&model.Submission{},
		&model.UserHistory{},
		&model.UserHistoryDetail{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedMCQs(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedMCQs inserts the starter question set when the mcqs table is empty.
// Question categories only exist as distinct values over stored questions, so
// the seed is what makes the fixed types (python/java/csharp) available for
// create-time validation.
func SeedMCQs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.MCQ{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []model.MCQ{
		{
			Type:          "python",
			Question:      "Which keyword defines a function in Python?",
			OptionA:       "func",
			OptionB:       "def",
			OptionC:       "function",
			OptionD:       "lambda",
			CorrectAnswer: "b",
		},
		{
			Type:          "python",
			Question:      "What is the output of len(\"quiz\")?",
			OptionA:       "3",
			OptionB:       "5",
			OptionC:       "4",
			OptionD:       "TypeError",
			CorrectAnswer: "c",
		},
		{
			Type:          "java",
			Question:      "Which keyword is used to inherit a class in Java?",
			OptionA:       "extends",
			OptionB:       "implements",
			OptionC:       "inherits",
			OptionD:       "super",
			CorrectAnswer: "a",
		},
		{
			Type:          "java",
			Question:      "What is the default value of an uninitialized int field in Java?",
			OptionA:       "null",
			OptionB:       "undefined",
			OptionC:       "1",
			OptionD:       "0",
			CorrectAnswer: "d",
		},
		{
			Type:          "csharp",
			Question:      "Which access modifier makes a C# member visible only within its own assembly?",
			OptionA:       "private",
			OptionB:       "internal",
			OptionC:       "protected",
			OptionD:       "public",
			CorrectAnswer: "b",
		},
		{
			Type:          "csharp",
			Question:      "Which keyword declares a read-only field assigned at construction in C#?",
			OptionA:       "readonly",
			OptionB:       "const",
			OptionC:       "sealed",
			OptionD:       "static",
			CorrectAnswer: "a",
		},
	}

	for i := range starter {
		if err := db.Create(&starter[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d starter MCQs", len(starter))
	return nil
}
