package database

import (
	"fmt"
	"log"

	"school_backend/internal/config"
	"school_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Migrations run automatically outside release mode; in release they
	// need the -migrate flag.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.Category{},
		&model.Teacher{},
		&model.Parent{},
		&model.Student{},
		&model.Lesson{},
		&model.LessonTopic{},
		&model.Assignment{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamResponse{},
		&model.ExamAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the default subject categories on an empty database.
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []string{
			"Matematik",
			"Fen Bilimleri",
			"Türkçe",
			"Sosyal Bilgiler",
			"İngilizce",
		}
		for _, name := range defaultCategories {
			db.Create(&model.Category{Name: name})
		}
	}

	return db, nil
}
