package database

import (
	"fmt"
	"log"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the submission path relies on.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := seedSubjects(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.Subject{},
		&model.AttendanceRecord{},
		&model.Assessment{},
		&model.Question{},
		&model.Choice{},
		&model.Result{},
		&model.Answer{},
	)
}

// seedSubjects inserts a starter subject list on an empty database.
func seedSubjects(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []string{"Mathematics", "Science", "English", "Filipino", "Social Studies"}
	for _, name := range defaults {
		if err := db.Create(&model.Subject{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
