// Package db opens the Postgres connection shared by every feature.
package db

import (
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/appointment"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/gallery"
	"elitecards_backend/internal/feature/inquiry"
	"elitecards_backend/internal/feature/mailing"
	"elitecards_backend/internal/feature/product"
	"elitecards_backend/internal/feature/profile"
	"elitecards_backend/internal/feature/service"
	"elitecards_backend/internal/feature/student"
	"elitecards_backend/internal/feature/studentprofile"
	"elitecards_backend/internal/feature/testimonial"
	"elitecards_backend/internal/platform/config"
)

// Open connects to Postgres, retrying for up to a minute so the server
// survives a database that is still starting. TranslateError lets the
// adapters match gorm.ErrDuplicatedKey across drivers.
func Open(cfg config.Config) *gorm.DB {
	var (
		conn *gorm.DB
		err  error
	)
	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(gpostgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := conn.AutoMigrate(
			&entity.User{},
			&profile.Profile{},
			&studentprofile.StudentProfile{},
			&student.Skill{},
			&student.Education{},
			&student.Experience{},
			&student.Project{},
			&student.Achievement{},
			&student.Award{},
			&gallery.Item{},
			&product.Product{},
			&service.Service{},
			&testimonial.Testimonial{},
			&appointment.Appointment{},
			&inquiry.Inquiry{},
			&mailing.Tracking{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}
