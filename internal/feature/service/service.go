// Package service exposes the services a card owner offers.
package service

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/resource"
)

// Service is one offering listed on a business card.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type payload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Register wires the service routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	h := resource.NewHandler(resource.Config[Service]{
		Singular: "service",
		Plural:   "services",
		Repo:     resource.NewRepository[Service](db),
		BindCreate: func(c *gin.Context, ownerID uint) (*Service, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Service{UserID: ownerID, Title: req.Title, Description: req.Description}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Service) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			return nil
		},
	})
	resource.RegisterStandard(rg, h, auth, admin)
}
