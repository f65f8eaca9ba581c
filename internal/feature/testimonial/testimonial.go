// Package testimonial exposes client testimonials shown on a card.
package testimonial

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/resource"
)

// Testimonial is one piece of feedback displayed on a business card.
type Testimonial struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	TestimonialName string    `gorm:"size:255;not null" json:"testimonialName"`
	Feedback        string    `gorm:"not null" json:"feedback"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type payload struct {
	TestimonialName string `json:"testimonialName" binding:"required"`
	Feedback        string `json:"feedback" binding:"required"`
}

type patch struct {
	TestimonialName *string `json:"testimonialName"`
	Feedback        *string `json:"feedback"`
}

// Register wires the testimonial routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	h := resource.NewHandler(resource.Config[Testimonial]{
		Singular: "testimonial",
		Plural:   "testimonials",
		Repo:     resource.NewRepository[Testimonial](db),
		BindCreate: func(c *gin.Context, ownerID uint) (*Testimonial, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Testimonial{UserID: ownerID, TestimonialName: req.TestimonialName, Feedback: req.Feedback}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Testimonial) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.TestimonialName != nil {
				e.TestimonialName = *req.TestimonialName
			}
			if req.Feedback != nil {
				e.Feedback = *req.Feedback
			}
			return nil
		},
	})
	resource.RegisterStandard(rg, h, auth, admin)
}
