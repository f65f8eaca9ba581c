// Package appointment exposes appointments booked through a card. Creating
// one notifies the card owner by mail.
package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/resource"
	"elitecards_backend/internal/platform/mail"
)

// Mailer dispatches the booking notification. platform/mail satisfies it.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// Appointment is one booking made via the public card page.
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	ClientName      string    `gorm:"size:255;not null" json:"clientName"`
	Phone           string    `gorm:"size:64;not null" json:"phone"`
	AppointmentDate time.Time `gorm:"not null" json:"appointmentDate"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type payload struct {
	ClientName      string    `json:"clientName" binding:"required"`
	Phone           string    `json:"phone" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Notes           string    `json:"notes"`
}

type patch struct {
	ClientName      *string    `json:"clientName"`
	Phone           *string    `json:"phone"`
	AppointmentDate *time.Time `json:"appointmentDate"`
	Notes           *string    `json:"notes"`
}

// Register wires the appointment routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, mailer Mailer, auth, admin gin.HandlerFunc) {
	h := resource.NewHandler(resource.Config[Appointment]{
		Singular: "appointment",
		Plural:   "appointments",
		Repo:     resource.NewRepository[Appointment](db),
		BindCreate: func(c *gin.Context, ownerID uint) (*Appointment, error) {
			var req payload
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, err
			}
			return &Appointment{
				UserID:          ownerID,
				ClientName:      req.ClientName,
				Phone:           req.Phone,
				AppointmentDate: req.AppointmentDate,
				Notes:           req.Notes,
			}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Appointment) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.ClientName != nil {
				e.ClientName = *req.ClientName
			}
			if req.Phone != nil {
				e.Phone = *req.Phone
			}
			if req.AppointmentDate != nil {
				e.AppointmentDate = *req.AppointmentDate
			}
			if req.Notes != nil {
				e.Notes = *req.Notes
			}
			return nil
		},
		AfterCreate: func(c *gin.Context, e *Appointment) {
			notifyOwner(c.Request.Context(), db, mailer, e)
		},
	})
	resource.RegisterStandard(rg, h, auth, admin)
}

// notifyOwner mails the card owner about the new booking. A delivery failure
// is logged; the booking itself already succeeded.
func notifyOwner(ctx context.Context, db *gorm.DB, mailer Mailer, a *Appointment) {
	var owner entity.User
	if err := db.WithContext(ctx).Select("email").First(&owner, a.UserID).Error; err != nil {
		slog.Error("failed to resolve appointment owner", "userId", a.UserID, "error", err)
		return
	}
	if owner.Email == "" {
		return
	}
	body := mail.AppointmentBody(owner.Email, a.ClientName, a.Phone, a.AppointmentDate, a.Notes)
	if _, err := mailer.Send(ctx, owner.Email, mail.AppointmentSubject, body); err != nil {
		slog.Error("failed to send appointment notification", "to", owner.Email, "error", err)
	}
}
