// Package mailing exposes the admin mail subsystem: campaign sends to one or
// many clients, with a tracking record per dispatch.
package mailing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/profile"
	jwtmw "elitecards_backend/internal/platform/jwt"
	"elitecards_backend/internal/platform/mail"
)

// Mailer dispatches campaign mail. platform/mail satisfies it.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
	SendBroadcast(ctx context.Context, bcc []string, subject, html string) (string, error)
}

// Tracking is the audit record of one campaign dispatch.
type Tracking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MessageID     string    `gorm:"size:255;uniqueIndex;not null" json:"messageId"`
	SenderEmail   string    `gorm:"size:255;index;not null" json:"senderEmail"`
	SenderRole    string    `gorm:"size:32;not null" json:"senderRole"`
	Recipients    []string  `gorm:"serializer:json" json:"recipients"`
	RecipientType string    `gorm:"size:16;index;not null" json:"recipientType"`
	Subject       string    `gorm:"size:512;not null" json:"subject"`
	SentAt        time.Time `gorm:"index" json:"sentAt"`
	ClientIDs     []uint    `gorm:"serializer:json" json:"clientIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type singleRequest struct {
	ClientID uint   `json:"clientId" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

type groupRequest struct {
	ClientIDs []uint `json:"clientIds" binding:"required,min=1"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type handler struct {
	db     *gorm.DB
	mailer Mailer
}

// sender resolves the authenticated admin for the tracking record.
func (h *handler) sender(c *gin.Context) (email, role string) {
	role = jwtmw.Role(c)
	var u entity.User
	if err := h.db.WithContext(c.Request.Context()).Select("email").First(&u, jwtmw.UserID(c)).Error; err != nil {
		return "", role
	}
	return u.Email, role
}

// track persists the dispatch record. A tracking failure is logged and never
// fails the send that already happened.
func (h *handler) track(c *gin.Context, t *Tracking) {
	if err := h.db.WithContext(c.Request.Context()).Create(t).Error; err != nil {
		slog.Error("failed to save mail tracking record", "messageId", t.MessageID, "error", err)
	}
}

// sendSingle handles POST /send-single: a campaign mail to one client.
func (h *handler) sendSingle(c *gin.Context) {
	var req singleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	ctx := c.Request.Context()

	var client entity.User
	err := h.db.WithContext(ctx).First(&client, req.ClientID).Error
	if err != nil || client.Role != entity.RoleClient {
		api.Fail(c, http.StatusNotFound, "Client not found", nil)
		return
	}

	// The client's profile name personalizes the greeting when present.
	var name string
	var p profile.Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", req.ClientID).First(&p).Error; err == nil {
		name = p.Name
	}

	body := mail.CampaignBody(client.Email, name, req.Subject, req.Message)
	messageID, err := h.mailer.Send(ctx, client.Email, req.Subject, body)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Failed to send mail", err)
		return
	}

	senderEmail, senderRole := h.sender(c)
	h.track(c, &Tracking{
		MessageID:     messageID,
		SenderEmail:   senderEmail,
		SenderRole:    senderRole,
		Recipients:    []string{client.Email},
		RecipientType: "single",
		Subject:       req.Subject,
		SentAt:        time.Now(),
		ClientIDs:     []uint{req.ClientID},
	})

	api.OK(c, http.StatusOK, fmt.Sprintf("Mail sent to %s", client.Email), gin.H{
		"messageId": messageID,
		"sender":    fmt.Sprintf("%s (%s)", senderEmail, senderRole),
	})
}

// sendGroup handles POST /send-group: one broadcast to every valid client in
// the list. Non-client and unknown ids are silently dropped.
func (h *handler) sendGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	ctx := c.Request.Context()

	var clients []entity.User
	if err := h.db.WithContext(ctx).Where("id IN ? AND role = ?", req.ClientIDs, entity.RoleClient).Find(&clients).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Failed to send group mail", err)
		return
	}
	if len(clients) == 0 {
		api.Fail(c, http.StatusNotFound, "No valid clients found", nil)
		return
	}

	emails := make([]string, 0, len(clients))
	ids := make([]uint, 0, len(clients))
	for _, cl := range clients {
		emails = append(emails, cl.Email)
		ids = append(ids, cl.ID)
	}

	body := mail.CampaignBody("multiple recipients", "Valued Client", req.Subject, req.Message)
	messageID, err := h.mailer.SendBroadcast(ctx, emails, req.Subject, body)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Failed to send group mail", err)
		return
	}

	senderEmail, senderRole := h.sender(c)
	h.track(c, &Tracking{
		MessageID:     messageID,
		SenderEmail:   senderEmail,
		SenderRole:    senderRole,
		Recipients:    emails,
		RecipientType: "group",
		Subject:       req.Subject,
		SentAt:        time.Now(),
		ClientIDs:     ids,
	})

	api.OK(c, http.StatusOK, fmt.Sprintf("Group mail sent to %d clients", len(emails)), gin.H{
		"messageId": messageID,
		"emails":    emails,
		"sender":    fmt.Sprintf("%s (%s)", senderEmail, senderRole),
	})
}

// list handles GET /: the tracking log, newest first, with optional
// senderEmail and recipientType filters and page/limit pagination.
func (h *handler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	query := h.db.WithContext(c.Request.Context()).Model(&Tracking{})
	if v := c.Query("senderEmail"); v != "" {
		query = query.Where("sender_email = ?", v)
	}
	if v := c.Query("recipientType"); v != "" {
		query = query.Where("recipient_type = ?", v)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Failed to fetch sent mails", err)
		return
	}
	var mails []Tracking
	if err := query.Order("sent_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&mails).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Failed to fetch sent mails", err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	api.OK(c, http.StatusOK, "", gin.H{
		"mails":       mails,
		"totalPages":  totalPages,
		"currentPage": page,
		"totalMails":  total,
	})
}

// get handles GET /:id.
func (h *handler) get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid id", err)
		return
	}
	var t Tracking
	if err := h.db.WithContext(c.Request.Context()).First(&t, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			api.Fail(c, http.StatusNotFound, "Mail tracking record not found", nil)
		} else {
			api.Fail(c, http.StatusInternalServerError, "Failed to fetch sent mail", err)
		}
		return
	}
	api.OK(c, http.StatusOK, "", t)
}

// Register wires the mail routes onto the group. Everything is admin-only.
func Register(rg *gin.RouterGroup, db *gorm.DB, mailer Mailer, auth, admin gin.HandlerFunc) {
	h := &handler{db: db, mailer: mailer}

	rg.POST("/send-single", auth, admin, h.sendSingle)
	rg.POST("/send-group", auth, admin, h.sendGroup)
	rg.GET("/tracking", auth, admin, h.list)
	rg.GET("/tracking/:id", auth, admin, h.get)
}
