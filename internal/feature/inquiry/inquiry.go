// Package inquiry exposes the public contact form. Inquiries have no owner:
// anyone can submit one, only admins can read or delete them.
package inquiry

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
)

// Inquiry is one submission of the contact form.
type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255;not null" json:"fullName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type payload struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Message  string `json:"message" binding:"required"`
}

type handler struct {
	db *gorm.DB
}

// create handles POST /. No authentication; this backs the public site form.
func (h *handler) create(c *gin.Context) {
	var req payload
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	inq := Inquiry{FullName: req.FullName, Email: req.Email, Phone: req.Phone, Message: req.Message}
	if err := h.db.WithContext(c.Request.Context()).Create(&inq).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error submitting inquiry", err)
		return
	}
	api.OK(c, http.StatusCreated, "Inquiry submitted successfully", inq)
}

// list handles GET /, newest first.
func (h *handler) list(c *gin.Context) {
	var inquiries []Inquiry
	if err := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching inquiries", err)
		return
	}
	api.OK(c, http.StatusOK, "", inquiries)
}

func (h *handler) find(c *gin.Context) (*Inquiry, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid id", err)
		return nil, false
	}
	var inq Inquiry
	if err := h.db.WithContext(c.Request.Context()).First(&inq, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			api.Fail(c, http.StatusNotFound, "Inquiry not found", nil)
		} else {
			api.Fail(c, http.StatusInternalServerError, "Error fetching inquiry", err)
		}
		return nil, false
	}
	return &inq, true
}

// get handles GET /:id.
func (h *handler) get(c *gin.Context) {
	inq, ok := h.find(c)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", inq)
}

// delete handles DELETE /:id.
func (h *handler) delete(c *gin.Context) {
	inq, ok := h.find(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Delete(inq).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error deleting inquiry", err)
		return
	}
	api.OK(c, http.StatusOK, "Inquiry deleted successfully", nil)
}

// Register wires the inquiry routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, auth, admin gin.HandlerFunc) {
	h := &handler{db: db}

	rg.POST("", h.create)

	rg.GET("", auth, admin, h.list)
	rg.GET("/:id", auth, admin, h.get)
	rg.DELETE("/:id", auth, admin, h.delete)
}
