// Package studentprofile exposes the student card profile. Like the client
// profile it is one row per user, but every owner route is gated to the
// student role and the public read aggregates the portfolio sub-resources.
package studentprofile

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/resource"
	jwtmw "elitecards_backend/internal/platform/jwt"
)

// SocialMedia holds the per-network links on a student card. Students get a
// GitHub link instead of the client WhatsApp one.
type SocialMedia struct {
	Facebook  string `gorm:"size:512" json:"facebook"`
	Instagram string `gorm:"size:512" json:"instagram"`
	Twitter   string `gorm:"size:512" json:"twitter"`
	YouTube   string `gorm:"size:512" json:"youtube"`
	LinkedIn  string `gorm:"size:512" json:"linkedin"`
	GitHub    string `gorm:"size:512" json:"github"`
}

// StudentProfile is the student card profile. One row per user.
type StudentProfile struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"uniqueIndex;not null" json:"userId"`
	FullName    string      `gorm:"size:255;not null" json:"fullName"`
	Email       string      `gorm:"size:255;not null" json:"email"`
	About       string      `json:"about"`
	Phone1      string      `gorm:"size:64" json:"phone1"`
	Phone2      string      `gorm:"size:64" json:"phone2"`
	Location    string      `gorm:"size:255" json:"location"`
	DOB         *time.Time  `json:"dob"`
	SocialMedia SocialMedia `gorm:"embedded;embeddedPrefix:social_" json:"socialMedia"`
	ProfilePic  string      `gorm:"size:512" json:"profilePic"`
	BannerPic   string      `gorm:"size:512" json:"bannerPic"`
	TemplateID  string      `gorm:"size:64;default:template1" json:"templateId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type payload struct {
	FullName    string      `json:"fullName" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	About       string      `json:"about"`
	Phone1      string      `json:"phone1"`
	Phone2      string      `json:"phone2"`
	Location    string      `json:"location"`
	DOB         *time.Time  `json:"dob"`
	SocialMedia SocialMedia `json:"socialMedia"`
	ProfilePic  string      `json:"profilePic"`
	BannerPic   string      `json:"bannerPic"`
	TemplateID  string      `json:"templateId"`
}

type patch struct {
	FullName    *string      `json:"fullName"`
	Email       *string      `json:"email"`
	About       *string      `json:"about"`
	Phone1      *string      `json:"phone1"`
	Phone2      *string      `json:"phone2"`
	Location    *string      `json:"location"`
	DOB         *time.Time   `json:"dob"`
	SocialMedia *SocialMedia `json:"socialMedia"`
	TemplateID  *string      `json:"templateId"`
}

func (req *patch) apply(p *StudentProfile) {
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.About != nil {
		p.About = *req.About
	}
	if req.Phone1 != nil {
		p.Phone1 = *req.Phone1
	}
	if req.Phone2 != nil {
		p.Phone2 = *req.Phone2
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.DOB != nil {
		p.DOB = req.DOB
	}
	if req.SocialMedia != nil {
		p.SocialMedia = *req.SocialMedia
	}
	if req.TemplateID != nil {
		p.TemplateID = *req.TemplateID
	}
}

type handler struct {
	db    *gorm.DB
	blobs resource.BlobStore
}

func (h *handler) requireStudent(c *gin.Context, action string) bool {
	if jwtmw.Role(c) != entity.RoleStudent {
		api.Fail(c, http.StatusForbidden, "Only students can "+action, nil)
		return false
	}
	return true
}

func (h *handler) findByUser(c *gin.Context, userID uint) (*StudentProfile, bool) {
	var p StudentProfile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			api.Fail(c, http.StatusNotFound, "Student profile not found", nil)
		} else {
			api.Fail(c, http.StatusInternalServerError, "Error fetching student profile", err)
		}
		return nil, false
	}
	return &p, true
}

// create handles POST /.
func (h *handler) create(c *gin.Context) {
	if !h.requireStudent(c, "create student profiles") {
		return
	}
	var req payload
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	userID := jwtmw.UserID(c)

	var existing StudentProfile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		api.Fail(c, http.StatusBadRequest, "Student profile already exists for this user", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		api.Fail(c, http.StatusInternalServerError, "Error creating student profile", err)
		return
	}

	p := StudentProfile{
		UserID:      userID,
		FullName:    req.FullName,
		Email:       req.Email,
		About:       req.About,
		Phone1:      req.Phone1,
		Phone2:      req.Phone2,
		Location:    req.Location,
		DOB:         req.DOB,
		SocialMedia: req.SocialMedia,
		ProfilePic:  req.ProfilePic,
		BannerPic:   req.BannerPic,
		TemplateID:  req.TemplateID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error creating student profile", err)
		return
	}
	api.OK(c, http.StatusCreated, "Student profile created successfully", p)
}

// getMine handles GET /me.
func (h *handler) getMine(c *gin.Context) {
	if !h.requireStudent(c, "access student profiles") {
		return
	}
	p, ok := h.findByUser(c, jwtmw.UserID(c))
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", p)
}

// updateMine handles PUT /me.
func (h *handler) updateMine(c *gin.Context) {
	if !h.requireStudent(c, "update student profiles") {
		return
	}
	var req patch
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	p, ok := h.findByUser(c, jwtmw.UserID(c))
	if !ok {
		return
	}
	req.apply(p)
	if err := h.db.WithContext(c.Request.Context()).Save(p).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error updating student profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Student profile updated successfully", p)
}

// deleteMine handles DELETE /me.
func (h *handler) deleteMine(c *gin.Context) {
	if !h.requireStudent(c, "delete student profiles") {
		return
	}
	p, ok := h.findByUser(c, jwtmw.UserID(c))
	if !ok {
		return
	}
	h.deleteImages(c, p)
	if err := h.db.WithContext(c.Request.Context()).Delete(p).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error deleting student profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Student profile deleted successfully", nil)
}

func (h *handler) deleteImages(c *gin.Context, p *StudentProfile) {
	for _, url := range []string{p.ProfilePic, p.BannerPic} {
		if err := h.blobs.DeleteByURL(c.Request.Context(), url); err != nil {
			slog.Error("failed to delete student profile image", "url", url, "error", err)
		}
	}
}

// uploadPic serves both picture routes; field selects the column.
// When no profile exists yet the URL comes back alone for use at create time.
func (h *handler) uploadPic(field string, scope string) gin.HandlerFunc {
	label := "Profile"
	if field == "bannerPic" {
		label = "Banner"
	}
	return func(c *gin.Context) {
		if !h.requireStudent(c, "upload "+label+" pictures") {
			return
		}
		file, err := c.FormFile(field)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, "No file uploaded", err)
			return
		}
		url, err := resource.UploadFormFile(c.Request.Context(), h.blobs, scope, file)
		if err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading "+field, err)
			return
		}

		var p StudentProfile
		dbErr := h.db.WithContext(c.Request.Context()).Where("user_id = ?", jwtmw.UserID(c)).First(&p).Error
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			api.OK(c, http.StatusOK, label+" picture uploaded successfully", gin.H{field: url})
			return
		}
		if dbErr != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading "+field, dbErr)
			return
		}

		old := p.ProfilePic
		if field == "bannerPic" {
			old = p.BannerPic
			p.BannerPic = url
		} else {
			p.ProfilePic = url
		}
		if err := h.db.WithContext(c.Request.Context()).Save(&p).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading "+field, err)
			return
		}
		if err := h.blobs.DeleteByURL(c.Request.Context(), old); err != nil {
			slog.Error("failed to delete replaced picture", "url", old, "error", err)
		}
		api.OK(c, http.StatusOK, label+" picture uploaded successfully", gin.H{field: url})
	}
}

// Register wires the student profile routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	h := &handler{db: db, blobs: blobs}

	rg.POST("", auth, h.create)
	rg.POST("/upload/profile-pic", auth, h.uploadPic("profilePic", "studentProfilePic"))
	rg.POST("/upload/banner-pic", auth, h.uploadPic("bannerPic", "studentBannerPic"))
	rg.PUT("/upload/profile-pic", auth, h.uploadPic("profilePic", "studentProfilePic"))
	rg.PUT("/upload/banner-pic", auth, h.uploadPic("bannerPic", "studentBannerPic"))
	rg.GET("/me", auth, h.getMine)
	rg.PUT("/me", auth, h.updateMine)
	rg.DELETE("/me", auth, h.deleteMine)

	rg.GET("/public/:id", h.getPublic)

	rg.GET("", auth, admin, h.listAll)
	rg.GET("/:id", auth, admin, h.getStudent)
	rg.PUT("/:id", auth, admin, h.updateStudent)
	rg.DELETE("/:id", auth, admin, h.deleteStudent)
}
