// Package profile exposes the client card profile. Each user has at most one
// profile; the owner routes address it implicitly via /me.
package profile

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

// SocialMedia holds the per-network links shown on a card.
type SocialMedia struct {
	Facebook  string `gorm:"size:512" json:"facebook"`
	Instagram string `gorm:"size:512" json:"instagram"`
	Twitter   string `gorm:"size:512" json:"twitter"`
	LinkedIn  string `gorm:"size:512" json:"linkedin"`
	YouTube   string `gorm:"size:512" json:"youtube"`
	WhatsApp  string `gorm:"size:512" json:"whatsapp"`
}

// Profile is the client card profile. One row per user.
type Profile struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"uniqueIndex;not null" json:"userId"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Profession  string      `gorm:"size:255" json:"profession"`
	About       string      `json:"about"`
	Phone1      string      `gorm:"size:64" json:"phone1"`
	Phone2      string      `gorm:"size:64" json:"phone2"`
	Location    string      `gorm:"size:255" json:"location"`
	DOB         *time.Time  `json:"dob"`
	SocialMedia SocialMedia `gorm:"embedded;embeddedPrefix:social_" json:"socialMedia"`
	WebsiteLink string      `gorm:"size:512" json:"websiteLink"`
	AppLink     string      `gorm:"size:512" json:"appLink"`
	TemplateID  string      `gorm:"size:64;default:template1" json:"templateId"`
	ProfileImg  string      `gorm:"size:512" json:"profileImg"`
	BannerImg   string      `gorm:"size:512" json:"bannerImg"`
	Gmail       string      `gorm:"size:255" json:"gmail"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// profileView is a profile enriched with the account email for owner and
// admin reads.
type profileView struct {
	Profile
	Email string `json:"email,omitempty"`
}

// publicView is the anonymous card page projection. Phone numbers and the
// account email stay private.
type publicView struct {
	Name        string      `json:"name"`
	Profession  string      `json:"profession"`
	About       string      `json:"about"`
	Location    string      `json:"location"`
	DOB         *time.Time  `json:"dob"`
	SocialMedia SocialMedia `json:"socialMedia"`
	WebsiteLink string      `json:"websiteLink"`
	AppLink     string      `json:"appLink"`
	TemplateID  string      `json:"templateId"`
	ProfileImg  string      `json:"profileImg"`
	BannerImg   string      `json:"bannerImg"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func publicProjection(p *Profile) publicView {
	return publicView{
		Name:        p.Name,
		Profession:  p.Profession,
		About:       p.About,
		Location:    p.Location,
		DOB:         p.DOB,
		SocialMedia: p.SocialMedia,
		WebsiteLink: p.WebsiteLink,
		AppLink:     p.AppLink,
		TemplateID:  p.TemplateID,
		ProfileImg:  p.ProfileImg,
		BannerImg:   p.BannerImg,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type payload struct {
	Name        string      `json:"name" binding:"required"`
	Profession  string      `json:"profession"`
	About       string      `json:"about"`
	Phone1      string      `json:"phone1"`
	Phone2      string      `json:"phone2"`
	Location    string      `json:"location"`
	DOB         *time.Time  `json:"dob"`
	SocialMedia SocialMedia `json:"socialMedia"`
	WebsiteLink string      `json:"websiteLink"`
	AppLink     string      `json:"appLink"`
	TemplateID  string      `json:"templateId"`
	ProfileImg  string      `json:"profileImg"`
	BannerImg   string      `json:"bannerImg"`
	Gmail       string      `json:"gmail"`
}

type patch struct {
	Name        *string      `json:"name"`
	Profession  *string      `json:"profession"`
	About       *string      `json:"about"`
	Phone1      *string      `json:"phone1"`
	Phone2      *string      `json:"phone2"`
	Location    *string      `json:"location"`
	DOB         *time.Time   `json:"dob"`
	SocialMedia *SocialMedia `json:"socialMedia"`
	WebsiteLink *string      `json:"websiteLink"`
	AppLink     *string      `json:"appLink"`
	TemplateID  *string      `json:"templateId"`
	Gmail       *string      `json:"gmail"`
}

func (req *patch) apply(p *Profile) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Profession != nil {
		p.Profession = *req.Profession
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
	if req.WebsiteLink != nil {
		p.WebsiteLink = *req.WebsiteLink
	}
	if req.AppLink != nil {
		p.AppLink = *req.AppLink
	}
	if req.TemplateID != nil {
		p.TemplateID = *req.TemplateID
	}
	if req.Gmail != nil {
		p.Gmail = *req.Gmail
	}
}

// handler serves the profile HTTP surface.
type handler struct {
	db    *gorm.DB
	blobs resource.BlobStore
}

func (h *handler) findByUser(c *gin.Context, userID uint) (*Profile, bool) {
	var p Profile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			api.Fail(c, http.StatusNotFound, "Profile not found", nil)
		} else {
			api.Fail(c, http.StatusInternalServerError, "Error fetching profile", err)
		}
		return nil, false
	}
	return &p, true
}

// accountEmail looks up the owner's account email for the enriched views.
// A lookup failure degrades to an empty email rather than failing the read.
func (h *handler) accountEmail(c *gin.Context, userID uint) string {
	var u entity.User
	if err := h.db.WithContext(c.Request.Context()).Select("email").First(&u, userID).Error; err != nil {
		return ""
	}
	return u.Email
}

func (h *handler) view(c *gin.Context, p *Profile) profileView {
	return profileView{Profile: *p, Email: h.accountEmail(c, p.UserID)}
}

// create handles POST /. A second create for the same user is rejected.
func (h *handler) create(c *gin.Context) {
	var req payload
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	userID := jwtmw.UserID(c)

	var existing Profile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		api.Fail(c, http.StatusBadRequest, "Profile already exists for this user", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		api.Fail(c, http.StatusInternalServerError, "Error creating profile", err)
		return
	}

	p := Profile{
		UserID:      userID,
		Name:        req.Name,
		Profession:  req.Profession,
		About:       req.About,
		Phone1:      req.Phone1,
		Phone2:      req.Phone2,
		Location:    req.Location,
		DOB:         req.DOB,
		SocialMedia: req.SocialMedia,
		WebsiteLink: req.WebsiteLink,
		AppLink:     req.AppLink,
		TemplateID:  req.TemplateID,
		ProfileImg:  req.ProfileImg,
		BannerImg:   req.BannerImg,
		Gmail:       req.Gmail,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error creating profile", err)
		return
	}
	api.OK(c, http.StatusCreated, "Profile created successfully", h.view(c, &p))
}

// getMine handles GET /me.
func (h *handler) getMine(c *gin.Context) {
	p, ok := h.findByUser(c, jwtmw.UserID(c))
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", h.view(c, p))
}

// getPublic handles GET /public/:id where id is the owner's user id.
func (h *handler) getPublic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := h.findByUser(c, id)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", publicProjection(p))
}

// updateMine handles PUT /me.
func (h *handler) updateMine(c *gin.Context) {
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
		api.Fail(c, http.StatusInternalServerError, "Error updating profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Profile updated successfully", h.view(c, p))
}

// deleteMine handles DELETE /me. Stored images go with the row.
func (h *handler) deleteMine(c *gin.Context) {
	p, ok := h.findByUser(c, jwtmw.UserID(c))
	if !ok {
		return
	}
	h.deleteImages(c, p)
	if err := h.db.WithContext(c.Request.Context()).Delete(p).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error deleting profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Profile deleted successfully", nil)
}

func (h *handler) deleteImages(c *gin.Context, p *Profile) {
	for _, url := range []string{p.ProfileImg, p.BannerImg} {
		if err := h.blobs.DeleteByURL(c.Request.Context(), url); err != nil {
			slog.Error("failed to delete profile image", "url", url, "error", err)
		}
	}
}

// uploadImage serves both the profile image and banner image routes; field
// selects which column is replaced. When no profile exists yet the URL is
// returned alone so the client can send it with the create.
func (h *handler) uploadImage(field string, scope string) gin.HandlerFunc {
	label := "Profile"
	if field == "bannerImg" {
		label = "Banner"
	}
	return func(c *gin.Context) {
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

		var p Profile
		dbErr := h.db.WithContext(c.Request.Context()).Where("user_id = ?", jwtmw.UserID(c)).First(&p).Error
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			api.OK(c, http.StatusOK, label+" image uploaded successfully", gin.H{field: url})
			return
		}
		if dbErr != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading "+field, dbErr)
			return
		}

		old := p.ProfileImg
		if field == "bannerImg" {
			old = p.BannerImg
			p.BannerImg = url
		} else {
			p.ProfileImg = url
		}
		if err := h.db.WithContext(c.Request.Context()).Save(&p).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading "+field, err)
			return
		}
		if err := h.blobs.DeleteByURL(c.Request.Context(), old); err != nil {
			slog.Error("failed to delete replaced image", "url", old, "error", err)
		}
		api.OK(c, http.StatusOK, label+" image uploaded successfully", gin.H{field: url, "email": h.accountEmail(c, p.UserID)})
	}
}

// Register wires the profile routes onto the group.
func Register(rg *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	h := &handler{db: db, blobs: blobs}

	rg.POST("", auth, h.create)
	rg.POST("/upload/profile-image", auth, h.uploadImage("profileImg", "profileImg"))
	rg.POST("/upload/banner-image", auth, h.uploadImage("bannerImg", "bannerImg"))
	rg.PUT("/upload/profile-image", auth, h.uploadImage("profileImg", "profileImg"))
	rg.PUT("/upload/banner-image", auth, h.uploadImage("bannerImg", "bannerImg"))
	rg.GET("/me", auth, h.getMine)
	rg.PUT("/me", auth, h.updateMine)
	rg.DELETE("/me", auth, h.deleteMine)

	rg.GET("/public/:id", h.getPublic)

	rg.GET("", auth, admin, h.listAll)
	rg.GET("/dashboard-stats", auth, admin, h.dashboardStats)
	rg.GET("/:id", auth, admin, h.getClient)
	rg.PUT("/:id", auth, admin, h.updateClient)
	rg.DELETE("/:id", auth, admin, h.deleteClient)
}
