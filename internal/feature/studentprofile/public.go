package studentprofile

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/student"
)

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// publicView is the anonymous student card page: the profile plus every
// portfolio section in one payload. The account email and phone numbers
// stay private.
type publicView struct {
	FullName    string               `json:"fullName"`
	About       string               `json:"about"`
	Location    string               `json:"location"`
	DOB         *time.Time           `json:"dob"`
	SocialMedia SocialMedia          `json:"socialMedia"`
	TemplateID  string               `json:"templateId"`
	ProfilePic  string               `json:"profilePic"`
	BannerPic   string               `json:"bannerPic"`
	Skills      []student.Skill      `json:"skills"`
	Experiences []student.Experience `json:"experiences"`
	Projects    []student.Project    `json:"projects"`
	Educations  []student.Education  `json:"educations"`
	Awards      []student.Award      `json:"awards"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// getPublic handles GET /public/:id where id is the student's user id.
func (h *handler) getPublic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := h.findByUser(c, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)
	view := publicView{
		FullName:    p.FullName,
		About:       p.About,
		Location:    p.Location,
		DOB:         p.DOB,
		SocialMedia: p.SocialMedia,
		TemplateID:  p.TemplateID,
		ProfilePic:  p.ProfilePic,
		BannerPic:   p.BannerPic,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	sections := []struct {
		dst any
	}{
		{&view.Skills}, {&view.Experiences}, {&view.Projects}, {&view.Educations}, {&view.Awards},
	}
	for _, s := range sections {
		if err := db.Where("user_id = ?", id).Find(s.dst).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error fetching student profile", err)
			return
		}
	}
	api.OK(c, http.StatusOK, "", view)
}

// adminListEntry is one row of the admin student listing. Students without a
// profile still appear with their account fields.
type adminListEntry struct {
	*StudentProfile
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// listAll handles GET / for admins.
func (h *handler) listAll(c *gin.Context) {
	ctx := c.Request.Context()

	var users []entity.User
	if err := h.db.WithContext(ctx).Where("role = ?", entity.RoleStudent).Find(&users).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching student profiles", err)
		return
	}
	var profiles []StudentProfile
	if err := h.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching student profiles", err)
		return
	}
	byUser := make(map[uint]*StudentProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	entries := make([]adminListEntry, 0, len(users))
	for _, u := range users {
		e := adminListEntry{UserID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
		if p := byUser[u.ID]; p != nil {
			e.StudentProfile = p
			e.FullName = p.FullName
		}
		entries = append(entries, e)
	}
	api.OK(c, http.StatusOK, "", entries)
}

func (h *handler) requireStudentUser(c *gin.Context, id uint) bool {
	var u entity.User
	err := h.db.WithContext(c.Request.Context()).First(&u, id).Error
	if err != nil || u.Role != entity.RoleStudent {
		api.Fail(c, http.StatusNotFound, "Student not found", nil)
		return false
	}
	return true
}

// getStudent handles GET /:id for admins.
func (h *handler) getStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.requireStudentUser(c, id) {
		return
	}
	p, ok := h.findByUser(c, id)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", p)
}

// updateStudent handles PUT /:id for admins. Creates the profile when the
// student has none yet.
func (h *handler) updateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.requireStudentUser(c, id) {
		return
	}
	var req patch
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	ctx := c.Request.Context()
	var p StudentProfile
	err := h.db.WithContext(ctx).Where("user_id = ?", id).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = StudentProfile{UserID: id, TemplateID: "template1"}
		req.apply(&p)
		err = h.db.WithContext(ctx).Create(&p).Error
	case err == nil:
		req.apply(&p)
		err = h.db.WithContext(ctx).Save(&p).Error
	}
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error updating student profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Student profile updated successfully", p)
}

// deleteStudent handles DELETE /:id for admins. Unlike the client admin
// delete, the student account itself stays.
func (h *handler) deleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.requireStudentUser(c, id) {
		return
	}

	ctx := c.Request.Context()
	var p StudentProfile
	if err := h.db.WithContext(ctx).Where("user_id = ?", id).First(&p).Error; err == nil {
		h.deleteImages(c, &p)
		if err := h.db.WithContext(ctx).Delete(&p).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error deleting student profile", err)
			return
		}
	}
	api.OK(c, http.StatusOK, "Student profile deleted successfully", nil)
}
