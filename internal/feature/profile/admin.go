package profile

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/product"
	"elitecards_backend/internal/feature/service"
	"elitecards_backend/internal/feature/testimonial"
)

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// requireClient resolves the target user and rejects when the account is
// missing or not a client. Admin profile routes always address clients.
func (h *handler) requireClient(c *gin.Context, id uint) (*entity.User, bool) {
	var u entity.User
	err := h.db.WithContext(c.Request.Context()).First(&u, id).Error
	if err != nil || u.Role != entity.RoleClient {
		api.Fail(c, http.StatusNotFound, "Client not found", nil)
		return nil, false
	}
	return &u, true
}

// adminListEntry is one row of the admin profile listing. Clients without a
// profile still appear, with just their account fields.
type adminListEntry struct {
	*Profile
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// listAll handles GET / for admins: every client account, joined with its
// profile when one exists.
func (h *handler) listAll(c *gin.Context) {
	ctx := c.Request.Context()

	var users []entity.User
	if err := h.db.WithContext(ctx).Where("role = ?", entity.RoleClient).Find(&users).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching profiles", err)
		return
	}
	var profiles []Profile
	if err := h.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching profiles", err)
		return
	}
	byUser := make(map[uint]*Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	entries := make([]adminListEntry, 0, len(users))
	for _, u := range users {
		e := adminListEntry{UserID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
		if p := byUser[u.ID]; p != nil {
			e.Profile = p
			e.Name = p.Name
		}
		entries = append(entries, e)
	}
	api.OK(c, http.StatusOK, "", entries)
}

// getClient handles GET /:id for admins.
func (h *handler) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, ok := h.requireClient(c, id); !ok {
		return
	}
	p, ok := h.findByUser(c, id)
	if !ok {
		return
	}
	api.OK(c, http.StatusOK, "", h.view(c, p))
}

// updateClient handles PUT /:id for admins. Creates the profile when the
// client has none yet.
func (h *handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, ok := h.requireClient(c, id); !ok {
		return
	}
	var req patch
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	ctx := c.Request.Context()
	var p Profile
	err := h.db.WithContext(ctx).Where("user_id = ?", id).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = Profile{UserID: id, TemplateID: "template1"}
		req.apply(&p)
		err = h.db.WithContext(ctx).Create(&p).Error
	case err == nil:
		req.apply(&p)
		err = h.db.WithContext(ctx).Save(&p).Error
	}
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error updating profile", err)
		return
	}
	api.OK(c, http.StatusOK, "Profile updated successfully", h.view(c, &p))
}

// deleteClient handles DELETE /:id for admins. The whole client account goes:
// stored images, the profile row, then the user itself.
func (h *handler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, ok := h.requireClient(c, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var p Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", id).First(&p).Error; err == nil {
		h.deleteImages(c, &p)
		if err := h.db.WithContext(ctx).Delete(&p).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error deleting client", err)
			return
		}
	}
	if err := h.db.WithContext(ctx).Delete(user).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error deleting client", err)
		return
	}
	api.OK(c, http.StatusOK, "Client account and all associated data deleted successfully", nil)
}

// recentClient is the trimmed account view in the dashboard payload.
type recentClient struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// dashboardStats handles GET /dashboard-stats for admins.
func (h *handler) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	var totalClients, clientsWithProfiles, totalServices, totalProducts, totalTestimonials int64
	counts := []struct {
		query *gorm.DB
		dst   *int64
	}{
		{db.Model(&entity.User{}).Where("role = ?", entity.RoleClient), &totalClients},
		{db.Model(&Profile{}), &clientsWithProfiles},
		{db.Model(&service.Service{}), &totalServices},
		{db.Model(&product.Product{}), &totalProducts},
		{db.Model(&testimonial.Testimonial{}), &totalTestimonials},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dst).Error; err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error fetching dashboard statistics", err)
			return
		}
	}

	var recentUsers []entity.User
	if err := db.Where("role = ?", entity.RoleClient).Order("created_at DESC").Limit(5).Find(&recentUsers).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching dashboard statistics", err)
		return
	}
	clients := make([]recentClient, 0, len(recentUsers))
	for _, u := range recentUsers {
		clients = append(clients, recentClient{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt})
	}

	var recentProfiles []Profile
	if err := db.Order("created_at DESC").Limit(5).Find(&recentProfiles).Error; err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching dashboard statistics", err)
		return
	}

	api.OK(c, http.StatusOK, "", gin.H{
		"totalClients":        totalClients,
		"clientsWithProfiles": clientsWithProfiles,
		"totalServices":       totalServices,
		"totalProducts":       totalProducts,
		"totalTestimonials":   totalTestimonials,
		"recentClients":       clients,
		"recentProfiles":      recentProfiles,
	})
}
