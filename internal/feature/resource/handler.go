package resource

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"elitecards_backend/internal/api"
	jwtmw "elitecards_backend/internal/platform/jwt"
)

// Config describes one resource's behavior. BindCreate and ApplyUpdate are the
// only per-entity code: everything else is the shared pattern.
type Config[T any] struct {
	// Singular and Plural name the resource in messages ("skill", "skills").
	Singular string
	Plural   string

	Repo *Repository[T]

	// BindCreate parses the create payload and returns the new entity with
	// the owner already set.
	BindCreate func(c *gin.Context, ownerID uint) (*T, error)

	// ApplyUpdate parses the update payload onto the existing entity.
	ApplyUpdate func(c *gin.Context, e *T) error

	// GateRole restricts the owner-scoped routes to one role (e.g. student).
	// Empty means any authenticated user.
	GateRole string

	// AfterCreate runs after a successful create, for side effects that must
	// not fail the request (e.g. notification mail).
	AfterCreate func(c *gin.Context, e *T)

	// AfterUpdate runs after a successful save on the update routes. Blob
	// replacements delete the old object here, once the new reference is
	// durably stored.
	AfterUpdate func(c *gin.Context, e *T)

	// OnDelete runs after a successful delete, for blob cleanup.
	OnDelete func(c *gin.Context, e *T)
}

// Handler serves the HTTP surface for one resource.
type Handler[T any] struct {
	cfg Config[T]
}

// NewHandler creates a handler for the given resource configuration.
func NewHandler[T any](cfg Config[T]) *Handler[T] {
	return &Handler[T]{cfg: cfg}
}

func (h *Handler[T]) allow(c *gin.Context) bool {
	if h.cfg.GateRole != "" && jwtmw.Role(c) != h.cfg.GateRole {
		api.Fail(c, http.StatusForbidden, fmt.Sprintf("Only %ss can manage %s", h.cfg.GateRole, h.cfg.Plural), nil)
		return false
	}
	return true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return uint(id), true
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Create handles POST /.
func (h *Handler[T]) Create(c *gin.Context) {
	if !h.allow(c) {
		return
	}
	e, err := h.cfg.BindCreate(c, jwtmw.UserID(c))
	if err != nil {
		// BindCreate may have written a more specific failure already
		// (multipart uploads do).
		if !c.Writer.Written() {
			api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		}
		return
	}
	if err := h.cfg.Repo.Create(c.Request.Context(), e); err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error creating %s", h.cfg.Singular), err)
		return
	}
	if h.cfg.AfterCreate != nil {
		h.cfg.AfterCreate(c, e)
	}
	api.OK(c, http.StatusCreated, fmt.Sprintf("%s created successfully", title(h.cfg.Singular)), e)
}

// ListMine handles GET /my.
func (h *Handler[T]) ListMine(c *gin.Context) {
	if !h.allow(c) {
		return
	}
	items, err := h.cfg.Repo.ListByOwner(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", h.cfg.Plural), err)
		return
	}
	api.OK(c, http.StatusOK, "", items)
}

// ListPublic handles GET /public/:id where id is the owner's user id.
// No authentication; used by the public card page.
func (h *Handler[T]) ListPublic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.cfg.Repo.ListByOwner(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", h.cfg.Plural), err)
		return
	}
	api.OK(c, http.StatusOK, "", items)
}

// GetByID handles GET /:id, owner-scoped.
func (h *Handler[T]) GetByID(c *gin.Context) {
	if !h.allow(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.cfg.Repo.FindByOwner(c.Request.Context(), id, jwtmw.UserID(c))
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	api.OK(c, http.StatusOK, "", e)
}

// Update handles PUT /:id, owner-scoped.
func (h *Handler[T]) Update(c *gin.Context) {
	if !h.allow(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.cfg.Repo.FindByOwner(c.Request.Context(), id, jwtmw.UserID(c))
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	h.applyAndSave(c, e)
}

// Delete handles DELETE /:id, owner-scoped.
func (h *Handler[T]) Delete(c *gin.Context) {
	if !h.allow(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	// Fetch first so OnDelete can see the row (blob URLs).
	e, err := h.cfg.Repo.FindByOwner(c.Request.Context(), id, jwtmw.UserID(c))
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	if err := h.cfg.Repo.DeleteByOwner(c.Request.Context(), id, jwtmw.UserID(c)); err != nil {
		h.notFoundOr(c, err)
		return
	}
	if h.cfg.OnDelete != nil {
		h.cfg.OnDelete(c, e)
	}
	api.OK(c, http.StatusOK, fmt.Sprintf("%s deleted successfully", title(h.cfg.Singular)), nil)
}

// ListAll handles GET /, admin mirror.
func (h *Handler[T]) ListAll(c *gin.Context) {
	items, err := h.cfg.Repo.ListAll(c.Request.Context())
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", h.cfg.Plural), err)
		return
	}
	api.OK(c, http.StatusOK, "", items)
}

// GetAny handles GET /:id/admin, unscoped.
func (h *Handler[T]) GetAny(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.cfg.Repo.FindAny(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	api.OK(c, http.StatusOK, "", e)
}

// UpdateAny handles PUT /:id/admin, unscoped.
func (h *Handler[T]) UpdateAny(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.cfg.Repo.FindAny(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	h.applyAndSave(c, e)
}

// DeleteAny handles DELETE /:id/admin, unscoped.
func (h *Handler[T]) DeleteAny(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.cfg.Repo.FindAny(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr(c, err)
		return
	}
	if err := h.cfg.Repo.DeleteAny(c.Request.Context(), id); err != nil {
		h.notFoundOr(c, err)
		return
	}
	if h.cfg.OnDelete != nil {
		h.cfg.OnDelete(c, e)
	}
	api.OK(c, http.StatusOK, fmt.Sprintf("%s deleted successfully", title(h.cfg.Singular)), nil)
}

// ListByUser handles GET /:id (admin, student variant): id is the student's
// user id.
func (h *Handler[T]) ListByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.cfg.Repo.ListByOwner(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", h.cfg.Plural), err)
		return
	}
	api.OK(c, http.StatusOK, "", items)
}

// DeleteAllByUser handles DELETE /:id/all (admin, student variant).
func (h *Handler[T]) DeleteAllByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.cfg.Repo.DeleteAllByOwner(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error deleting %s", h.cfg.Plural), err)
		return
	}
	api.OK(c, http.StatusOK, fmt.Sprintf("Deleted %d %s", deleted, h.cfg.Plural), nil)
}

func (h *Handler[T]) applyAndSave(c *gin.Context, e *T) {
	if err := h.cfg.ApplyUpdate(c, e); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := h.cfg.Repo.Save(c.Request.Context(), e); err != nil {
		api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error updating %s", h.cfg.Singular), err)
		return
	}
	if h.cfg.AfterUpdate != nil {
		h.cfg.AfterUpdate(c, e)
	}
	api.OK(c, http.StatusOK, fmt.Sprintf("%s updated successfully", title(h.cfg.Singular)), e)
}

func (h *Handler[T]) notFoundOr(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		api.Fail(c, http.StatusNotFound, fmt.Sprintf("%s not found", title(h.cfg.Singular)), nil)
		return
	}
	api.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", h.cfg.Singular), err)
}

// RegisterStandard wires the client route set plus the unscoped admin mirror:
//
//	POST   /            create (auth)
//	GET    /my          list mine (auth)
//	GET    /:id         get mine (auth)
//	PUT    /:id         update mine (auth)
//	DELETE /:id         delete mine (auth)
//	GET    /            list all (admin)
//	GET    /:id/admin   get any (admin)
//	PUT    /:id/admin   update any (admin)
//	DELETE /:id/admin   delete any (admin)
func RegisterStandard[T any](rg *gin.RouterGroup, h *Handler[T], auth, admin gin.HandlerFunc) {
	rg.POST("", auth, h.Create)
	rg.GET("/my", auth, h.ListMine)
	rg.GET("/:id", auth, h.GetByID)
	rg.PUT("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)

	rg.GET("", auth, admin, h.ListAll)
	rg.GET("/:id/admin", auth, admin, h.GetAny)
	rg.PUT("/:id/admin", auth, admin, h.UpdateAny)
	rg.DELETE("/:id/admin", auth, admin, h.DeleteAny)
}

// RegisterStudent wires the student sub-resource route set: owner-scoped
// writes gated to the student role, an unauthenticated public listing, and
// per-student admin routes instead of the standard mirror.
//
//	POST   /            create (auth, student)
//	GET    /my          list mine (auth, student)
//	PUT    /:id         update mine (auth, student)
//	DELETE /:id         delete mine (auth, student)
//	GET    /public/:id  list by user (public)
//	GET    /:id         list by user (admin)
//	DELETE /:id/all     delete all for user (admin)
func RegisterStudent[T any](rg *gin.RouterGroup, h *Handler[T], auth, admin gin.HandlerFunc) {
	rg.POST("", auth, h.Create)
	rg.GET("/my", auth, h.ListMine)
	rg.PUT("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)

	rg.GET("/public/:id", h.ListPublic)

	rg.GET("/:id", auth, admin, h.ListByUser)
	rg.DELETE("/:id/all", auth, admin, h.DeleteAllByUser)
}
