// Package gallery exposes the image gallery shown on a card. Images live in
// object storage; rows only hold the public URL and a caption.
package gallery

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/resource"
)

// scope is the storage key prefix for gallery images.
const scope = "gallery"

// Item is one gallery entry.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
	Caption   string    `gorm:"size:512" json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type patch struct {
	Caption *string `json:"caption"`
}

// Register wires the gallery routes onto the group. The create route takes a
// multipart form instead of JSON, so the standard route set is laid out by
// hand here.
func Register(rg *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	h := resource.NewHandler(resource.Config[Item]{
		Singular: "gallery item",
		Plural:   "gallery items",
		Repo:     resource.NewRepository[Item](db),
		BindCreate: func(c *gin.Context, ownerID uint) (*Item, error) {
			file, err := c.FormFile("image")
			if err != nil {
				api.Fail(c, http.StatusBadRequest, "No file uploaded", err)
				return nil, err
			}
			url, err := resource.UploadFormFile(c.Request.Context(), blobs, scope, file)
			if err != nil {
				api.Fail(c, http.StatusInternalServerError, "Error uploading gallery image", err)
				return nil, err
			}
			// An explicit userId in the form lets an admin create an
			// entry on a client's behalf.
			if raw := c.PostForm("userId"); raw != "" {
				if id, perr := strconv.ParseUint(raw, 10, 64); perr == nil {
					ownerID = uint(id)
				}
			}
			return &Item{UserID: ownerID, ImageURL: url, Caption: c.PostForm("caption")}, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Item) error {
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Caption != nil {
				e.Caption = *req.Caption
			}
			return nil
		},
		OnDelete: func(c *gin.Context, e *Item) {
			if err := blobs.DeleteByURL(c.Request.Context(), e.ImageURL); err != nil {
				slog.Error("failed to delete gallery image", "url", e.ImageURL, "error", err)
			}
		},
	})

	rg.POST("/upload", auth, h.Create)
	rg.GET("/my", auth, h.ListMine)
	rg.GET("/:id", auth, h.GetByID)
	rg.PUT("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)

	rg.GET("", auth, admin, h.ListAll)
	rg.GET("/:id/admin", auth, admin, h.GetAny)
	rg.PUT("/:id/admin", auth, admin, h.UpdateAny)
	rg.DELETE("/:id/admin", auth, admin, h.DeleteAny)
}
