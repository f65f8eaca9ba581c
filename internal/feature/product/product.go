// Package product exposes the products listed on a card. Every product has a
// photo stored in object storage.
package product

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

// scope is the storage key prefix for product photos.
const scope = "products"

// replacedPhotoKey carries the superseded photo URL from ApplyUpdate to
// AfterUpdate within one request.
const replacedPhotoKey = "product.replacedPhoto"

// Product is one product entry.
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	ProductName  string    `gorm:"size:255;not null" json:"productName"`
	ProductPhoto string    `gorm:"size:512;not null" json:"productPhoto"`
	Price        float64   `gorm:"not null" json:"price"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Register wires the product routes onto the group. Create and update both
// take multipart forms so the photo can travel with the fields; the update
// replaces the stored photo only when a new file is attached.
func Register(rg *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	h := resource.NewHandler(resource.Config[Product]{
		Singular: "product",
		Plural:   "products",
		Repo:     resource.NewRepository[Product](db),
		BindCreate: func(c *gin.Context, ownerID uint) (*Product, error) {
			file, err := c.FormFile("productPhoto")
			if err != nil {
				api.Fail(c, http.StatusBadRequest, "Product photo is required", err)
				return nil, err
			}
			url, err := resource.UploadFormFile(c.Request.Context(), blobs, scope, file)
			if err != nil {
				api.Fail(c, http.StatusInternalServerError, "Error uploading product photo", err)
				return nil, err
			}
			p := &Product{
				UserID:       ownerID,
				ProductName:  c.PostForm("productName"),
				ProductPhoto: url,
				Details:      c.PostForm("details"),
			}
			if raw := c.PostForm("price"); raw != "" {
				price, perr := strconv.ParseFloat(raw, 64)
				if perr != nil {
					api.Fail(c, http.StatusBadRequest, "Invalid price", perr)
					return nil, perr
				}
				p.Price = price
			}
			return p, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Product) error {
			if v := c.PostForm("productName"); v != "" {
				e.ProductName = v
			}
			if v := c.PostForm("details"); v != "" {
				e.Details = v
			}
			if raw := c.PostForm("price"); raw != "" {
				price, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return err
				}
				e.Price = price
			}
			if file, err := c.FormFile("productPhoto"); err == nil {
				url, upErr := resource.UploadFormFile(c.Request.Context(), blobs, scope, file)
				if upErr != nil {
					return upErr
				}
				c.Set(replacedPhotoKey, e.ProductPhoto)
				e.ProductPhoto = url
			}
			return nil
		},
		AfterUpdate: func(c *gin.Context, e *Product) {
			// The old photo goes only after the new reference is saved, so a
			// failed save never leaves the row pointing at a deleted blob.
			if old, ok := c.Get(replacedPhotoKey); ok {
				if err := blobs.DeleteByURL(c.Request.Context(), old.(string)); err != nil {
					slog.Error("failed to delete replaced product photo", "url", old, "error", err)
				}
			}
		},
		OnDelete: func(c *gin.Context, e *Product) {
			if err := blobs.DeleteByURL(c.Request.Context(), e.ProductPhoto); err != nil {
				slog.Error("failed to delete product photo", "url", e.ProductPhoto, "error", err)
			}
		},
	})

	rg.POST("/upload", auth, h.Create)
	rg.GET("/my", auth, h.ListMine)
	rg.GET("/public/:id", h.ListPublic)
	rg.GET("/:id", auth, h.GetByID)
	rg.PUT("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)

	rg.POST("/admin/upload", auth, admin, h.Create)
	rg.GET("", auth, admin, h.ListAll)
	rg.GET("/:id/admin", auth, admin, h.GetAny)
	rg.PUT("/:id/admin", auth, admin, h.UpdateAny)
	rg.DELETE("/:id/admin", auth, admin, h.DeleteAny)
}
