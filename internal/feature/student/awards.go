package student

import (
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

// awardScope is the storage key prefix for award images.
const awardScope = "student-awards"

// registerAwards wires the award routes. Awards are the one student
// sub-resource created via multipart form so an image can be attached, and
// they carry an extra route for replacing the image on an existing award.
func registerAwards(rg *gin.RouterGroup, db *gorm.DB, blobs resource.BlobStore, auth, admin gin.HandlerFunc) {
	repo := resource.NewRepository[Award](db)
	h := resource.NewHandler(resource.Config[Award]{
		Singular: "award",
		Plural:   "awards",
		Repo:     repo,
		GateRole: entity.RoleStudent,
		BindCreate: func(c *gin.Context, ownerID uint) (*Award, error) {
			award := &Award{
				UserID:      ownerID,
				Title:       c.PostForm("title"),
				Issuer:      c.PostForm("issuer"),
				Description: c.PostForm("description"),
			}
			date, err := time.Parse(time.RFC3339, c.PostForm("date"))
			if err != nil {
				return nil, err
			}
			award.Date = date

			// Image is optional at creation time.
			if file, err := c.FormFile("awardImage"); err == nil {
				url, upErr := resource.UploadFormFile(c.Request.Context(), blobs, awardScope, file)
				if upErr != nil {
					return nil, upErr
				}
				award.ImageURL = url
			}
			return award, nil
		},
		ApplyUpdate: func(c *gin.Context, e *Award) error {
			type patch struct {
				Title       *string    `json:"title"`
				Issuer      *string    `json:"issuer"`
				Date        *time.Time `json:"date"`
				Description *string    `json:"description"`
			}
			var req patch
			if err := c.ShouldBindJSON(&req); err != nil {
				return err
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.Issuer != nil {
				e.Issuer = *req.Issuer
			}
			if req.Date != nil {
				e.Date = *req.Date
			}
			if req.Description != nil {
				e.Description = *req.Description
			}
			return nil
		},
		OnDelete: func(c *gin.Context, e *Award) {
			if err := blobs.DeleteByURL(c.Request.Context(), e.ImageURL); err != nil {
				slog.Error("failed to delete award image", "url", e.ImageURL, "error", err)
			}
		},
	})
	resource.RegisterStudent(rg, h, auth, admin)

	rg.POST("/upload/image", auth, replaceAwardImage(repo, blobs))
}

// replaceAwardImage uploads a new image for an existing award. The new blob is
// uploaded and referenced first; the previous one is deleted only after the
// reference is durably saved, so an upload failure never leaves a dangling row.
func replaceAwardImage(repo *resource.Repository[Award], blobs resource.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtmw.Role(c) != entity.RoleStudent {
			api.Fail(c, http.StatusForbidden, "Only students can manage awards", nil)
			return
		}
		var form struct {
			AwardID uint `form:"awardId" binding:"required"`
		}
		if err := c.ShouldBind(&form); err != nil {
			api.Fail(c, http.StatusBadRequest, "Please provide awardId", err)
			return
		}
		file, err := c.FormFile("awardImage")
		if err != nil {
			api.Fail(c, http.StatusBadRequest, "No file uploaded", err)
			return
		}

		award, err := repo.FindByOwner(c.Request.Context(), form.AwardID, jwtmw.UserID(c))
		if err != nil {
			api.Fail(c, http.StatusNotFound, "Award not found", nil)
			return
		}

		url, err := resource.UploadFormFile(c.Request.Context(), blobs, awardScope, file)
		if err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error uploading award image", err)
			return
		}

		oldURL := award.ImageURL
		award.ImageURL = url
		if err := repo.Save(c.Request.Context(), award); err != nil {
			api.Fail(c, http.StatusInternalServerError, "Error updating award", err)
			return
		}
		if err := blobs.DeleteByURL(c.Request.Context(), oldURL); err != nil {
			slog.Error("failed to delete replaced award image", "url", oldURL, "error", err)
		}

		api.OK(c, http.StatusOK, "Award image uploaded successfully", award)
	}
}
