package product

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	jwtmw "elitecards_backend/internal/platform/jwt"
)

type fakeBlobStore struct {
	uploads int
	deleted []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, scope, filename, contentType string, body io.Reader) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://blobs.test/%s/%d-%s", scope, f.uploads, filename), nil
}

func (f *fakeBlobStore) DeleteByURL(ctx context.Context, objectURL string) error {
	if objectURL != "" {
		f.deleted = append(f.deleted, objectURL)
	}
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(&Product{}), "failed to migrate")
	return db
}

func identity(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Set(jwtmw.ContextUserRole, "client")
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

func newRouter(t *testing.T, userID uint) (*gin.Engine, *gorm.DB, *fakeBlobStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	blobs := &fakeBlobStore{}
	r := gin.New()
	Register(r.Group("/products"), db, blobs, identity(userID), passThrough)
	return r, db, blobs
}

func multipartForm(t *testing.T, method, path string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		fw, err := mw.CreateFormFile("productPhoto", "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProduct_Create(t *testing.T) {
	t.Run("stores the photo and the row", func(t *testing.T) {
		r, db, blobs := newRouter(t, 1)

		req := multipartForm(t, http.MethodPost, "/products/upload", map[string]string{
			"productName": "Mug", "price": "199.5",
		}, true)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, blobs.uploads)

		var p Product
		require.NoError(t, db.First(&p).Error)
		assert.Equal(t, uint(1), p.UserID)
		assert.Equal(t, "Mug", p.ProductName)
		assert.Equal(t, 199.5, p.Price)
		assert.Contains(t, p.ProductPhoto, "https://blobs.test/products/")
	})

	t.Run("photo is required", func(t *testing.T) {
		r, _, blobs := newRouter(t, 1)

		req := multipartForm(t, http.MethodPost, "/products/upload", map[string]string{"productName": "Mug"}, false)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Product photo is required")
		assert.Zero(t, blobs.uploads)
	})
}

func TestProduct_UpdateReplacesPhoto(t *testing.T) {
	r, db, blobs := newRouter(t, 1)
	p := Product{UserID: 1, ProductName: "Mug", ProductPhoto: "https://blobs.test/products/old.jpg"}
	require.NoError(t, db.Create(&p).Error)

	req := multipartForm(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), map[string]string{
		"productName": "Steel Mug",
	}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "Steel Mug", got.ProductName)
	assert.Contains(t, got.ProductPhoto, "https://blobs.test/products/")
	assert.NotEqual(t, "https://blobs.test/products/old.jpg", got.ProductPhoto)
	assert.Equal(t, []string{"https://blobs.test/products/old.jpg"}, blobs.deleted)
}

func TestProduct_UpdateWithoutPhotoKeepsBlob(t *testing.T) {
	r, db, blobs := newRouter(t, 1)
	p := Product{UserID: 1, ProductName: "Mug", ProductPhoto: "https://blobs.test/products/old.jpg"}
	require.NoError(t, db.Create(&p).Error)

	req := multipartForm(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), map[string]string{
		"details": "Dishwasher safe",
	}, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, blobs.deleted)

	var got Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "https://blobs.test/products/old.jpg", got.ProductPhoto)
}

func TestProduct_FailedSaveKeepsOldPhoto(t *testing.T) {
	r, db, blobs := newRouter(t, 1)
	p := Product{UserID: 1, ProductName: "Mug", ProductPhoto: "https://blobs.test/products/old.jpg"}
	require.NoError(t, db.Create(&p).Error)

	// Every update write fails from here on.
	err := db.Callback().Update().Before("gorm:update").Register("reject_updates", func(tx *gorm.DB) {
		tx.AddError(errors.New("update rejected"))
	})
	require.NoError(t, err)

	req := multipartForm(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), nil, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The stored reference still resolves: the old blob was not deleted.
	assert.Empty(t, blobs.deleted)

	var got Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "https://blobs.test/products/old.jpg", got.ProductPhoto)
}

func TestProduct_DeleteCleansBlob(t *testing.T) {
	r, db, blobs := newRouter(t, 1)
	p := Product{UserID: 1, ProductName: "Mug", ProductPhoto: "https://blobs.test/products/doomed.jpg"}
	require.NoError(t, db.Create(&p).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", p.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://blobs.test/products/doomed.jpg"}, blobs.deleted)
}
