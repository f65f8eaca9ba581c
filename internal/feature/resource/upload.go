package resource

import (
	"context"
	"io"
	"mime/multipart"
)

// BlobStore abstracts the object storage used for uploaded media.
// Defined on the consumer side; platform/storage satisfies it.
type BlobStore interface {
	// Upload stores the blob under the given scope and returns its public URL.
	Upload(ctx context.Context, scope, filename, contentType string, body io.Reader) (string, error)
	// DeleteByURL removes a previously uploaded blob. Empty URL is a no-op.
	DeleteByURL(ctx context.Context, objectURL string) error
}

// UploadFormFile streams one multipart file into the blob store and returns
// its public URL.
func UploadFormFile(ctx context.Context, blobs BlobStore, scope string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return blobs.Upload(ctx, scope, fh.Filename, contentType, f)
}
