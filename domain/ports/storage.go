package ports

import "io"

// StoragePort stores generated files (CSV exports). Swapping the provider
// (local disk, MinIO, R2) must not touch service code.
type StoragePort interface {
	// UploadFile stores the content at path and returns a URL for it.
	UploadFile(file io.Reader, path string, contentType string) (string, error)
	DeleteFile(path string) error
	GetFileURL(path string) string
	GetProviderName() string
}
