// File: services/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"foodsavvy/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores uploaded menu images and returns the URL the stored
// image is reachable at.
type StorageService interface {
	SaveImage(ctx context.Context, r io.Reader, originalFilename string) (string, error)
	DeleteImage(ctx context.Context, ref string) error
}

// NewFromConfig selects the backend from STORAGE_BACKEND.
func NewFromConfig() (StorageService, error) {
	switch config.AppConfig.StorageBackend {
	case "cloudinary":
		return NewCloudinaryStorage()
	case "", "local":
		return NewLocalStorage(config.AppConfig.UploadDir)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", config.AppConfig.StorageBackend)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// storedName builds a collision-resistant filename keeping the original
// extension, e.g. "1717171717171-chicken_pot_pie.jpg".
func storedName(originalFilename string) string {
	base := filepath.Base(originalFilename)
	base = unsafeChars.ReplaceAllString(base, "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}

// LocalStorage writes images to a directory served as static files under
// /uploads.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) SaveImage(ctx context.Context, r io.Reader, originalFilename string) (string, error) {
	name := storedName(originalFilename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return "/uploads/" + name, nil
}

func (s *LocalStorage) DeleteImage(ctx context.Context, ref string) error {
	name := filepath.Base(strings.TrimPrefix(ref, "/uploads/"))
	if name == "" || name == "." {
		return fmt.Errorf("storage: invalid image ref %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

// CloudinaryStorage uploads images to a Cloudinary folder and returns the
// CDN URL.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("storage: cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: init cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: "menu"}, nil
}

func (s *CloudinaryStorage) SaveImage(ctx context.Context, r io.Reader, originalFilename string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: strings.TrimSuffix(storedName(originalFilename), filepath.Ext(originalFilename)),
	})
	if err != nil {
		return "", fmt.Errorf("storage: cloudinary upload: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: cloudinary returned no URL")
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) DeleteImage(ctx context.Context, ref string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: ref})
	if err != nil {
		return fmt.Errorf("storage: cloudinary destroy: %w", err)
	}
	return nil
}
