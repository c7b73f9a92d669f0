package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/pkg/config"
)

var _ usecase.ArtifactStore = (*MinIOStore)(nil)

// MinIOStore guarda las imágenes como objetos <code>.png en un bucket compatible S3.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore conecta al endpoint y crea el bucket si no existe.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: cliente: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: crear bucket %q: %w", cfg.Bucket, err)
		}
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

// Save sube la imagen y devuelve su ubicación como bucket/objeto.
func (s *MinIOStore) Save(ctx context.Context, code string, png []byte) (string, error) {
	name := objectName(code)
	if name == "" {
		return "", fmt.Errorf("%w: código %q", domain.ErrInvalidInput, code)
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(png), int64(len(png)), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: subir imagen: %w", err)
	}
	return s.bucket + "/" + name, nil
}

// Open descarga la imagen del código.
func (s *MinIOStore) Open(ctx context.Context, code string) (io.ReadCloser, error) {
	name := objectName(code)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: obtener imagen: %w", err)
	}
	// GetObject es perezoso: Stat confirma que el objeto existe.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("minio: obtener imagen: %w", err)
	}
	return obj, nil
}

// Remove borra el objeto; S3 no falla si no existe.
func (s *MinIOStore) Remove(ctx context.Context, code string) error {
	name := objectName(code)
	if name == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("minio: borrar imagen: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
