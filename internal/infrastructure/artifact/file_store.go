package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/domain"
)

var _ usecase.ArtifactStore = (*FileStore)(nil)

// FileStore guarda las imágenes como <dir>/<code>.png en el sistema de archivos local.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de artefactos: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save escribe la imagen (vía archivo temporal + rename) y devuelve su ruta.
func (s *FileStore) Save(_ context.Context, code string, png []byte) (string, error) {
	name := objectName(code)
	if name == "" {
		return "", fmt.Errorf("%w: código %q", domain.ErrInvalidInput, code)
	}
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*.png")
	if err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, bytes.NewReader(png)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return path, nil
}

// Open abre la imagen del código.
func (s *FileStore) Open(_ context.Context, code string) (io.ReadCloser, error) {
	name := objectName(code)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("abrir imagen: %w", err)
	}
	return f, nil
}

// Remove borra la imagen del código si existe.
func (s *FileStore) Remove(_ context.Context, code string) error {
	name := objectName(code)
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}
