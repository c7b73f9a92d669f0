package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/domain/repository"
	"github.com/jhoicas/lager-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/lager-api/pkg/logger"
)

// memStore ArtifactStore en memoria.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (s *memStore) Save(_ context.Context, code string, png []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.objects[code] = png
	return "mem/" + code + ".png", nil
}

func (s *memStore) Open(_ context.Context, code string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Remove(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, code)
	return nil
}

func (s *memStore) has(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[code]
	return ok
}

// fakeEncoder devuelve el contenido como bytes.
type fakeEncoder struct{}

func (fakeEncoder) EncodePNG(content string) ([]byte, error) {
	return []byte("qr:" + content), nil
}

// fakeLabels guarda la última etiqueta pedida.
type fakeLabels struct {
	last dto.ItemLabel
}

func (f *fakeLabels) RenderItemLabel(_ context.Context, label dto.ItemLabel) ([]byte, error) {
	f.last = label
	return []byte("%PDF-fake"), nil
}

// seqCodes entrega códigos predefinidos en orden.
type seqCodes struct {
	codes []string
	next  int
}

func (s *seqCodes) NewCode() string {
	c := s.codes[s.next%len(s.codes)]
	s.next++
	return c
}

// failingRunner ejecuta fn y luego simula un fallo en el commit.
type failingRunner struct {
	inner usecase.TxRunner
}

var errCommit = errors.New("commit falló")

func (r failingRunner) Run(ctx context.Context, fn func(w repository.WarehouseRepository, i repository.ItemRepository) error) error {
	return r.inner.Run(ctx, func(w repository.WarehouseRepository, i repository.ItemRepository) error {
		if err := fn(w, i); err != nil {
			return err
		}
		return errCommit
	})
}

type env struct {
	warehouses *usecase.WarehouseUseCase
	items      *usecase.ItemUseCase
	store      *memStore
	labels     *fakeLabels
	runner     usecase.TxRunner
}

func newEnv(t *testing.T, codes usecase.CodeGenerator) *env {
	t.Helper()
	runner := sqlite.NewTxRunner(sqlite.NewTestDB(t))
	store := newMemStore()
	labels := &fakeLabels{}
	return &env{
		warehouses: usecase.NewWarehouseUseCase(runner),
		items:      usecase.NewItemUseCase(runner, codes, fakeEncoder{}, store, labels, logger.Nop()),
		store:      store,
		labels:     labels,
		runner:     runner,
	}
}

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }
func boolPtr(b bool) *bool    { return &b }
