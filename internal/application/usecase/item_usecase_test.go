package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/application/usecase"
	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/pkg/logger"
)

func TestItemUseCase_CreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	w, err := e.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Garage"})
	require.NoError(t, err)

	created, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Taladro", Quantity: strPtr("2 cajas"), WarehouseID: idPtr(w.ID)})
	require.NoError(t, err)
	assert.Len(t, created.Code, usecase.CodeLength)
	assert.Equal(t, "mem/"+created.Code+".png", created.ArtifactLocation)
	assert.True(t, e.store.has(created.Code))

	got, err := e.items.GetByCode(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Taladro", got.Name)
	require.NotNil(t, got.Quantity)
	assert.Equal(t, "2 cajas", *got.Quantity)
	require.NotNil(t, got.WarehouseID)
	assert.Equal(t, w.ID, *got.WarehouseID)
	assert.True(t, got.IsActive)

	rc, err := e.items.QRCode(ctx, created.Code)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "qr:"+created.Code, string(data))
}

func TestItemUseCase_CreateWithoutWarehouse(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	created, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Caja"})
	require.NoError(t, err)
	assert.Nil(t, created.WarehouseID)
	assert.Nil(t, created.Quantity)
}

func TestItemUseCase_CreateRejectsInvalidWarehouse(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	w, err := e.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Cerrada"})
	require.NoError(t, err)
	_, err = e.warehouses.Update(ctx, w.ID, dto.UpdateWarehouseRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)

	for _, id := range []int64{999, w.ID} {
		_, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Caja", WarehouseID: idPtr(id)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	list, err := e.items.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemUseCase_CreateValidation(t *testing.T) {
	e := newEnv(t, nil)
	_, err := e.items.Create(context.Background(), dto.CreateItemRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_CreateRetriesTakenCode(t *testing.T) {
	ctx := context.Background()
	codes := &seqCodes{codes: []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}}
	e := newEnv(t, codes)

	first, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Uno"})
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaa", first.Code)

	second, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Dos"})
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb", second.Code)
	assert.Equal(t, 3, codes.next)
}

func TestItemUseCase_CreateGivesUpAfterAttempts(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, &seqCodes{codes: []string{"aaaaaaaa"}})

	_, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Uno"})
	require.NoError(t, err)
	_, err = e.items.Create(ctx, dto.CreateItemRequest{Name: "Dos"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUseCase_CreateDiscardsArtifactOnFailure(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, &seqCodes{codes: []string{"c0ffee00"}})
	items := usecase.NewItemUseCase(failingRunner{inner: e.runner}, &seqCodes{codes: []string{"c0ffee00"}},
		fakeEncoder{}, e.store, e.labels, logger.Nop())

	_, err := items.Create(ctx, dto.CreateItemRequest{Name: "Fantasma"})
	assert.ErrorIs(t, err, errCommit)
	assert.False(t, e.store.has("c0ffee00"), "la imagen huérfana debe descartarse")

	list, err := e.items.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemUseCase_CreateFailsWhenArtifactCannotBeSaved(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	e.store.saveErr = errors.New("disco lleno")

	_, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Caja"})
	require.Error(t, err)

	list, err := e.items.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "el ítem no debe quedar sin código QR")
}

func TestItemUseCase_ListSearch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	acc, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "abcessory"})
	require.NoError(t, err)
	other, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Otro ABC"})
	require.NoError(t, err)

	found, err := e.items.List(ctx, dto.ListItemsRequest{Search: "abc"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, other.Code, found[0].Code)
	assert.Equal(t, acc.Code, found[1].Code)

	none, err := e.items.List(ctx, dto.ListItemsRequest{Search: "xyz"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.items.Checkout(ctx, other.Code)
	require.NoError(t, err)
	activeOnly, err := e.items.List(ctx, dto.ListItemsRequest{Search: "abc", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, acc.Code, activeOnly[0].Code)
}

func TestItemUseCase_CheckoutOnce(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, &seqCodes{codes: []string{"abc123"}})

	_, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Linterna"})
	require.NoError(t, err)

	res, err := e.items.Checkout(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.Code)
	assert.Equal(t, "Item abc123 checked out", res.Message)

	_, err = e.items.Checkout(ctx, "abc123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.items.GetByCode(ctx, "abc123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := e.items.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

func TestItemUseCase_Move(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, &seqCodes{codes: []string{"abc123"}})

	a, err := e.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "A"})
	require.NoError(t, err)
	b, err := e.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "B"})
	require.NoError(t, err)
	_, err = e.items.Create(ctx, dto.CreateItemRequest{Name: "Escalera", WarehouseID: idPtr(a.ID)})
	require.NoError(t, err)

	t.Run("bodega inexistente no cambia el vínculo", func(t *testing.T) {
		_, err := e.items.Move(ctx, "abc123", idPtr(999))
		assert.ErrorIs(t, err, domain.ErrNotFound)
		got, err := e.items.GetByCode(ctx, "abc123")
		require.NoError(t, err)
		require.NotNil(t, got.WarehouseID)
		assert.Equal(t, a.ID, *got.WarehouseID)
	})
	t.Run("a otra bodega", func(t *testing.T) {
		res, err := e.items.Move(ctx, "abc123", idPtr(b.ID))
		require.NoError(t, err)
		require.NotNil(t, res.WarehouseID)
		assert.Equal(t, b.ID, *res.WarehouseID)
	})
	t.Run("bodega inactiva", func(t *testing.T) {
		_, err := e.warehouses.Update(ctx, a.ID, dto.UpdateWarehouseRequest{IsActive: boolPtr(false)})
		require.NoError(t, err)
		_, err = e.items.Move(ctx, "abc123", idPtr(a.ID))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("sin bodega desvincula", func(t *testing.T) {
		res, err := e.items.Move(ctx, "abc123", nil)
		require.NoError(t, err)
		assert.Nil(t, res.WarehouseID)
		got, err := e.items.GetByCode(ctx, "abc123")
		require.NoError(t, err)
		assert.Nil(t, got.WarehouseID)
	})
	t.Run("código desconocido", func(t *testing.T) {
		_, err := e.items.Move(ctx, "nope", nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestItemUseCase_DeleteRemovesArtifact(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	created, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Caja"})
	require.NoError(t, err)
	_, err = e.items.Checkout(ctx, created.Code)
	require.NoError(t, err)

	res, err := e.items.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)
	assert.Equal(t, "Item deleted", res.Message)
	assert.False(t, e.store.has(created.Code))

	_, err = e.items.QRCode(ctx, created.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.items.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_DeleteToleratesMissingArtifact(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	created, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Caja"})
	require.NoError(t, err)
	require.NoError(t, e.store.Remove(ctx, created.Code))

	_, err = e.items.Delete(ctx, created.ID)
	require.NoError(t, err)
}

func TestItemUseCase_Label(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	w, err := e.warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "Garage"})
	require.NoError(t, err)
	created, err := e.items.Create(ctx, dto.CreateItemRequest{Name: "Taladro", Quantity: strPtr("1"), WarehouseID: idPtr(w.ID)})
	require.NoError(t, err)

	out, err := e.items.Label(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, dto.ItemLabel{Code: created.Code, Name: "Taladro", Quantity: "1", WarehouseName: "Garage"}, e.labels.last)

	_, err = e.items.Checkout(ctx, created.Code)
	require.NoError(t, err)
	_, err = e.items.Label(ctx, created.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
