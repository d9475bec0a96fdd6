package item_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/user"
)

func setup(t *testing.T) (item.Service, *user.User, *user.User) {
	t.Helper()
	ctx := context.Background()

	userSvc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
	owner, err := userSvc.Register(ctx, "owner@example.com", "password1", "Owner")
	require.NoError(t, err)
	other, err := userSvc.Register(ctx, "other@example.com", "password1", "Other")
	require.NoError(t, err)

	return item.NewService(item.NewMemoryRepository(), userSvc), owner, other
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, owner, _ := setup(t)

		it, err := svc.Create(ctx, item.CreateRequest{
			Name:        "Ladder",
			Description: "3m aluminium ladder",
			Available:   true,
		}, owner.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, owner.ID, it.OwnerID)
		assert.True(t, it.Available)
	})

	t.Run("validation", func(t *testing.T) {
		svc, owner, _ := setup(t)

		_, err := svc.Create(ctx, item.CreateRequest{Description: "no name"}, owner.ID)
		assert.ErrorIs(t, err, item.ErrNameRequired)

		_, err = svc.Create(ctx, item.CreateRequest{Name: "no description"}, owner.ID)
		assert.ErrorIs(t, err, item.ErrDescRequired)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(ctx, item.CreateRequest{
			Name:        "Ladder",
			Description: "3m aluminium ladder",
		}, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, item.ErrOwnerMissing)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := setup(t)

	it, err := svc.Create(ctx, item.CreateRequest{
		Name:        "Tent",
		Description: "4-person tent",
		Available:   true,
	}, owner.ID)
	require.NoError(t, err)

	t.Run("owner patches availability", func(t *testing.T) {
		off := false
		updated, err := svc.Update(ctx, it.ID, item.UpdatePatch{Available: &off}, owner.ID)
		require.NoError(t, err)
		assert.False(t, updated.Available)
		assert.Equal(t, "Tent", updated.Name)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		name := "Stolen Tent"
		_, err := svc.Update(ctx, it.ID, item.UpdatePatch{Name: &name}, other.ID)
		assert.ErrorIs(t, err, item.ErrNotOwner)
	})

	t.Run("unknown item", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.Update(ctx, "00000000-0000-0000-0000-000000000000", item.UpdatePatch{Name: &name}, owner.ID)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()
	svc, owner, _ := setup(t)

	_, err := svc.Create(ctx, item.CreateRequest{
		Name:        "Cordless Drill",
		Description: "18V drill",
		Available:   true,
	}, owner.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, item.CreateRequest{
		Name:        "Hammer",
		Description: "Claw hammer, also drills nothing",
		Available:   true,
	}, owner.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, item.CreateRequest{
		Name:        "Broken Drill",
		Description: "Does not work",
		Available:   false,
	}, owner.ID)
	require.NoError(t, err)

	t.Run("matches name or description, available only", func(t *testing.T) {
		got, total, err := svc.Search(ctx, "drill", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, it := range got {
			assert.True(t, it.Available)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		_, total, err := svc.Search(ctx, "DRILL", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("blank text returns nothing", func(t *testing.T) {
		got, total, err := svc.Search(ctx, "   ", 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, got)
	})

	t.Run("page past the end keeps the total", func(t *testing.T) {
		got, total, err := svc.Search(ctx, "drill", 3, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Empty(t, got)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := setup(t)

	it, err := svc.Create(ctx, item.CreateRequest{
		Name:        "Kayak",
		Description: "Single-seat kayak",
		Available:   true,
	}, owner.ID)
	require.NoError(t, err)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, it.ID, other.ID)
		assert.ErrorIs(t, err, item.ErrNotOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, it.ID, owner.ID))

		_, err := svc.GetByID(ctx, it.ID)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})
}
