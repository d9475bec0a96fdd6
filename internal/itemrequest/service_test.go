package itemrequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	"github.com/peershare/item-sharing-backend/internal/user"
)

func TestItemRequests(t *testing.T) {
	ctx := context.Background()

	userSvc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
	requestor, err := userSvc.Register(ctx, "requestor@example.com", "password1", "Requestor")
	require.NoError(t, err)

	svc := itemrequest.NewService(itemrequest.NewMemoryRepository(), userSvc)

	t.Run("create", func(t *testing.T) {
		req, err := svc.Create(ctx, "  Looking for a circular saw  ", requestor.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, "Looking for a circular saw", req.Description)
		assert.Equal(t, requestor.ID, req.RequestorID)
		assert.Equal(t, "Requestor", req.RequestorName)
	})

	t.Run("blank description", func(t *testing.T) {
		_, err := svc.Create(ctx, "   ", requestor.ID)
		assert.ErrorIs(t, err, itemrequest.ErrDescRequired)
	})

	t.Run("unknown requestor", func(t *testing.T) {
		_, err := svc.Create(ctx, "Anything", "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("list by requestor", func(t *testing.T) {
		_, err := svc.Create(ctx, "Also a ladder", requestor.ID)
		require.NoError(t, err)

		got, total, err := svc.ListByRequestor(ctx, requestor.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("list others excludes own requests", func(t *testing.T) {
		other, err := userSvc.Register(ctx, "other@example.com", "password1", "Other")
		require.NoError(t, err)

		theirs, err := svc.Create(ctx, "Borrowing a tile cutter", other.ID)
		require.NoError(t, err)

		got, total, err := svc.ListOthers(ctx, requestor.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, theirs.ID, got[0].ID)
		assert.Equal(t, "Other", got[0].RequestorName)

		// Flipped viewer sees the requestor's two requests instead.
		_, total, err = svc.ListOthers(ctx, other.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("page past the end keeps the total", func(t *testing.T) {
		got, total, err := svc.ListByRequestor(ctx, requestor.ID, 5, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Empty(t, got)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, itemrequest.ErrNotFound)
	})
}
