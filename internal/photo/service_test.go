package photo_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/photo"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type fixture struct {
	svc   photo.Service
	owner *user.User
	other *user.User
	item  *item.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userSvc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
	owner, err := userSvc.Register(ctx, "owner@example.com", "password1", "Owner")
	require.NoError(t, err)
	other, err := userSvc.Register(ctx, "other@example.com", "password1", "Other")
	require.NoError(t, err)

	itemSvc := item.NewService(item.NewMemoryRepository(), userSvc)
	it, err := itemSvc.Create(ctx, item.CreateRequest{
		Name:        "Projector",
		Description: "1080p home projector",
		Available:   true,
	}, owner.ID)
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		svc:   photo.NewService(photo.NewMemoryRepository(), itemSvc, store),
		owner: owner,
		other: other,
		item:  it,
	}
}

// testPNG renders a small solid PNG so thumbnailing has real image data.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (f *fixture) upload(t *testing.T) *photo.Photo {
	t.Helper()
	p, err := f.svc.Upload(context.Background(), photo.UploadInput{
		ItemID:      f.item.ID,
		UserID:      f.owner.ID,
		Filename:    "projector.png",
		ContentType: "image/png",
		Content:     bytes.NewReader(testPNG(t)),
	})
	require.NoError(t, err)
	return p
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("owner uploads and thumbnail is generated", func(t *testing.T) {
		f := newFixture(t)

		p := f.upload(t)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, f.item.ID, p.ItemID)
		assert.Equal(t, "image/png", p.ContentType)
		assert.Positive(t, p.Size)
		assert.NotNil(t, p.ThumbnailPath)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Upload(ctx, photo.UploadInput{
			ItemID:      f.item.ID,
			UserID:      f.other.ID,
			Filename:    "projector.png",
			ContentType: "image/png",
			Content:     bytes.NewReader(testPNG(t)),
		})
		assert.ErrorIs(t, err, photo.ErrNotOwner)
	})

	t.Run("non-image content type", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Upload(ctx, photo.UploadInput{
			ItemID:      f.item.ID,
			UserID:      f.owner.ID,
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Content:     bytes.NewReader([]byte("not an image")),
		})
		assert.ErrorIs(t, err, photo.ErrNotAnImage)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Upload(ctx, photo.UploadInput{
			ItemID:      "00000000-0000-0000-0000-000000000000",
			UserID:      f.owner.ID,
			Filename:    "projector.png",
			ContentType: "image/png",
			Content:     bytes.NewReader(testPNG(t)),
		})
		assert.ErrorIs(t, err, photo.ErrItemNotFound)
	})
}

func TestDownloadPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	original := testPNG(t)

	p, err := f.svc.Upload(ctx, photo.UploadInput{
		ItemID:      f.item.ID,
		UserID:      f.owner.ID,
		Filename:    "projector.png",
		ContentType: "image/png",
		Content:     bytes.NewReader(original),
	})
	require.NoError(t, err)

	t.Run("original round-trips", func(t *testing.T) {
		stream, meta, err := f.svc.Download(ctx, p.ID)
		require.NoError(t, err)
		defer stream.Close()

		got, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, original, got)
		assert.Equal(t, p.ID, meta.ID)
	})

	t.Run("thumbnail is a smaller jpeg", func(t *testing.T) {
		stream, _, err := f.svc.DownloadThumbnail(ctx, p.ID)
		require.NoError(t, err)
		defer stream.Close()

		got, err := io.ReadAll(stream)
		require.NoError(t, err)

		img, format, err := image.Decode(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.LessOrEqual(t, img.Bounds().Dx(), 300)
		assert.LessOrEqual(t, img.Bounds().Dy(), 300)
	})

	t.Run("unknown photo", func(t *testing.T) {
		_, _, err := f.svc.Download(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, photo.ErrNotFound)
	})
}

func TestDeletePhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.upload(t)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := f.svc.Delete(ctx, p.ID, f.other.ID)
		assert.ErrorIs(t, err, photo.ErrNotOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, p.ID, f.owner.ID))

		_, err := f.svc.Get(ctx, p.ID)
		assert.ErrorIs(t, err, photo.ErrNotFound)

		_, _, err = f.svc.Download(ctx, p.ID)
		assert.ErrorIs(t, err, photo.ErrNotFound)
	})
}
