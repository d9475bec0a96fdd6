package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
)

const (
	thumbnailMaxWidth  = 300
	thumbnailMaxHeight = 300
)

// UploadInput carries an uploaded photo for an item.
type UploadInput struct {
	ItemID      string
	UserID      string
	Filename    string
	ContentType string
	Content     io.Reader
}

type Service interface {
	// Upload stores a photo for an item. Only the item owner may upload.
	Upload(ctx context.Context, in UploadInput) (*Photo, error)

	Get(ctx context.Context, id string) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)

	// Download returns the photo blob and its metadata.
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)

	// DownloadThumbnail returns the thumbnail blob and the photo metadata.
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)

	// Delete removes a photo; only the item owner may delete.
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo        Repository
	itemService item.Service
	storage     storage.Storage
	imgProc     *storage.ImageProcessor
}

func NewService(repo Repository, itemService item.Service, store storage.Storage) Service {
	return &service{
		repo:        repo,
		itemService: itemService,
		storage:     store,
		imgProc:     storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	it, err := s.itemService.GetByID(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if it.OwnerID != in.UserID {
		return nil, ErrNotOwner
	}

	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, ErrNotAnImage
	}

	// Buffer the content once so it can be both thumbnailed and saved.
	fileBytes, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}

	photoID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(in.Filename))

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	// Thumbnail generation is best effort; the upload succeeds without it.
	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), thumbnailMaxWidth, thumbnailMaxHeight); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		ItemID:        it.ID,
		UserID:        in.UserID,
		Filename:      in.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   in.ContentType,
		Size:          int64(len(fileBytes)),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Clean up blobs when the metadata write fails.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	it, err := s.itemService.GetByID(ctx, p.ItemID)
	if err == nil && it.OwnerID != actorID {
		return ErrNotOwner
	}
	// When the item itself is already gone, the uploader may still clean up.
	if err != nil && p.UserID != actorID {
		return ErrNotOwner
	}

	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
