package photo

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotOwner     = apperror.New(http.StatusForbidden, "only the item owner can manage its photos")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrItemNotFound = apperror.New(http.StatusNotFound, "item not found")
	ErrNoThumbnail  = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// Photo is an image attached to a listed item. The original blob and its
// thumbnail live in Storage; this record only holds metadata and paths.
type Photo struct {
	ID            string
	ItemID        string
	UserID        string // Uploader; always the item owner
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for a photo by its ID.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
