package storage

import (
	"context"
	"errors"

	"github.com/joestump/shutterly/internal/model"
)

var (
	// ErrUnavailable wraps any driver failure. Saves are best-effort: the
	// coordinator logs the degradation and keeps operating in memory.
	ErrUnavailable = errors.New("storage unavailable")
)

// Keys for the named slots in the app_state table. They mirror the slots
// the web client keeps in its local storage, one per entity collection plus
// the logged-in user pointer and the theme preference.
const (
	KeyUsers       = "shutterly_users"
	KeyPhotos      = "shutterly_photos"
	KeyCurrentUser = "shutterly_current_user"
	KeyLikedPhotos = "shutterly_liked_photos"
	KeySavedPhotos = "shutterly_saved_photos"
	KeyCollections = "shutterly_collections"
	KeyTheme       = "shutterly_theme"
)

// Store is the durable round-trip for the full entity state. Loads never
// fail on absent or corrupt data — they return the empty collection — so a
// damaged store degrades to a fresh start rather than a crash. The
// in-memory state owned by the coordinator is always authoritative; the
// store only ever holds the last-serialized snapshot.
type Store interface {
	SaveUsers(ctx context.Context, users []model.User) error
	LoadUsers(ctx context.Context) ([]model.User, error)

	SavePhotos(ctx context.Context, photos []model.Photo) error
	LoadPhotos(ctx context.Context) ([]model.Photo, error)

	// SaveCurrentUser with a nil user removes the logged-in pointer.
	SaveCurrentUser(ctx context.Context, user *model.User) error
	LoadCurrentUser(ctx context.Context) (*model.User, error)

	SaveLikedPhotos(ctx context.Context, photoIDs []string) error
	LoadLikedPhotos(ctx context.Context) ([]string, error)

	SaveSavedPhotos(ctx context.Context, saved []model.SavedPhoto) error
	LoadSavedPhotos(ctx context.Context) ([]model.SavedPhoto, error)

	SaveCollections(ctx context.Context, collections []model.Collection) error
	LoadCollections(ctx context.Context) ([]model.Collection, error)

	SaveTheme(ctx context.Context, theme model.Theme) error
	LoadTheme(ctx context.Context) (model.Theme, error)

	// Clear removes every known key in one transaction: after a successful
	// Clear the next load sees nothing for any key, and a failed Clear
	// leaves all of them in place. Used on logout.
	Clear(ctx context.Context) error
}
