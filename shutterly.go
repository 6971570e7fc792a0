// Package shutterly assembles the photo-sharing data store: configuration,
// database, migrations, storage, and the mutation coordinator. The rendering
// layer opens the store once at startup and drives every user action through
// the returned App; the aliases below re-export the types it needs to do so.
package shutterly

import (
	"context"
	"fmt"

	"github.com/joestump/shutterly/internal/app"
	"github.com/joestump/shutterly/internal/config"
	"github.com/joestump/shutterly/internal/db"
	"github.com/joestump/shutterly/internal/model"
	"github.com/joestump/shutterly/internal/storage"
	"github.com/joestump/shutterly/internal/view"
)

// App is the mutation coordinator: the only writer over the entity state.
type App = app.App

// PhotoDraft is the upload form passed to App.Upload.
type PhotoDraft = app.PhotoDraft

// ImageSource resolves an image payload asynchronously for App.UploadFrom.
type ImageSource = app.ImageSource

// Config carries the database, theme, and seed settings.
type Config = config.Config

// Entity types returned by the App accessors.
type (
	User       = model.User
	Photo      = model.Photo
	Comment    = model.Comment
	Collection = model.Collection
	SavedPhoto = model.SavedPhoto
)

// Category classifies a photo. CategoryAll is a filter sentinel only and is
// never a valid category for a stored photo.
type Category = model.Category

const (
	CategoryAll          = model.CategoryAll
	CategoryNature       = model.CategoryNature
	CategoryArchitecture = model.CategoryArchitecture
	CategoryPortrait     = model.CategoryPortrait
	CategoryLandscape    = model.CategoryLandscape
	CategoryStreet       = model.CategoryStreet
)

// Theme is the persisted UI theme preference.
type Theme = model.Theme

const (
	ThemeLight = model.ThemeLight
	ThemeDark  = model.ThemeDark
)

// Stats aggregates a user's authored photos.
type Stats = view.Stats

// LoadConfig reads configuration from the environment (SHUTTERLY_ prefix)
// and an optional shutterly.yaml.
func LoadConfig() (*Config, error) {
	return config.Load()
}

// Open loads the configuration and builds the store over it.
func Open(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return OpenWith(ctx, cfg)
}

// OpenWith opens the configured database, applies pending migrations, and
// builds the coordinator from the last persisted snapshot.
func OpenWith(ctx context.Context, cfg *Config) (*App, error) {
	conn, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(conn, cfg.DB.Driver); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return app.New(ctx, storage.NewSQLStore(conn)), nil
}

// Pure projections for the rendering layer. Each recomputes from the slices
// the App accessors return.

// Search returns the photos matching query; see the view package.
func Search(photos []Photo, query string) []Photo {
	return view.Search(photos, query)
}

// FilterByCategory returns the photos in category; CategoryAll returns the
// input unchanged.
func FilterByCategory(photos []Photo, category Category) []Photo {
	return view.FilterByCategory(photos, category)
}

// UserStats folds photo, like, and comment totals for the photos authored
// by userID.
func UserStats(userID string, photos []Photo) Stats {
	return view.UserStats(userID, photos)
}

// ProfileCollections returns the collections owned by userID in creation
// order.
func ProfileCollections(userID string, collections []Collection) []Collection {
	return view.ProfileCollections(userID, collections)
}

// SavedPhotoIDs returns the set of photo IDs with at least one save record.
func SavedPhotoIDs(saved []SavedPhoto) map[string]bool {
	return view.SavedPhotoIDs(saved)
}
