package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/shutterly/internal/model"
)

// SQLStore is the sqlx-backed implementation of Store. All state lives in a
// single app_state table of (name, value) rows with JSON-serialized values,
// so the schema is identical across the supported drivers.
type SQLStore struct {
	db     *sqlx.DB
	upsert string
}

// NewSQLStore creates a new SQLStore. The app_state table must already
// exist (db.Migrate).
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		upsert: db.Rebind(upsertStatement(db.DriverName())),
	}
}

// upsertStatement returns the upsert for the connected driver. MySQL has no
// ON CONFLICT clause; it spells the same operation ON DUPLICATE KEY UPDATE.
func upsertStatement(driver string) string {
	if driver == "mysql" {
		return `
		INSERT INTO app_state (name, value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			updated_at = VALUES(updated_at)
	`
	}
	return `
		INSERT INTO app_state (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *SQLStore) q(query string) string { return s.db.Rebind(query) }

// put serializes v and upserts it under name.
func (s *SQLStore) put(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, s.upsert, name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, name, err)
	}
	return nil
}

// get deserializes the value under name into dst. Returns false when the
// key is absent. A value that no longer parses is treated as absent — a
// hand-edited or truncated store must never take the application down.
func (s *SQLStore) get(ctx context.Context, name string, dst any) (bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, s.q(`SELECT value FROM app_state WHERE name = ?`), name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", ErrUnavailable, name, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("storage: corrupt value under %s, treating as empty: %v", name, err)
		return false, nil
	}
	return true, nil
}

func (s *SQLStore) del(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM app_state WHERE name = ?`), name)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, name, err)
	}
	return nil
}

// SaveUsers persists the full user collection in order.
func (s *SQLStore) SaveUsers(ctx context.Context, users []model.User) error {
	return s.put(ctx, KeyUsers, users)
}

// LoadUsers returns the persisted users, with follow sets deduplicated in
// case the stored value was edited by hand.
func (s *SQLStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := s.get(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Followers = dedupe(users[i].Followers)
		users[i].Following = dedupe(users[i].Following)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// SavePhotos persists the photo collection. The sequence order is the feed
// order, most recent first.
func (s *SQLStore) SavePhotos(ctx context.Context, photos []model.Photo) error {
	return s.put(ctx, KeyPhotos, photos)
}

// LoadPhotos returns the persisted photos. LikedBy sets are deduplicated
// and the like count is recomputed from the set, so a drifted counter never
// survives a reload.
func (s *SQLStore) LoadPhotos(ctx context.Context) ([]model.Photo, error) {
	var photos []model.Photo
	if _, err := s.get(ctx, KeyPhotos, &photos); err != nil {
		return nil, err
	}
	for i := range photos {
		photos[i].LikedBy = dedupe(photos[i].LikedBy)
		photos[i].LikeCount = len(photos[i].LikedBy)
		if photos[i].Comments == nil {
			photos[i].Comments = []model.Comment{}
		}
	}
	if photos == nil {
		photos = []model.Photo{}
	}
	return photos, nil
}

// SaveCurrentUser persists the logged-in user pointer; nil removes it.
func (s *SQLStore) SaveCurrentUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return s.del(ctx, KeyCurrentUser)
	}
	return s.put(ctx, KeyCurrentUser, user)
}

// LoadCurrentUser returns the logged-in user, or nil if nobody is logged in.
func (s *SQLStore) LoadCurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	ok, err := s.get(ctx, KeyCurrentUser, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	u.Followers = dedupe(u.Followers)
	u.Following = dedupe(u.Following)
	return &u, nil
}

// SaveLikedPhotos persists the current user's liked-photo index.
func (s *SQLStore) SaveLikedPhotos(ctx context.Context, photoIDs []string) error {
	return s.put(ctx, KeyLikedPhotos, photoIDs)
}

// LoadLikedPhotos returns the liked-photo index, deduplicated.
func (s *SQLStore) LoadLikedPhotos(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := s.get(ctx, KeyLikedPhotos, &ids); err != nil {
		return nil, err
	}
	return dedupe(ids), nil
}

// SaveSavedPhotos persists the save records.
func (s *SQLStore) SaveSavedPhotos(ctx context.Context, saved []model.SavedPhoto) error {
	return s.put(ctx, KeySavedPhotos, saved)
}

// LoadSavedPhotos returns the save records with duplicate
// (photo, collection) pairs removed, keeping the first occurrence.
func (s *SQLStore) LoadSavedPhotos(ctx context.Context) ([]model.SavedPhoto, error) {
	var saved []model.SavedPhoto
	if _, err := s.get(ctx, KeySavedPhotos, &saved); err != nil {
		return nil, err
	}
	seen := make(map[[2]string]bool, len(saved))
	out := saved[:0]
	for _, sp := range saved {
		k := [2]string{sp.PhotoID, sp.CollectionID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, sp)
	}
	if out == nil {
		out = []model.SavedPhoto{}
	}
	return out, nil
}

// SaveCollections persists the collections in creation order.
func (s *SQLStore) SaveCollections(ctx context.Context, collections []model.Collection) error {
	return s.put(ctx, KeyCollections, collections)
}

// LoadCollections returns the persisted collections with photo ID sets
// deduplicated.
func (s *SQLStore) LoadCollections(ctx context.Context) ([]model.Collection, error) {
	var collections []model.Collection
	if _, err := s.get(ctx, KeyCollections, &collections); err != nil {
		return nil, err
	}
	for i := range collections {
		collections[i].PhotoIDs = dedupe(collections[i].PhotoIDs)
	}
	if collections == nil {
		collections = []model.Collection{}
	}
	return collections, nil
}

// SaveTheme persists the theme preference.
func (s *SQLStore) SaveTheme(ctx context.Context, theme model.Theme) error {
	return s.put(ctx, KeyTheme, theme)
}

// LoadTheme returns the persisted theme. Anything other than a stored
// "dark" — absent, corrupt, or unknown — falls back to light.
func (s *SQLStore) LoadTheme(ctx context.Context) (model.Theme, error) {
	var t model.Theme
	if _, err := s.get(ctx, KeyTheme, &t); err != nil {
		return "", err
	}
	if t == model.ThemeDark {
		return model.ThemeDark, nil
	}
	return model.ThemeLight, nil
}

// Clear removes all known keys in a single transaction so a logout can
// never leave a partially cleared store behind.
func (s *SQLStore) Clear(ctx context.Context) error {
	keys := []string{
		KeyUsers, KeyPhotos, KeyCurrentUser, KeyLikedPhotos,
		KeySavedPhotos, KeyCollections, KeyTheme,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin clear: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM app_state WHERE name = ?`), k); err != nil {
			return fmt.Errorf("%w: clear %s: %v", ErrUnavailable, k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit clear: %v", ErrUnavailable, err)
	}
	return nil
}

// dedupe returns ids with duplicates removed, preserving first-seen order.
// Sets are serialized as ordered sequences, so duplicates can only appear
// through corrupted or hand-edited storage.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
