// Package view computes read-only projections over the in-memory entity
// state. Every function is pure: projections are recomputed from the source
// of truth on each call, so no cached view can silently diverge. Nil slices
// are valid empty collections.
package view

import (
	"strings"

	"github.com/joestump/shutterly/internal/model"
)

// Search returns the photos whose title, description, category, or owner
// name contains query, case-insensitively. A blank query returns the input
// unchanged, not an empty result. The filter is stable: result order equals
// input order.
func Search(photos []model.Photo, query string) []model.Photo {
	query = strings.TrimSpace(query)
	if query == "" {
		return photos
	}
	q := strings.ToLower(query)
	out := make([]model.Photo, 0, len(photos))
	for _, p := range photos {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) ||
			strings.Contains(strings.ToLower(p.OwnerName), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory returns the photos whose category exactly matches. The
// CategoryAll sentinel returns the input unchanged.
func FilterByCategory(photos []model.Photo, category model.Category) []model.Photo {
	if category == model.CategoryAll {
		return photos
	}
	out := make([]model.Photo, 0, len(photos))
	for _, p := range photos {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// LikedPhotoIDs derives the set of photo IDs liked by userID from the
// photo-keyed side of the relationship (each photo's LikedBy set).
func LikedPhotoIDs(photos []model.Photo, userID string) map[string]bool {
	out := make(map[string]bool)
	for _, p := range photos {
		if p.IsLikedBy(userID) {
			out[p.ID] = true
		}
	}
	return out
}

// LikedSetFromIndex derives the same set from the user-keyed liked-photos
// index. The two derivations must always agree; the coordinator re-verifies
// that after every like toggle.
func LikedSetFromIndex(photoIDs []string) map[string]bool {
	out := make(map[string]bool, len(photoIDs))
	for _, id := range photoIDs {
		out[id] = true
	}
	return out
}

// SavedPhotoIDs returns the set of photo IDs with at least one save record,
// regardless of which collection the save targeted.
func SavedPhotoIDs(saved []model.SavedPhoto) map[string]bool {
	out := make(map[string]bool, len(saved))
	for _, sp := range saved {
		out[sp.PhotoID] = true
	}
	return out
}

// Stats aggregates a user's authored photos.
type Stats struct {
	Photos   int
	Likes    int
	Comments int
}

// UserStats folds over the photo collection for the photos authored by
// userID. Counts are always recomputed from the underlying sets — a stored
// counter is never trusted over this fold, which is how drift gets caught.
func UserStats(userID string, photos []model.Photo) Stats {
	var s Stats
	for _, p := range photos {
		if p.OwnerID != userID {
			continue
		}
		s.Photos++
		s.Likes += len(p.LikedBy)
		s.Comments += len(p.Comments)
	}
	return s
}

// ProfileCollections returns the collections owned by userID, preserving
// creation order.
func ProfileCollections(userID string, collections []model.Collection) []model.Collection {
	out := make([]model.Collection, 0, len(collections))
	for _, c := range collections {
		if c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out
}
