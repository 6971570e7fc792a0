package app

import (
	"context"
	"fmt"

	"github.com/joestump/shutterly/internal/model"
)

// CreateCollection creates an empty collection owned by the current user.
func (a *App) CreateCollection(ctx context.Context, title, description string) (model.Collection, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return model.Collection{}, fmt.Errorf("%w: creating a collection requires a logged-in user", model.ErrUnauthorized)
	}

	c, err := model.NewCollection(cur.ID, title, description)
	if err != nil {
		return model.Collection{}, err
	}

	a.collections = append(a.collections, c)
	a.persistCollections(ctx)
	return cloneCollection(c), nil
}

// SavePhoto saves a photo generally — into the default bucket, a save
// record with no collection. It is never silently dropped: the record is
// what marks the photo as saved even before any collection exists.
func (a *App) SavePhoto(ctx context.Context, photoID string) error {
	return a.SaveToCollection(ctx, photoID, "")
}

// SaveToCollection saves a photo, optionally into one of the current user's
// collections. Saving the same (photo, collection) pair again is a no-op,
// never a duplicate record — stats count each save once. The collection's
// cover is set from the photo on its first insert.
func (a *App) SaveToCollection(ctx context.Context, photoID, collectionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return fmt.Errorf("%w: saving requires a logged-in user", model.ErrUnauthorized)
	}
	p := a.findPhoto(photoID)
	if p == nil {
		return fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}

	for _, sp := range a.saved {
		if sp.PhotoID == photoID && sp.CollectionID == collectionID {
			return nil
		}
	}

	if collectionID != "" {
		var col *model.Collection
		for i := range a.collections {
			if a.collections[i].ID == collectionID {
				col = &a.collections[i]
				break
			}
		}
		if col == nil {
			return fmt.Errorf("%w: collection %q", model.ErrNotFound, collectionID)
		}
		if col.OwnerID != cur.ID {
			return fmt.Errorf("%w: collection belongs to another user", model.ErrForbidden)
		}

		// Keep an existing cover; only the first insert establishes one.
		cover := ""
		if col.CoverImage == "" {
			cover = p.ImageURL
		}
		if _, err := col.AddPhoto(photoID, cover); err != nil {
			return err
		}
	}

	a.saved = append(a.saved, model.NewSavedPhoto(photoID, collectionID))
	a.persistSaved(ctx)
	if collectionID != "" {
		a.persistCollections(ctx)
	}
	return nil
}

// Unsave removes every save record for the photo and removes the photo from
// every collection of the current user. Unsave means "remove everywhere":
// a photo never lingers in a collection after it stops being saved.
func (a *App) Unsave(ctx context.Context, photoID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return fmt.Errorf("%w: unsaving requires a logged-in user", model.ErrUnauthorized)
	}

	found := false
	remaining := a.saved[:0]
	for _, sp := range a.saved {
		if sp.PhotoID == photoID {
			found = true
			continue
		}
		remaining = append(remaining, sp)
	}
	if !found {
		return fmt.Errorf("%w: photo %q is not saved", model.ErrNotFound, photoID)
	}
	a.saved = remaining

	for i := range a.collections {
		if a.collections[i].OwnerID == cur.ID {
			a.collections[i].RemovePhoto(photoID)
		}
	}

	a.persistSaved(ctx)
	a.persistCollections(ctx)
	return nil
}
