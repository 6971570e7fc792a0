package app

import (
	"context"
	"fmt"

	"github.com/joestump/shutterly/internal/model"
)

// PhotoDraft is the upload form: everything a new photo needs besides its
// owner. Image is the resolved payload string — a URL or an inline-encoded
// image; the coordinator never touches raw file bytes.
type PhotoDraft struct {
	Title       string
	Description string
	Category    model.Category
	Image       string
}

// ImageSource resolves an image payload asynchronously, e.g. the upload UI
// converting a chosen file into an inline-encoded string. It must honor
// context cancellation.
type ImageSource func(ctx context.Context) (string, error)

// Upload creates a new photo owned by the current user and inserts it at
// the head of the feed. Validation happens before any state changes, so a
// failed upload leaves the store untouched.
func (a *App) Upload(ctx context.Context, draft PhotoDraft) (model.Photo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return model.Photo{}, fmt.Errorf("%w: upload requires a logged-in user", model.ErrUnauthorized)
	}

	p, err := model.NewPhoto(draft.Title, draft.Description, draft.Image, draft.Category, *cur)
	if err != nil {
		return model.Photo{}, err
	}

	a.photos = append([]model.Photo{p}, a.photos...)
	a.persistPhotos(ctx)
	return clonePhoto(p), nil
}

// UploadFrom resolves the image payload through src and then uploads. The
// resolution runs outside the coordinator's critical section: unrelated
// mutations may proceed while a file conversion is pending. A context
// cancelled before the resolution completes discards the result — a
// cancelled upload never retroactively inserts a photo.
func (a *App) UploadFrom(ctx context.Context, draft PhotoDraft, src ImageSource) (model.Photo, error) {
	if src == nil {
		return model.Photo{}, fmt.Errorf("%w: image source is required", model.ErrInvalidArgument)
	}
	image, err := src(ctx)
	if err != nil {
		return model.Photo{}, fmt.Errorf("resolve image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return model.Photo{}, err
	}
	draft.Image = image
	return a.Upload(ctx, draft)
}

// ToggleLike flips the current user's like on the photo and returns the new
// state (true = now liked). The photo's LikedBy set and the user-keyed
// liked index move together and their agreement is re-verified before the
// call returns.
func (a *App) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return false, fmt.Errorf("%w: liking requires a logged-in user", model.ErrUnauthorized)
	}
	p := a.findPhoto(photoID)
	if p == nil {
		return false, fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}

	liked := false
	if p.IsLikedBy(cur.ID) {
		p.RemoveLike(cur.ID)
		a.removeLikedID(photoID)
	} else {
		if _, err := p.AddLike(cur.ID); err != nil {
			return false, err
		}
		a.liked = append(a.liked, photoID)
		liked = true
	}

	a.verifyLikedIndex()
	a.persistPhotos(ctx)
	a.persistLiked(ctx)
	return liked, nil
}

func (a *App) removeLikedID(photoID string) {
	for i, id := range a.liked {
		if id == photoID {
			a.liked = append(a.liked[:i], a.liked[i+1:]...)
			return
		}
	}
}

// AddComment appends a comment by the current user to the photo.
func (a *App) AddComment(ctx context.Context, photoID, text string) (model.Comment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return model.Comment{}, fmt.Errorf("%w: commenting requires a logged-in user", model.ErrUnauthorized)
	}
	p := a.findPhoto(photoID)
	if p == nil {
		return model.Comment{}, fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}

	c, err := model.NewComment(*cur, text)
	if err != nil {
		return model.Comment{}, err
	}
	if _, err := p.AddComment(c); err != nil {
		return model.Comment{}, err
	}

	a.persistPhotos(ctx)
	return c, nil
}

// EditComment rewrites one of the current user's comments. The entity
// enforces authorship with the identity passed through here.
func (a *App) EditComment(ctx context.Context, photoID, commentID, text string) (model.Comment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return model.Comment{}, fmt.Errorf("%w: editing a comment requires a logged-in user", model.ErrUnauthorized)
	}
	p := a.findPhoto(photoID)
	if p == nil {
		return model.Comment{}, fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}

	c, err := p.EditComment(commentID, cur.ID, text)
	if err != nil {
		return model.Comment{}, err
	}

	a.persistPhotos(ctx)
	return c, nil
}

// DeleteComment removes one of the current user's comments.
func (a *App) DeleteComment(ctx context.Context, photoID, commentID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return fmt.Errorf("%w: deleting a comment requires a logged-in user", model.ErrUnauthorized)
	}
	p := a.findPhoto(photoID)
	if p == nil {
		return fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}

	if err := p.DeleteComment(commentID, cur.ID); err != nil {
		return err
	}

	a.persistPhotos(ctx)
	return nil
}

// DeletePhoto removes a photo the current user owns, cascading everywhere
// the photo is referenced: every collection (covers cleared when they
// empty), every save record, and the liked index. Its comments die with it.
// No dangling photo ID survives the call.
func (a *App) DeletePhoto(ctx context.Context, photoID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return fmt.Errorf("%w: deleting a photo requires a logged-in user", model.ErrUnauthorized)
	}

	idx := -1
	for i := range a.photos {
		if a.photos[i].ID == photoID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: photo %q", model.ErrNotFound, photoID)
	}
	if a.photos[idx].OwnerID != cur.ID {
		return fmt.Errorf("%w: only the owner may delete a photo", model.ErrForbidden)
	}

	a.photos = append(a.photos[:idx], a.photos[idx+1:]...)

	for i := range a.collections {
		a.collections[i].RemovePhoto(photoID)
	}

	remaining := a.saved[:0]
	for _, sp := range a.saved {
		if sp.PhotoID != photoID {
			remaining = append(remaining, sp)
		}
	}
	a.saved = remaining

	a.removeLikedID(photoID)

	a.persistPhotos(ctx)
	a.persistCollections(ctx)
	a.persistSaved(ctx)
	a.persistLiked(ctx)
	return nil
}
