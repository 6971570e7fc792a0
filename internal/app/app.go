// Package app is the mutation coordinator: the only component that chains
// an entity mutation with its cross-entity cascades and the persistence
// flush. The rendering layer dispatches every user action here and reads
// lists back through the accessors and the view package; it never mutates
// entities directly.
package app

import (
	"context"
	"log"
	"sync"

	"github.com/joestump/shutterly/internal/model"
	"github.com/joestump/shutterly/internal/storage"
	"github.com/joestump/shutterly/internal/view"
)

// App owns the in-memory entity state. It is constructed once at startup
// and passed to whatever needs it — there is no ambient global state.
//
// The mutex makes each mutation's critical section (read state, compute,
// write, flush) atomic with respect to the store. Operations that resolve
// an image payload asynchronously do so outside the lock, so unrelated
// mutations may interleave with a pending file conversion without ever
// observing a torn index.
type App struct {
	mu    sync.Mutex
	store storage.Store

	users       []model.User
	photos      []model.Photo // feed order: most recent first
	currentID   string
	liked       []string // photo IDs liked by the current user
	saved       []model.SavedPhoto
	collections []model.Collection
	theme       model.Theme
}

// New builds an App from the last persisted snapshot. Load failures are a
// degradation, not a crash: the affected collection starts empty and the
// store keeps operating in memory.
func New(ctx context.Context, store storage.Store) *App {
	a := &App{store: store, theme: model.ThemeLight}

	var err error
	if a.users, err = store.LoadUsers(ctx); err != nil {
		log.Printf("app: load users: %v", err)
		a.users = []model.User{}
	}
	if a.photos, err = store.LoadPhotos(ctx); err != nil {
		log.Printf("app: load photos: %v", err)
		a.photos = []model.Photo{}
	}
	if a.liked, err = store.LoadLikedPhotos(ctx); err != nil {
		log.Printf("app: load liked photos: %v", err)
		a.liked = []string{}
	}
	if a.saved, err = store.LoadSavedPhotos(ctx); err != nil {
		log.Printf("app: load saved photos: %v", err)
		a.saved = []model.SavedPhoto{}
	}
	if a.collections, err = store.LoadCollections(ctx); err != nil {
		log.Printf("app: load collections: %v", err)
		a.collections = []model.Collection{}
	}
	if theme, err := store.LoadTheme(ctx); err != nil {
		log.Printf("app: load theme: %v", err)
	} else {
		a.theme = theme
	}

	cur, err := store.LoadCurrentUser(ctx)
	if err != nil {
		log.Printf("app: load current user: %v", err)
	} else if cur != nil {
		// The users collection is authoritative; the pointer only selects.
		if a.findUser(cur.ID) != nil {
			a.currentID = cur.ID
		}
	}

	a.reconcileLiked()
	return a
}

// Seed populates mock users and photos when the corresponding collections
// are empty, so a first launch has something to browse.
func (a *App) Seed(ctx context.Context, users []model.User, photos []model.Photo) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.users) == 0 && len(users) > 0 {
		a.users = append([]model.User{}, users...)
		a.persistUsers(ctx)
	}
	if len(a.photos) == 0 && len(photos) > 0 {
		a.photos = append([]model.Photo{}, photos...)
		a.persistPhotos(ctx)
	}
}

// findUser returns a pointer into the users slice, or nil. Callers must
// hold the lock and must not retain the pointer past a slice mutation.
func (a *App) findUser(id string) *model.User {
	for i := range a.users {
		if a.users[i].ID == id {
			return &a.users[i]
		}
	}
	return nil
}

// findPhoto returns a pointer into the photos slice, or nil.
func (a *App) findPhoto(id string) *model.Photo {
	for i := range a.photos {
		if a.photos[i].ID == id {
			return &a.photos[i]
		}
	}
	return nil
}

// currentUser returns the logged-in user, or nil.
func (a *App) currentUser() *model.User {
	if a.currentID == "" {
		return nil
	}
	return a.findUser(a.currentID)
}

// reconcileLiked rebuilds the current user's liked index from the
// photo-keyed side of the relationship, preserving the existing order for
// entries that survive. The photos' LikedBy sets are the source of truth;
// the index is a projection of them.
func (a *App) reconcileLiked() {
	if a.currentID == "" {
		a.liked = []string{}
		return
	}
	derived := view.LikedPhotoIDs(a.photos, a.currentID)
	out := make([]string, 0, len(derived))
	for _, id := range a.liked {
		if derived[id] {
			out = append(out, id)
			delete(derived, id)
		}
	}
	for _, p := range a.photos {
		if derived[p.ID] {
			out = append(out, p.ID)
		}
	}
	a.liked = out
}

// verifyLikedIndex checks the dual-index invariant: the user-keyed liked
// index and the photo-keyed LikedBy sets must describe the same set. A
// mismatch is repaired from the photo side and logged.
func (a *App) verifyLikedIndex() {
	fromPhotos := view.LikedPhotoIDs(a.photos, a.currentID)
	fromIndex := view.LikedSetFromIndex(a.liked)
	if len(fromPhotos) == len(fromIndex) {
		match := true
		for id := range fromPhotos {
			if !fromIndex[id] {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	log.Printf("app: liked index diverged from photo state, rebuilding")
	a.reconcileLiked()
}

// Persistence flush helpers. Saves are best-effort: a failure leaves the
// in-memory state authoritative, logs the degradation, and never fails the
// mutation that triggered it.

func (a *App) persistUsers(ctx context.Context) {
	if err := a.store.SaveUsers(ctx, a.users); err != nil {
		log.Printf("app: persist users: %v", err)
	}
}

func (a *App) persistPhotos(ctx context.Context) {
	if err := a.store.SavePhotos(ctx, a.photos); err != nil {
		log.Printf("app: persist photos: %v", err)
	}
}

func (a *App) persistCurrentUser(ctx context.Context) {
	if err := a.store.SaveCurrentUser(ctx, a.currentUser()); err != nil {
		log.Printf("app: persist current user: %v", err)
	}
}

func (a *App) persistLiked(ctx context.Context) {
	if err := a.store.SaveLikedPhotos(ctx, a.liked); err != nil {
		log.Printf("app: persist liked photos: %v", err)
	}
}

func (a *App) persistSaved(ctx context.Context) {
	if err := a.store.SaveSavedPhotos(ctx, a.saved); err != nil {
		log.Printf("app: persist saved photos: %v", err)
	}
}

func (a *App) persistCollections(ctx context.Context) {
	if err := a.store.SaveCollections(ctx, a.collections); err != nil {
		log.Printf("app: persist collections: %v", err)
	}
}

// Read accessors. All return copies: callers render them, they never get a
// window into the coordinator's state.

// Feed returns every photo in feed order, most recently uploaded first.
func (a *App) Feed() []model.Photo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return clonePhotos(a.photos)
}

// Photo returns the photo with id.
func (a *App) Photo(id string) (model.Photo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.findPhoto(id)
	if p == nil {
		return model.Photo{}, model.ErrNotFound
	}
	return clonePhoto(*p), nil
}

// Users returns every known user.
func (a *App) Users() []model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.User, len(a.users))
	for i, u := range a.users {
		out[i] = cloneUser(u)
	}
	return out
}

// User returns the user with id.
func (a *App) User(id string) (model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := a.findUser(id)
	if u == nil {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(*u), nil
}

// CurrentUser returns the logged-in user, or nil.
func (a *App) CurrentUser() *model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := a.currentUser()
	if u == nil {
		return nil
	}
	c := cloneUser(*u)
	return &c
}

// Collections returns every collection in creation order.
func (a *App) Collections() []model.Collection {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Collection, len(a.collections))
	for i, c := range a.collections {
		out[i] = cloneCollection(c)
	}
	return out
}

// SavedPhotos returns every save record of the current session.
func (a *App) SavedPhotos() []model.SavedPhoto {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.SavedPhoto{}, a.saved...)
}

// LikedPhotoIDs returns the current user's liked-photo index in order.
func (a *App) LikedPhotoIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string{}, a.liked...)
}

func cloneUser(u model.User) model.User {
	u.Followers = append([]string{}, u.Followers...)
	u.Following = append([]string{}, u.Following...)
	return u
}

func clonePhoto(p model.Photo) model.Photo {
	p.LikedBy = append([]string{}, p.LikedBy...)
	p.Comments = append([]model.Comment{}, p.Comments...)
	return p
}

func clonePhotos(photos []model.Photo) []model.Photo {
	out := make([]model.Photo, len(photos))
	for i, p := range photos {
		out[i] = clonePhoto(p)
	}
	return out
}

func cloneCollection(c model.Collection) model.Collection {
	c.PhotoIDs = append([]string{}, c.PhotoIDs...)
	return c
}
