package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joestump/shutterly/internal/model"
)

// Login attaches to the existing user with the given email or creates a new
// one. This is a mock: there is no credential verification by design. A
// blank name defaults to the local part of the email.
func (a *App) Login(ctx context.Context, name, email, avatar string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, fmt.Errorf("%w: email is required", model.ErrInvalidArgument)
	}
	if name == "" {
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.users {
		if a.users[i].Email == email {
			a.currentID = a.users[i].ID
			a.reconcileLiked()
			a.persistCurrentUser(ctx)
			a.persistLiked(ctx)
			return cloneUser(a.users[i]), nil
		}
	}

	u, err := model.NewUser(name, email, avatar)
	if err != nil {
		return model.User{}, err
	}
	a.users = append(a.users, u)
	a.currentID = u.ID
	a.liked = []string{}
	a.persistUsers(ctx)
	a.persistCurrentUser(ctx)
	a.persistLiked(ctx)
	return cloneUser(u), nil
}

// Logout atomically clears the durable store, then resets the in-memory
// state to match what the next load would see. The clear runs first: a
// failure leaves every key and the whole session in place — the caller
// stays logged in rather than half out, and memory never diverges from the
// store.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Clear(ctx); err != nil {
		return err
	}

	a.users = []model.User{}
	a.photos = []model.Photo{}
	a.currentID = ""
	a.liked = []string{}
	a.saved = []model.SavedPhoto{}
	a.collections = []model.Collection{}
	a.theme = model.ThemeLight
	return nil
}

// Theme returns the current theme preference.
func (a *App) Theme() model.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme updates and persists the theme preference.
func (a *App) SetTheme(ctx context.Context, theme model.Theme) error {
	if err := model.ValidateTheme(theme); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.theme = theme
	if err := a.store.SaveTheme(ctx, theme); err != nil {
		// Theme still switched in memory; the preference just won't survive
		// a restart.
		log.Printf("app: persist theme: %v", err)
	}
	return nil
}
