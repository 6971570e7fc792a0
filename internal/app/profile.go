package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/joestump/shutterly/internal/model"
)

// ToggleFollow flips the current user's follow of targetID and returns the
// new state (true = now following). Both sides of the relationship — the
// follower's following set and the followee's followers set — change in the
// same step, never just one.
func (a *App) ToggleFollow(ctx context.Context, targetID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return false, fmt.Errorf("%w: following requires a logged-in user", model.ErrUnauthorized)
	}
	if targetID == cur.ID {
		return false, fmt.Errorf("%w: a user cannot follow itself", model.ErrInvalidOperation)
	}
	target := a.findUser(targetID)
	if target == nil {
		return false, fmt.Errorf("%w: user %q", model.ErrNotFound, targetID)
	}

	if cur.IsFollowing(targetID) {
		cur.Unfollow(targetID)
		for i, id := range target.Followers {
			if id == cur.ID {
				target.Followers = append(target.Followers[:i], target.Followers[i+1:]...)
				break
			}
		}
		a.persistUsers(ctx)
		a.persistCurrentUser(ctx)
		return false, nil
	}

	if _, err := cur.Follow(targetID); err != nil {
		return false, err
	}
	target.Followers = append(target.Followers, cur.ID)
	a.persistUsers(ctx)
	a.persistCurrentUser(ctx)
	return true, nil
}

// EditProfile updates the current user's name, bio, and avatar, then
// cascades the denormalized owner name and avatar to every photo the user
// authored. The cascade runs in one pass under the lock, so it is never
// partially applied.
func (a *App) EditProfile(ctx context.Context, name, bio, avatar string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, fmt.Errorf("%w: name is required", model.ErrInvalidArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.currentUser()
	if cur == nil {
		return model.User{}, fmt.Errorf("%w: editing a profile requires a logged-in user", model.ErrUnauthorized)
	}

	cur.Name = name
	cur.Bio = strings.TrimSpace(bio)
	cur.Avatar = avatar

	for i := range a.photos {
		if a.photos[i].OwnerID == cur.ID {
			a.photos[i].OwnerName = cur.Name
			a.photos[i].OwnerAvatar = cur.Avatar
		}
	}

	a.persistUsers(ctx)
	a.persistCurrentUser(ctx)
	a.persistPhotos(ctx)
	return cloneUser(*cur), nil
}
