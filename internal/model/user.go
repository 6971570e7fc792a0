package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// User is an account on the platform. Followers and Following are sets of
// user IDs stored as ordered slices; both sides of the follow relationship
// are kept consistent by the coordinator, never by the entities themselves.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

// NewUser creates a user with a fresh ID and empty follow sets.
// Name and email are required; both are trimmed.
func NewUser(name, email, avatar string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}
	if name == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	return User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		Followers: []string{},
		Following: []string{},
	}, nil
}

// Follow adds targetID to the user's following set. It returns false if the
// user already follows the target. The reciprocal followers update on the
// target is the caller's responsibility.
func (u *User) Follow(targetID string) (bool, error) {
	if targetID == "" {
		return false, fmt.Errorf("%w: target user ID is required", ErrInvalidArgument)
	}
	if targetID == u.ID {
		return false, fmt.Errorf("%w: a user cannot follow itself", ErrInvalidOperation)
	}
	if u.IsFollowing(targetID) {
		return false, nil
	}
	u.Following = append(u.Following, targetID)
	return true, nil
}

// Unfollow removes targetID from the following set. Returns false if the
// user was not following the target.
func (u *User) Unfollow(targetID string) bool {
	for i, id := range u.Following {
		if id == targetID {
			u.Following = append(u.Following[:i], u.Following[i+1:]...)
			return true
		}
	}
	return false
}

// IsFollowing reports whether the user follows targetID.
func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// FollowerCount returns the number of followers.
func (u *User) FollowerCount() int { return len(u.Followers) }

// FollowingCount returns the number of users this user follows.
func (u *User) FollowingCount() int { return len(u.Following) }
