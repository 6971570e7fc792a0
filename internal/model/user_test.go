package model_test

import (
	"errors"
	"testing"

	"github.com/joestump/shutterly/internal/model"
)

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		inName  string
		inEmail string
		wantErr bool
	}{
		{"valid", "Ann", "ann@x.io", false},
		{"trims whitespace", "  Ann  ", " ann@x.io ", false},
		{"missing email", "Ann", "", true},
		{"whitespace email", "Ann", "   ", true},
		{"missing name", "", "ann@x.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := model.NewUser(tt.inName, tt.inEmail, "")
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewUser: %v", err)
			}
			if u.ID == "" {
				t.Error("expected a generated ID")
			}
			if u.Followers == nil || u.Following == nil {
				t.Error("expected empty, non-nil follow sets")
			}
		})
	}
}

func TestFollow(t *testing.T) {
	u, err := model.NewUser("Ann", "ann@x.io", "")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	// Self-follow is structurally invalid.
	if _, err := u.Follow(u.ID); !errors.Is(err, model.ErrInvalidOperation) {
		t.Fatalf("self-follow: expected ErrInvalidOperation, got %v", err)
	}

	if _, err := u.Follow(""); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("empty target: expected ErrInvalidArgument, got %v", err)
	}

	added, err := u.Follow("bob-id")
	if err != nil || !added {
		t.Fatalf("first follow: added=%v err=%v", added, err)
	}

	// Second follow of the same target is a no-op.
	added, err = u.Follow("bob-id")
	if err != nil {
		t.Fatalf("repeat follow: %v", err)
	}
	if added {
		t.Error("repeat follow should return false")
	}
	if got := u.FollowingCount(); got != 1 {
		t.Errorf("following count = %d, want 1", got)
	}
}

func TestUnfollow(t *testing.T) {
	u, _ := model.NewUser("Ann", "ann@x.io", "")
	u.Follow("bob-id")

	if !u.Unfollow("bob-id") {
		t.Error("unfollow of followed user should return true")
	}
	if u.Unfollow("bob-id") {
		t.Error("unfollow of unfollowed user should return false")
	}
	if u.IsFollowing("bob-id") {
		t.Error("still following after unfollow")
	}
}
