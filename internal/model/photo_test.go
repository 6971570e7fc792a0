package model_test

import (
	"errors"
	"testing"

	"github.com/joestump/shutterly/internal/model"
)

func newTestPhoto(t *testing.T) model.Photo {
	t.Helper()
	owner, err := model.NewUser("Ann", "ann@x.io", "https://i.example/ann.png")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	p, err := model.NewPhoto("Dawn", "golden hour", "https://img.example/dawn.jpg", model.CategoryNature, owner)
	if err != nil {
		t.Fatalf("NewPhoto: %v", err)
	}
	return p
}

func TestNewPhotoValidation(t *testing.T) {
	owner, _ := model.NewUser("Ann", "ann@x.io", "")

	tests := []struct {
		name     string
		title    string
		image    string
		category model.Category
		wantErr  bool
	}{
		{"valid", "Dawn", "data:image/png;base64,xyz", model.CategoryNature, false},
		{"missing title", "", "data:...", model.CategoryNature, true},
		{"whitespace title", "   ", "data:...", model.CategoryNature, true},
		{"missing image", "Dawn", "", model.CategoryNature, true},
		{"bad category", "Dawn", "data:...", model.Category("selfies"), true},
		{"all is a filter sentinel, not a category", "Dawn", "data:...", model.CategoryAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := model.NewPhoto(tt.title, "", tt.image, tt.category, owner)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPhoto: %v", err)
			}
			if p.LikeCount != 0 || len(p.LikedBy) != 0 || len(p.Comments) != 0 {
				t.Error("new photo should start with no likes or comments")
			}
			if p.OwnerID != owner.ID || p.OwnerName != owner.Name {
				t.Error("owner snapshot not taken")
			}
		})
	}
}

func TestAddLikeIdempotent(t *testing.T) {
	p := newTestPhoto(t)

	added, err := p.AddLike("bob-id")
	if err != nil || !added {
		t.Fatalf("first like: added=%v err=%v", added, err)
	}

	// Liking twice must change state identically to liking once.
	added, err = p.AddLike("bob-id")
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if added {
		t.Error("second like should return false")
	}
	if p.LikeCount != 1 || len(p.LikedBy) != 1 {
		t.Errorf("after double like: count=%d likedBy=%v", p.LikeCount, p.LikedBy)
	}
}

func TestAddLikeEmptyUser(t *testing.T) {
	p := newTestPhoto(t)
	if _, err := p.AddLike(""); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLikeCountMatchesSet(t *testing.T) {
	p := newTestPhoto(t)

	// An arbitrary toggle sequence, including redundant operations.
	ops := []struct {
		user string
		like bool
	}{
		{"u1", true}, {"u2", true}, {"u1", true}, {"u1", false},
		{"u3", true}, {"u2", false}, {"u2", false}, {"u1", false},
		{"u4", true}, {"u3", false},
	}
	for _, op := range ops {
		if op.like {
			p.AddLike(op.user)
		} else {
			p.RemoveLike(op.user)
		}
		if p.LikeCount != len(p.LikedBy) {
			t.Fatalf("invariant broken after %+v: count=%d set=%v", op, p.LikeCount, p.LikedBy)
		}
	}
}

func TestRemoveLikeFloorsAtZero(t *testing.T) {
	p := newTestPhoto(t)
	if p.RemoveLike("nobody") {
		t.Error("removing an absent like should return false")
	}
	if p.LikeCount != 0 {
		t.Errorf("count went negative: %d", p.LikeCount)
	}

	// Inconsistent replay: a like set entry with a drifted zero counter.
	p.LikedBy = []string{"u1"}
	p.LikeCount = 0
	p.RemoveLike("u1")
	if p.LikeCount != 0 {
		t.Errorf("count must stay clamped at zero, got %d", p.LikeCount)
	}
}

func TestAddComment(t *testing.T) {
	p := newTestPhoto(t)
	author, _ := model.NewUser("Bob", "bob@x.io", "")

	if _, err := model.NewComment(author, "   "); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("blank text: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := model.NewComment(model.User{}, "hi"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("missing author: expected ErrInvalidArgument, got %v", err)
	}

	c1, err := model.NewComment(author, "first")
	if err != nil {
		t.Fatalf("NewComment: %v", err)
	}
	if _, err := p.AddComment(c1); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	c2, _ := model.NewComment(author, "second")
	p.AddComment(c2)

	// Insertion order is chronological order.
	if p.Comments[0].Text != "first" || p.Comments[1].Text != "second" {
		t.Errorf("comment order wrong: %v", p.Comments)
	}
	if p.CommentCount() != 2 {
		t.Errorf("comment count = %d, want 2", p.CommentCount())
	}
}

func TestEditComment(t *testing.T) {
	p := newTestPhoto(t)
	author, _ := model.NewUser("Bob", "bob@x.io", "")
	c, _ := model.NewComment(author, "original")
	p.AddComment(c)

	if _, err := p.EditComment(c.ID, "someone-else", "hacked"); !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("non-author edit: expected ErrForbidden, got %v", err)
	}
	if _, err := p.EditComment(c.ID, author.ID, "  "); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("blank edit: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := p.EditComment("missing", author.ID, "text"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("absent id: expected ErrNotFound, got %v", err)
	}

	edited, err := p.EditComment(c.ID, author.ID, "revised")
	if err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	if edited.Text != "revised" || !edited.Edited || edited.EditedAt == nil {
		t.Errorf("edit not recorded: %+v", edited)
	}
}

func TestDeleteComment(t *testing.T) {
	p := newTestPhoto(t)
	author, _ := model.NewUser("Bob", "bob@x.io", "")
	c, _ := model.NewComment(author, "bye")
	p.AddComment(c)

	if err := p.DeleteComment(c.ID, "someone-else"); !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("non-author delete: expected ErrForbidden, got %v", err)
	}
	if err := p.DeleteComment("missing", author.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("absent id: expected ErrNotFound, got %v", err)
	}
	if err := p.DeleteComment(c.ID, author.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if p.CommentCount() != 0 {
		t.Errorf("comment not removed: %v", p.Comments)
	}
}
