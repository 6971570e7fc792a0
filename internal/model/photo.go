package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Photo is an uploaded image post. OwnerName and OwnerAvatar are
// denormalized snapshots of the owner's profile, kept in sync by the
// edit-profile cascade. LikeCount always equals len(LikedBy); AddLike and
// RemoveLike mutate both together.
type Photo struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"imageUrl"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	OwnerAvatar string    `json:"ownerAvatar,omitempty"`
	Category    Category  `json:"category"`
	LikeCount   int       `json:"likeCount"`
	LikedBy     []string  `json:"likedBy"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment belongs to exactly one photo and never moves between photos.
// AuthorName and AuthorAvatar are denormalized snapshots taken at creation.
type Comment struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"authorId"`
	AuthorName   string     `json:"authorName"`
	AuthorAvatar string     `json:"authorAvatar,omitempty"`
	Text         string     `json:"text"`
	CreatedAt    time.Time  `json:"createdAt"`
	Edited       bool       `json:"edited,omitempty"`
	EditedAt     *time.Time `json:"editedAt,omitempty"`
}

// NewPhoto creates a photo owned by owner with no likes or comments.
// The image payload is an opaque string: either a URL or an inline-encoded
// image handed over by the upload UI — it is never decoded here.
func NewPhoto(title, description, imageURL string, category Category, owner User) (Photo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Photo{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if imageURL == "" {
		return Photo{}, fmt.Errorf("%w: image payload is required", ErrInvalidArgument)
	}
	if owner.ID == "" {
		return Photo{}, fmt.Errorf("%w: owner is required", ErrInvalidArgument)
	}
	if err := ValidateCategory(category); err != nil {
		return Photo{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return Photo{
		ID:          uuid.New().String(),
		ImageURL:    imageURL,
		Title:       title,
		Description: strings.TrimSpace(description),
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		OwnerAvatar: owner.Avatar,
		Category:    category,
		LikedBy:     []string{},
		Comments:    []Comment{},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NewComment creates a comment authored by author. Text must be non-blank
// after trimming.
func NewComment(author User, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, fmt.Errorf("%w: comment text is required", ErrInvalidArgument)
	}
	if author.ID == "" {
		return Comment{}, fmt.Errorf("%w: comment author is required", ErrInvalidArgument)
	}
	return Comment{
		ID:           uuid.New().String(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// AddLike records a like by userID. Returns false without mutating if the
// user already liked the photo, so repeated calls cannot double count.
func (p *Photo) AddLike(userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	if p.IsLikedBy(userID) {
		return false, nil
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.LikeCount++
	return true, nil
}

// RemoveLike removes userID's like. Returns false if the user had not liked
// the photo. The count is floored at zero so an inconsistent replay can
// never drive it negative.
func (p *Photo) RemoveLike(userID string) bool {
	for i, id := range p.LikedBy {
		if id == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			if p.LikeCount > 0 {
				p.LikeCount--
			}
			return true
		}
	}
	return false
}

// IsLikedBy reports whether userID has liked the photo.
func (p *Photo) IsLikedBy(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// AddComment appends c to the photo's comment list, preserving insertion
// order, and returns the stored comment.
func (p *Photo) AddComment(c Comment) (Comment, error) {
	if strings.TrimSpace(c.Text) == "" {
		return Comment{}, fmt.Errorf("%w: comment text is required", ErrInvalidArgument)
	}
	if c.AuthorID == "" {
		return Comment{}, fmt.Errorf("%w: comment author is required", ErrInvalidArgument)
	}
	p.Comments = append(p.Comments, c)
	return c, nil
}

// EditComment replaces the text of the comment with commentID. Only the
// comment's author may edit it; authorID is the identity asserted by the
// caller. The edited flag and timestamp are set on success.
func (p *Photo) EditComment(commentID, authorID, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, fmt.Errorf("%w: comment text is required", ErrInvalidArgument)
	}
	for i := range p.Comments {
		if p.Comments[i].ID != commentID {
			continue
		}
		if p.Comments[i].AuthorID != authorID {
			return Comment{}, fmt.Errorf("%w: only the author may edit a comment", ErrForbidden)
		}
		now := time.Now().UTC()
		p.Comments[i].Text = text
		p.Comments[i].Edited = true
		p.Comments[i].EditedAt = &now
		return p.Comments[i], nil
	}
	return Comment{}, fmt.Errorf("%w: comment %q", ErrNotFound, commentID)
}

// DeleteComment removes the comment with commentID. Only its author may
// delete it.
func (p *Photo) DeleteComment(commentID, requesterID string) error {
	for i := range p.Comments {
		if p.Comments[i].ID != commentID {
			continue
		}
		if p.Comments[i].AuthorID != requesterID {
			return fmt.Errorf("%w: only the author may delete a comment", ErrForbidden)
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: comment %q", ErrNotFound, commentID)
}

// CommentCount returns the number of comments. The count is always derived
// from the list; it is never stored separately.
func (p *Photo) CommentCount() int { return len(p.Comments) }
