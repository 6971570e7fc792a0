package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection groups saved photos for one owner. PhotoIDs is an ordered set:
// insertion order is preserved and duplicates are rejected. CoverImage is
// derived from membership — set on the first insert (or by explicit
// override) and cleared when the collection empties. Collections are never
// auto-deleted when emptied.
type Collection struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PhotoIDs    []string  `json:"photoIds"`
	CreatedAt   time.Time `json:"createdAt"`
	CoverImage  string    `json:"coverImage,omitempty"`
}

// NewCollection creates an empty collection owned by ownerID.
func NewCollection(ownerID, title, description string) (Collection, error) {
	title = strings.TrimSpace(title)
	if ownerID == "" {
		return Collection{}, fmt.Errorf("%w: owner is required", ErrInvalidArgument)
	}
	if title == "" {
		return Collection{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	return Collection{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		PhotoIDs:    []string{},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AddPhoto appends photoID to the collection. Returns false if the photo is
// already present. A non-empty coverImage always becomes the cover; callers
// pass one on the first insert and pass "" afterwards to keep the existing
// cover.
func (c *Collection) AddPhoto(photoID, coverImage string) (bool, error) {
	if photoID == "" {
		return false, fmt.Errorf("%w: photo ID is required", ErrInvalidArgument)
	}
	if c.HasPhoto(photoID) {
		return false, nil
	}
	c.PhotoIDs = append(c.PhotoIDs, photoID)
	if coverImage != "" {
		c.CoverImage = coverImage
	}
	return true, nil
}

// RemovePhoto removes photoID from the collection. Returns false if absent.
// The cover image is cleared when the last photo is removed.
func (c *Collection) RemovePhoto(photoID string) bool {
	for i, id := range c.PhotoIDs {
		if id == photoID {
			c.PhotoIDs = append(c.PhotoIDs[:i], c.PhotoIDs[i+1:]...)
			if len(c.PhotoIDs) == 0 {
				c.CoverImage = ""
			}
			return true
		}
	}
	return false
}

// HasPhoto reports whether photoID is in the collection.
func (c *Collection) HasPhoto(photoID string) bool {
	for _, id := range c.PhotoIDs {
		if id == photoID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the collection holds no photos.
func (c *Collection) IsEmpty() bool { return len(c.PhotoIDs) == 0 }

// PhotoCount returns the number of photos in the collection.
func (c *Collection) PhotoCount() int { return len(c.PhotoIDs) }
