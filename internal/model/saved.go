package model

import "time"

// SavedPhoto is the join record "the current user saved photo X, optionally
// into collection Y". A photo may be saved once generally (empty
// CollectionID — the default bucket) and independently into any number of
// collections. The (photo, collection) pair is unique; repeat saves are
// no-ops at the coordinator, never duplicate records.
type SavedPhoto struct {
	PhotoID      string    `json:"photoId"`
	CollectionID string    `json:"collectionId,omitempty"`
	SavedAt      time.Time `json:"savedAt"`
}

// NewSavedPhoto creates a save record stamped with the current time.
func NewSavedPhoto(photoID, collectionID string) SavedPhoto {
	return SavedPhoto{
		PhotoID:      photoID,
		CollectionID: collectionID,
		SavedAt:      time.Now().UTC(),
	}
}
