package models

// DefaultPlatformColor is the display color assigned to every platform.
// Stored documents carry no color; all platforms render the same.
const DefaultPlatformColor = "#3B82F6"

// Platform is the read-only projection of a document in the platforms collection.
type Platform struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	PlatformID string `json:"platformId"`
	Color      string `json:"color"`
}
