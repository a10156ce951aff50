package domain

import "time"

// Tote is the persisted unit of content: a titled set of notes and photos
// addressed by a shareable identifier. The identifier doubles as the storage
// key and the URL locator and never changes after creation.
type Tote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Images    []Image   `json:"images"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Image is embedded in its owning Tote and is not independently addressable.
// URL is a data: URL carrying the full image bytes inline, so a record is
// self-contained with no external file references.
type Image struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
}

// Settings is the single global configuration entry stored alongside tote
// records. CloudSync is a placeholder for a sync feature that does not exist
// yet; nothing reads it besides the settings page.
type Settings struct {
	CloudSync bool `json:"cloudSync"`
}
