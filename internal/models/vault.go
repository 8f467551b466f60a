package models

import "time"

// Note is one protected free-text entry, kept in insertion order.
type Note struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileRef is a metadata-only reference to a user file. No file bytes are
// stored by the system.
type FileRef struct {
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

// VaultRecord is one entry of the protected-data collection, keyed by
// username. Records are created lazily on first write and are not removed
// when the user is deleted.
type VaultRecord struct {
	UserName string    `json:"username"`
	Notes    []Note    `json:"notes"`
	Files    []FileRef `json:"files"`
}
