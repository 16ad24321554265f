// Package tag manages system and per-owner custom tags and their links to entries.
package tag

import "time"

type Type string

const (
	TypeSystem Type = "system"
	TypeCustom Type = "custom"
)

// MaxNameLength is the longest tag name in runes.
const MaxNameLength = 20

// Tag is a row of the tags table.
type Tag struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Type    Type    `db:"tag_type"`
	OwnerID *string `db:"owner_id"`
	// NameScope is empty for system tags and the owner id for custom tags.
	NameScope   string    `db:"name_scope"`
	QuotaSlot   *int      `db:"quota_slot"`
	IsEnabled   bool      `db:"is_enabled"`
	Color       string    `db:"color"`
	Icon        string    `db:"icon"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewTag holds the caller-supplied fields of a tag to create.
type NewTag struct {
	Name        string
	Color       string
	Icon        string
	Description string
}

// EntryTagChange lists the tag ids linked and unlinked by a replacement.
type EntryTagChange struct {
	Added   []string
	Removed []string
}

// IsAvailableTo reports whether the tag can be attached to entries of ownerID.
func (t Tag) IsAvailableTo(ownerID string) bool {
	if !t.IsEnabled {
		return false
	}
	if t.Type == TypeSystem {
		return true
	}
	return t.OwnerID != nil && *t.OwnerID == ownerID
}
