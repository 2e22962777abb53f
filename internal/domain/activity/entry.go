// Package activity holds the bounded, newest-first log of user-facing events.
package activity

import (
	"context"
	"errors"
	"time"

	"github.com/supplier-ledger/internal/domain/shared"
)

// ErrUnknownType is returned for entry types outside the closed set
var ErrUnknownType = errors.New("unknown activity type")

// Type is the closed set of activity kinds
type Type string

const (
	TypeSupplier Type = "supplier"
	TypeList     Type = "list"
	TypePayment  Type = "payment"
	TypeDelete   Type = "delete"
)

// Types lists every activity kind
func Types() []Type {
	return []Type{TypeSupplier, TypeList, TypePayment, TypeDelete}
}

// IsValid reports membership in the closed set
func (t Type) IsValid() bool {
	switch t {
	case TypeSupplier, TypeList, TypePayment, TypeDelete:
		return true
	default:
		return false
	}
}

// Icon is the glyph shown next to an entry
func (t Type) Icon() string {
	switch t {
	case TypeSupplier:
		return "🏢"
	case TypeList:
		return "📝"
	case TypePayment:
		return "💰"
	case TypeDelete:
		return "🗑️"
	default:
		return "📌"
	}
}

// Entry is a single logged event
type Entry struct {
	ID    string    `json:"id" bson:"_id"`
	Type  Type      `json:"type" bson:"type"`
	Title string    `json:"title" bson:"title"`
	Meta  string    `json:"meta" bson:"meta"`
	Date  time.Time `json:"date" bson:"date"`
}

// NewEntry validates the type and builds an entry
func NewEntry(id string, t Type, title, meta string, at time.Time) (Entry, error) {
	if !t.IsValid() {
		return Entry{}, shared.Invalid("type", ErrUnknownType)
	}
	return Entry{ID: id, Type: t, Title: title, Meta: meta, Date: at}, nil
}

// Matches reports whether the normalized query hits the title, meta or ISO date
func (e Entry) Matches(query string) bool {
	return shared.ContainsAny(query, e.Title, e.Meta, shared.ISO(e.Date))
}

// ArchiveRepository keeps the full, uncapped history of published entries
type ArchiveRepository interface {
	// Upsert stores the entry keyed by id; replaying the same entry is a no-op
	Upsert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
}
