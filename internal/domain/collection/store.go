// Package collection defines the remote store the application state is mirrored to.
// The store holds each collection as a whole; a save replaces the previous copy.
package collection

import "context"

// Name identifies one of the mirrored collections
type Name string

const (
	Suppliers Name = "suppliers"
	Lists     Name = "lists"
	Activity  Name = "activity"
)

// Names lists every mirrored collection
func Names() []Name {
	return []Name{Suppliers, Lists, Activity}
}

// Store loads and saves whole collections with last-write-wins semantics
type Store interface {
	// Load decodes the named collection into dst (a pointer to a slice).
	// found is false when the collection has never been saved.
	Load(ctx context.Context, name Name, dst any) (found bool, err error)
	// Save replaces the named collection with items
	Save(ctx context.Context, name Name, items any) error
}
