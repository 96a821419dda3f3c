// Package store is the gateway to the external document database. It exposes
// per-user keyed collections the way the hosted store lays them out:
// users/{accountId} for account records and users/{accountId}/notes/{noteId}
// for notes, plus the identity provider's own credential records.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Collection kinds understood by the gateway.
const (
	KindUsers       = "users"
	KindNotes       = "notes"
	KindCredentials = "credentials"
)

// Path addresses a collection. Owner is only set for per-user
// sub-collections (notes), where it names the owning account.
type Path struct {
	Kind  string
	Owner string
}

func Users() Path {
	return Path{Kind: KindUsers}
}

func Notes(accountID string) Path {
	return Path{Kind: KindNotes, Owner: accountID}
}

func Credentials() Path {
	return Path{Kind: KindCredentials}
}

// Document is a stored record: an opaque id plus its fields. Timestamp
// fields are always time.Time in UTC on the Go side of the gateway.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Gateway is the contract the repositories consume. Implementations give
// read-your-writes consistency per document but no cross-operation
// isolation.
type Gateway interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, path Path, id string) (Document, error)

	// Query returns every document in the collection.
	Query(ctx context.Context, path Path) ([]Document, error)

	// QueryField returns the documents whose field equals value.
	QueryField(ctx context.Context, path Path, field string, value interface{}) ([]Document, error)

	// QueryTimeRange returns the documents whose time-valued field falls
	// within [start, end] inclusive. Documents lacking the field are
	// excluded.
	QueryTimeRange(ctx context.Context, path Path, field string, start, end time.Time) ([]Document, error)

	// Add inserts a new document with a store-assigned id and returns it.
	Add(ctx context.Context, path Path, fields map[string]interface{}) (string, error)

	// SetMerge upserts the document, changing only the supplied fields.
	SetMerge(ctx context.Context, path Path, id string, fields map[string]interface{}) error

	// SetOverwrite upserts the document, replacing all of its fields.
	SetOverwrite(ctx context.Context, path Path, id string, fields map[string]interface{}) error

	// Update partial-updates an existing document; ErrNotFound if absent.
	// A nil field value unsets the stored field.
	Update(ctx context.Context, path Path, id string, fields map[string]interface{}) error

	// Delete removes the document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, path Path, id string) error
}
