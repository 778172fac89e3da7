package types

import (
	"context"
	"errors"
)

// Entity is a record the store can insert: a Publisher, a Book, or one of
// the authoring entity variants.
type Entity interface {
	// Kind returns the most specific kind of the record.
	Kind() Kind
	// Key returns the primary identifier (publisher name, email, ISBN).
	Key() string
}

// Store defines the backend-agnostic relational store. Callers attach to a
// backend, run each operation in its own transaction, and detach when done.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Begin starts a transaction. Returns ErrStoreDetached when the store
	// is not attached.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one unit of work. Writes become visible to other transactions only
// after Commit; Rollback discards them.
type Tx interface {
	// Insert admits a new record. A colliding primary or unique key, or a
	// reference to a missing record, yields a *ConstraintViolation.
	Insert(ctx context.Context, e Entity) error

	// Remove deletes the record of kind with the given key.
	// Returns ErrNotFound if no such record exists.
	Remove(ctx context.Context, kind Kind, key string) error

	// QueryAll returns every record of kind, ordered by key.
	QueryAll(ctx context.Context, kind Kind) ([]Entity, error)

	// QueryByKey returns the record of kind with the given key, or
	// ErrNotFound. A key stored under a different variant is not found.
	QueryByKey(ctx context.Context, kind Kind, key string) (Entity, error)

	// AddEdge records that the individual author is a member of the ad hoc
	// team. It is the only writer of the membership relation. Returns false
	// without writing when the edge already exists.
	AddEdge(ctx context.Context, teamEmail, authorEmail string) (bool, error)

	// Members returns the individual authors of a team, ordered by email.
	Members(ctx context.Context, teamEmail string) ([]*IndividualAuthor, error)

	// Memberships returns the teams an individual author belongs to,
	// ordered by email.
	Memberships(ctx context.Context, authorEmail string) ([]*AdHocTeam, error)

	// Commit applies all writes atomically, or fails leaving the previously
	// committed state unchanged.
	Commit() error

	// Rollback discards pending writes. Calling it after Commit is a no-op.
	Rollback() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTxDone          = errors.New("transaction has already been committed or rolled back")
)
