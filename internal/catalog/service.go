// Package catalog implements the catalog service: each operation runs in
// exactly one store transaction that commits on success and rolls back on
// any error.
package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Service runs catalog operations against an attached store.
type Service struct {
	store  types.Store
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a service over store. The store must already be attached.
func New(store types.Store, opts ...Option) *Service {
	s := &Service{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run executes fn inside one transaction.
func (s *Service) run(ctx context.Context, op string, fn func(tx types.Tx) error) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return s.fail(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return s.fail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.fail(op, err)
	}
	s.logger.Debug().Str("op", op).Msg("committed")
	return nil
}

// fail logs err at the level its kind calls for and returns it unchanged.
func (s *Service) fail(op string, err error) error {
	var (
		cv *types.ConstraintViolation
		ie *types.IntegrityError
	)
	switch {
	case errors.As(err, &cv):
		s.logger.Warn().Str("op", op).
			Str("category", cv.Category).
			Str("constraint", cv.Constraint).
			Msg("rolled back")
	case errors.As(err, &ie):
		s.logger.Error().Str("op", op).
			Str("kind", string(ie.Kind)).
			Str("key", ie.Key).
			Msg(ie.Reason)
	default:
		s.logger.Debug().Str("op", op).Err(err).Msg("rolled back")
	}
	return err
}
