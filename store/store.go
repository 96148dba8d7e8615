// Package store implements the core domain operations over the shared
// relational model. Both API surfaces (REST and GraphQL) are thin
// adapters over this package and therefore always agree on semantics.
package store

import (
	"strings"

	"github.com/Luismorlan/chirper/model"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB

	// bus receives one content-created event per tweet/reply, after the
	// creating transaction committed. Nil disables feed generation.
	bus message.Publisher

	validate *validator.Validate
}

func NewStore(db *gorm.DB, bus message.Publisher) *Store {
	return &Store{
		db:       db,
		bus:      bus,
		validate: validator.New(),
	}
}

// DB exposes the underlying handle for read-only composition in the
// API layers (resolver field loading). Mutations go through Store
// methods only.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// validateInput maps validator failures onto the domain ValidationError
// kind so malformed input looks the same on both API surfaces.
func (s *Store) validateInput(input interface{}) error {
	if err := s.validate.Struct(input); err != nil {
		return model.NewValidationError(err.Error())
	}
	return nil
}

// isDuplicateKey detects a storage-layer uniqueness violation. The
// toggle operations rely on this instead of their optimistic existence
// pre-check: under a race the constraint is what guarantees exactly one
// success.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
