package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel errors for workflow preconditions enforced at the storage layer.
// Services translate these into the client-facing error taxonomy.
var (
	ErrDuplicatePending = errors.New("buyer already has a pending offer for this property")
	ErrNotPending       = errors.New("offer is not pending")
	ErrPropertySold     = errors.New("property is already sold")
	ErrNotSettleable    = errors.New("offer is not in a settleable state")
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrDuplicateEntry   = errors.New("entry already exists")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for read-only aggregate queries.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// isUniqueViolation classifies driver-level unique constraint errors.
// Postgres reports code 23505 through lib/pq; the sqlite driver used in
// tests surfaces a plain message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
