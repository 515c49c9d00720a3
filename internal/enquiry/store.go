package enquiry

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"institute-discovery/internal/common/errors"

	"github.com/lib/pq"
)

const foreignKeyViolation = "23503"

// Store persists enquiries.
type Store interface {
	Insert(ctx context.Context, e Enquiry) error
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert writes e. An enquiry for a listing that does not exist is a
// validation failure, not a storage failure.
func (s *PostgresStore) Insert(ctx context.Context, e Enquiry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enquiries (id, listing_id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID,
		e.ListingID,
		e.Name,
		e.Email,
		sql.NullString{String: e.Phone, Valid: e.Phone != ""},
		sql.NullString{String: e.Message, Valid: e.Message != ""},
		e.CreatedAt,
	)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return errors.NewEnquiryValidationFailedError(fmt.Sprintf("listingId: unknown listing %s", e.ListingID))
	}
	return errors.NewEnquiryInsertFailedError(err)
}
