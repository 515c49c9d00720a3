package enquiry

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"institute-discovery/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertEnquiryPattern = `INSERT INTO enquiries \(id, listing_id, name, email, phone, message, created_at\)`

func testEnquiry() Enquiry {
	return Enquiry{
		ID:        "2f0c6c1e-0000-4000-8000-000000000001",
		ListingID: "prop-01",
		Name:      "Asha Verma",
		Email:     "asha@example.com",
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestPostgresStore_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := testEnquiry()
	mock.ExpectExec(insertEnquiryPattern).
		WithArgs(e.ID, e.ListingID, e.Name, e.Email, nil, nil, e.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewPostgresStore(db).Insert(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Insert_Errors(t *testing.T) {
	tests := []struct {
		name         string
		dbErr        error
		expectedCode errors.ErrorCode
	}{
		{
			name:         "unknown listing",
			dbErr:        &pq.Error{Code: "23503", Message: "violates foreign key constraint"},
			expectedCode: errors.ErrCodeEnquiryValidationFailed,
		},
		{
			name:         "connection lost",
			dbErr:        stderrors.New("driver: bad connection"),
			expectedCode: errors.ErrCodeEnquiryInsertFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(insertEnquiryPattern).WillReturnError(tt.dbErr)

			err = NewPostgresStore(db).Insert(context.Background(), testEnquiry())

			assert.True(t, errors.HasCode(err, tt.expectedCode), "got %v", err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
