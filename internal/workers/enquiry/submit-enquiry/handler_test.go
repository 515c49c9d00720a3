// internal/workers/enquiry/submit-enquiry/handler_test.go
package submitenquiry

import (
	"context"
	stderrors "errors"
	"testing"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/enquiry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestInput() *Input {
	return &Input{
		ListingID: "prop-07",
		Name:      "Rohan Iyer",
		Email:     "rohan@example.com",
		Message:   "Is hostel accommodation available?",
	}
}

type MockNotifier struct {
	SendEmailFunc func(ctx context.Context, to, subject, body string) (string, error)
}

func (m *MockNotifier) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, body)
	}
	return "msg-1", nil
}

func (m *MockNotifier) SendSMS(ctx context.Context, phone, message string) (string, error) {
	return "sms-1", nil
}

func createTestHandler(t *testing.T, store enquiry.Store, notifier enquiry.Notifier) *Handler {
	log := logger.NewTestLogger(t)
	svc := enquiry.NewService(enquiry.Config{OpsEmail: "ops@example.com"}, store, notifier, log)
	return NewHandler(LoadConfig(), svc, log)
}

const insertPattern = `INSERT INTO enquiries`

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	input := createTestInput()
	mock.ExpectExec(insertPattern).
		WithArgs(sqlmock.AnyArg(), input.ListingID, input.Name, input.Email, nil, input.Message, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, enquiry.NewPostgresStore(db), &MockNotifier{})
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NotEmpty(t, output.EnquiryID)
	assert.Equal(t, "submitted", output.Status)
	assert.NotEmpty(t, output.CreatedAt)
	assert.Equal(t, []string{enquiry.ChannelOpsEmail, enquiry.ChannelAckEmail}, output.Notifications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NotificationsNeverNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(insertPattern).WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, enquiry.NewPostgresStore(db), nil)
	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.NotNil(t, output.Notifications)
	assert.Empty(t, output.Notifications)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(in *Input)
		setupMock       func(mock sqlmock.Sqlmock)
		expectedCode    errors.ErrorCode
		expectedRetries int
	}{
		{
			name:            "invalid email",
			mutate:          func(in *Input) { in.Email = "rohan" },
			setupMock:       func(mock sqlmock.Sqlmock) {},
			expectedCode:    errors.ErrCodeEnquiryValidationFailed,
			expectedRetries: 0,
		},
		{
			name:   "database failure",
			mutate: func(in *Input) {},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertPattern).WillReturnError(stderrors.New("connection reset by peer"))
			},
			expectedCode:    errors.ErrCodeEnquiryInsertFailed,
			expectedRetries: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			input := createTestInput()
			tt.mutate(input)

			handler := createTestHandler(t, enquiry.NewPostgresStore(db), &MockNotifier{})
			output, err := handler.Execute(context.Background(), input)

			assert.Nil(t, output)
			require.True(t, errors.HasCode(err, tt.expectedCode), "got %v", err)

			stdErr, _ := errors.AsStandardError(err)
			assert.Equal(t, tt.expectedRetries, errors.ConvertToBPMNError(stdErr).Retries)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := createTestHandler(t, nil, nil)

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInputRequired)
}
