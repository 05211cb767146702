package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/config"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/metinatakli/cinema-booking-engine/internal/middleware"
	"github.com/metinatakli/cinema-booking-engine/internal/service"
	"github.com/metinatakli/cinema-booking-engine/internal/validator"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret"

type MockHoldService struct {
	mock.Mock
}

func (m *MockHoldService) TryHold(
	ctx context.Context,
	showtimeID int,
	seatIDs []int,
	userID int,
	ttl time.Duration) (*domain.HoldSet, error) {

	args := m.Called(ctx, showtimeID, seatIDs, userID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HoldSet), args.Error(1)
}

func (m *MockHoldService) ReleaseHold(ctx context.Context, showtimeID int, seatIDs []int, userID int) error {
	args := m.Called(ctx, showtimeID, seatIDs, userID)
	return args.Error(0)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ConfirmBooking(
	ctx context.Context,
	userID, showtimeID int,
	seatIDs []int,
	couponCode string) (*service.BookingResult, error) {

	args := m.Called(ctx, userID, showtimeID, seatIDs, couponCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingResult), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID int) (*service.BookingResult, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingResult), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID int) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletService) Credit(ctx context.Context, userID int, amount int64, reason string) (int64, error) {
	args := m.Called(ctx, userID, amount, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletService) History(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.LedgerEntry, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(*domain.Metadata), args.Error(2)
}

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config:    config.Config{Env: "test", JWTSecret: testJWTSecret},
		validator: validator.NewValidator(),
		logger:    logger,
		holds:     &MockHoldService{},
		bookings:  &MockBookingService{},
		wallet:    &MockWalletService{},
		rateLimiter: middleware.NewRateLimiter(nil, middleware.RateLimitConfig{
			Enabled: false,
		}, logger),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func authenticate(r *http.Request, userId int) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch v := body.(type) {
	case nil:
		reader = http.NoBody
	case string:
		reader = bytes.NewBufferString(v)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		// domain errors share the status with validation failures
		body := w.Body.Bytes()

		var validationResp api.ValidationErrorResponse
		if err := json.Unmarshal(body, &validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) == 0 {
			if validationResp.Message != tt.wantErrMessage {
				t.Errorf("Error message = %v, want %v", validationResp.Message, tt.wantErrMessage)
			}
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
