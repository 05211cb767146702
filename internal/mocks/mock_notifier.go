package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type MockNotifier struct {
	mu        sync.Mutex
	Err       error
	Confirmed []domain.BookingSummary
	Cancelled []domain.BookingSummary
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, summary domain.BookingSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Confirmed = append(m.Confirmed, summary)
	return m.Err
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, summary domain.BookingSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Cancelled = append(m.Cancelled, summary)
	return m.Err
}

func (m *MockNotifier) ConfirmedSummaries() []domain.BookingSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.BookingSummary(nil), m.Confirmed...)
}

func (m *MockNotifier) CancelledSummaries() []domain.BookingSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.BookingSummary(nil), m.Cancelled...)
}

func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Confirmed = nil
	m.Cancelled = nil
}
