package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// InstrumentationName is the meter scope of the booking and hold counters.
const InstrumentationName = "github.com/metinatakli/cinema-booking-engine/internal/service"

// newCounter registers a counter on the global meter provider. Instruments
// created before the provider is installed are forwarded to it once set.
func newCounter(name, description string) metric.Int64Counter {
	counter, err := otel.Meter(InstrumentationName).Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
		return noop.Int64Counter{}
	}

	return counter
}
