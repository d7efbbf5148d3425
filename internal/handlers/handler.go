// handlers/handler.go - HTTP handler dependencies
package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noor-latif/timetrack/internal/config"
	"github.com/noor-latif/timetrack/internal/store"
	"github.com/noor-latif/timetrack/internal/vacation"
)

// TimeOffSource is the slice of the vacation client the handlers need
// (enables mocking).
type TimeOffSource interface {
	TimeOffRecords(ctx context.Context, start, end time.Time) ([]vacation.TimeOff, error)
}

// Handler holds dependencies
type Handler struct {
	DB      store.Store
	TimeOff TimeOffSource // nil when the provider is not configured
	Stripe  config.StripeConfig
	Log     *zap.SugaredLogger
}

// New creates a new Handler
func New(db store.Store, timeOff TimeOffSource, stripe config.StripeConfig, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, TimeOff: timeOff, Stripe: stripe, Log: log}
}
