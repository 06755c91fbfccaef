package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"time"
)

// Watermark persists the time of the last fully successful sync run.
type Watermark interface {
	// Watermark returns the stored watermark, or the zero time before the
	// first successful run.
	Watermark(ctx context.Context) (time.Time, error)

	// SetWatermark replaces the stored watermark.
	SetWatermark(ctx context.Context, watermark time.Time) error
}

// SyncStarter starts a sync run unless one is already running.
type SyncStarter interface {
	StartSync(ctx context.Context) bool
}
