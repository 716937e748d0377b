package clock

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/mmo-db-gateway/internal/clock TimeProvider

// TimeProvider supplies wall-clock time so reservation windows can be tested
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

// Now returns the current time
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NewRealTimeProvider creates a system clock provider
func NewRealTimeProvider() TimeProvider {
	return RealTimeProvider{}
}
