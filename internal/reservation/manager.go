package reservation

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/clock"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

// DefaultWindow is how long a read-for-update holds a storage container
const DefaultWindow = 500 * time.Millisecond

// Config holds configuration for the reservation manager
type Config struct {
	TimeProvider clock.TimeProvider // Optional, defaults to the system clock
	Window       time.Duration      // Optional, defaults to DefaultWindow
	Logger       hclog.Logger       // Optional
}

// Manager arbitrates time-boxed exclusive access to storage containers.
// A reservation is just the time it was taken; it expires lazily when a
// later call finds it older than the window. There are no timers.
type Manager struct {
	mu           sync.Mutex
	reservedAt   map[entities.StorageID]time.Time
	timeProvider clock.TimeProvider
	window       time.Duration
	logger       hclog.Logger
}

// NewManager creates a reservation manager
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	m := &Manager{
		reservedAt:   make(map[entities.StorageID]time.Time),
		timeProvider: cfg.TimeProvider,
		window:       cfg.Window,
		logger:       cfg.Logger,
	}
	if m.timeProvider == nil {
		m.timeProvider = clock.NewRealTimeProvider()
	}
	if m.window <= 0 {
		m.window = DefaultWindow
	}
	if m.logger == nil {
		m.logger = hclog.NewNullLogger()
	}
	return m
}

// Window returns the reservation window
func (m *Manager) Window() time.Duration {
	return m.window
}

// TryReserve takes the container for the caller. It fails with a conflict
// while another reservation younger than the window exists.
func (m *Manager) TryReserve(id entities.StorageID) error {
	now := m.timeProvider.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if at, ok := m.reservedAt[id]; ok && now.Sub(at) < m.window {
		return dnderr.Conflictf("storage %s is reserved", id).
			WithReason(dnderr.ReasonStorageLocked).
			WithMeta("storage_id", id.String())
	}
	m.reservedAt[id] = now
	m.logger.Trace("storage reserved", "storage_id", id.String())
	return nil
}

// IsLive reports whether an unexpired reservation exists
func (m *Manager) IsLive(id entities.StorageID) bool {
	now := m.timeProvider.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.reservedAt[id]
	return ok && now.Sub(at) < m.window
}

// Commit ends the reservation ahead of a write. Unless lockFree is set the
// reservation must still be live, otherwise the write is refused. The
// reservation is cleared either way.
func (m *Manager) Commit(id entities.StorageID, lockFree bool) error {
	now := m.timeProvider.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.reservedAt[id]
	delete(m.reservedAt, id)
	if lockFree {
		return nil
	}
	if !ok || now.Sub(at) >= m.window {
		return dnderr.Conflictf("storage %s reservation expired", id).
			WithReason(dnderr.ReasonStorageReservationExpired).
			WithMeta("storage_id", id.String())
	}
	return nil
}

// Release drops a reservation without writing
func (m *Manager) Release(id entities.StorageID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.reservedAt, id)
}
