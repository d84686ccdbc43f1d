// Package watch runs the reconciliation loop: poll the player list, diff
// it against the previous poll, tail the server log for events, and emit
// one notification per detected change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/craftwatch/craftwatch/internal/config"
	"github.com/craftwatch/craftwatch/internal/extract"
	"github.com/craftwatch/craftwatch/internal/notify"
	"github.com/craftwatch/craftwatch/internal/roster"
	"github.com/craftwatch/craftwatch/internal/status"
)

// ErrEscalated is returned by Start when repeated consecutive query
// failures force a shutdown.
var ErrEscalated = errors.New("too many consecutive poll failures")

// Lister queries the set of players currently online.
type Lister interface {
	ListPlayers() (map[string]bool, error)
}

// Collector returns event records found in the server log since the last
// call. Implementations are best-effort and never return an error.
type Collector interface {
	Collect() []extract.Record
}

// Monitor owns the loop state: the previous player set, the failure
// counter, and tick statistics for the status endpoint. All I/O within a
// tick runs sequentially on the loop goroutine; only the snapshot
// counters are read from elsewhere.
type Monitor struct {
	cfg         *config.Config
	lister      Lister
	tailer      Collector
	notifier    notify.Notifier
	tracker     *roster.Tracker
	esc         *escalator
	broadcaster *status.Broadcaster // nil when the status endpoint is off

	mu            sync.RWMutex
	ticks         int
	playersOnline int
	lastTick      time.Time
}

func NewMonitor(cfg *config.Config, lister Lister, tailer Collector, notifier notify.Notifier, broadcaster *status.Broadcaster) *Monitor {
	return &Monitor{
		cfg:         cfg,
		lister:      lister,
		tailer:      tailer,
		notifier:    notifier,
		tracker:     roster.NewTracker(),
		esc:         newEscalator(failureThreshold),
		broadcaster: broadcaster,
	}
}

// Start primes the tracker and then polls until ctx is cancelled or the
// failure threshold is breached. Cancellation is honored between ticks,
// never mid-tick.
func (m *Monitor) Start(ctx context.Context) error {
	m.prime()

	log.Printf("[watch] polling every %s (leave notifications %s)",
		m.cfg.PollInterval, onOff(m.cfg.NotifyLeave))

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := m.tick(); err != nil {
			m.publish(status.KindHealth, fmt.Sprintf("poll error (%d/%d): %v", m.esc.count()+1, failureThreshold, err))
			if m.esc.record(err) {
				log.Printf("[watch] %d consecutive poll failures, shutting down; check rcon configuration and server status", failureThreshold)
				return ErrEscalated
			}
		} else {
			m.esc.reset()
		}

		select {
		case <-ctx.Done():
			log.Println("[watch] stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// prime seeds the tracker with the players already online so the first
// tick does not announce everyone as a fresh join. When the seed query
// fails the tracker starts empty, so the first successful tick may
// over-report joins; that is accepted rather than hidden.
func (m *Monitor) prime() {
	current, err := m.lister.ListPlayers()
	if err != nil {
		log.Printf("[watch] could not query initial player list, will retry on next poll: %v", err)
		m.tracker.Seed(nil)
		return
	}
	m.tracker.Seed(current)
	if len(current) > 0 {
		log.Printf("[watch] currently online: %s", strings.Join(sorted(current), ", "))
	} else {
		log.Println("[watch] no players currently online")
	}
}

// tick runs one reconciliation pass. Only the player query can fail the
// tick; log tailing and notification delivery are self-isolating.
func (m *Monitor) tick() error {
	current, err := m.lister.ListPlayers()
	if err != nil {
		return err
	}

	joined, left := m.tracker.Diff(current)
	for _, name := range joined {
		m.notifyOne(status.KindJoin, fmt.Sprintf("**%s** joined the server", name),
			fmt.Sprintf("[JOIN] %s joined the server", name))
	}
	if m.cfg.NotifyLeave {
		for _, name := range left {
			m.notifyOne(status.KindLeave, fmt.Sprintf("**%s** left the server", name),
				fmt.Sprintf("[LEAVE] %s left the server", name))
		}
	}

	for _, rec := range m.tailer.Collect() {
		m.notifyOne(status.KindEvent, "[DEATH] "+rec.Text, "[DEATH] "+rec.Text)
	}

	m.tracker.Advance(current)

	m.mu.Lock()
	m.ticks++
	m.playersOnline = len(current)
	m.lastTick = time.Now()
	m.mu.Unlock()
	return nil
}

// notifyOne delivers a single notification. A failed send is logged and
// skipped; it never aborts the tick or suppresses sibling notifications.
func (m *Monitor) notifyOne(kind status.Kind, message, logLine string) {
	if err := m.notifier.Send(message); err != nil {
		log.Printf("[watch] failed to send notification: %v", err)
	} else {
		log.Println(logLine)
	}
	m.publish(kind, message)
}

func (m *Monitor) publish(kind status.Kind, text string) {
	m.broadcaster.Publish(kind, text)
}

// Snapshot reports loop health for the status endpoint.
func (m *Monitor) Snapshot() status.WatcherSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return status.WatcherSnapshot{
		Ticks:               m.ticks,
		ConsecutiveFailures: m.esc.count(),
		FailureThreshold:    failureThreshold,
		PlayersOnline:       m.playersOnline,
		LastTick:            m.lastTick,
	}
}

func sorted(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
