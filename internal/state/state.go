package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/angeloszaimis/wake-web/internal/ringbuffer"
)

// State is created once at startup and passed to every component that records
// or reads check results.
type State struct {
	startedAt time.Time
	lines     *ringbuffer.Ring[string]
	logger    *slog.Logger

	mutex       sync.Mutex
	subscribers map[chan string]struct{}
}

// New creates a state holding at most capacity log lines.
func New(capacity int, startedAt time.Time, logger *slog.Logger) *State {
	return &State{
		startedAt:   startedAt,
		lines:       ringbuffer.New[string](capacity),
		logger:      logger,
		subscribers: make(map[chan string]struct{}),
	}
}

// Record stores line, writes it to the process log and hands it to live
// subscribers. Subscribers that are not keeping up miss the line.
func (s *State) Record(line string, attrs ...slog.Attr) {
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, line, attrs...)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lines.Append(line)
	for ch := range s.subscribers {
		select {
		case ch <- line:
		default:
		}
	}
}

// Lines returns the stored log lines, oldest first.
func (s *State) Lines() []string {
	return s.lines.Snapshot()
}

// Capacity returns the maximum number of stored lines.
func (s *State) Capacity() int {
	return s.lines.Cap()
}

// StartedAt returns the process start time.
func (s *State) StartedAt() time.Time {
	return s.startedAt
}

// Uptime returns the time elapsed between start and now, never negative.
func (s *State) Uptime(now time.Time) time.Duration {
	elapsed := now.Sub(s.startedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Subscribe returns the current lines together with a channel receiving every
// line recorded afterwards. No line is both in the snapshot and on the channel.
// The returned function unsubscribes and closes the channel.
func (s *State) Subscribe(buffer int) ([]string, <-chan string, func()) {
	ch := make(chan string, buffer)

	s.mutex.Lock()
	snapshot := s.lines.Snapshot()
	s.subscribers[ch] = struct{}{}
	s.mutex.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mutex.Lock()
			delete(s.subscribers, ch)
			s.mutex.Unlock()
			close(ch)
		})
	}

	return snapshot, ch, unsubscribe
}
