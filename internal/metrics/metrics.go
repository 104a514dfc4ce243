package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxDurations = 1000

type Metrics struct {
	mutex        sync.RWMutex
	cycles       int64
	skipped      int64
	loadFailures int64
	visits       map[string]int64
	failures     map[string]int64
	durations    map[string][]time.Duration
	lastOK       map[string]bool
	lastVisit    map[string]time.Time
	startTime    time.Time
}

type Snapshot struct {
	Cycles        int64                    `json:"cycles"`
	SkippedCycles int64                    `json:"skipped_cycles"`
	LoadFailures  int64                    `json:"load_failures"`
	TotalVisits   int64                    `json:"total_visits"`
	Uptime        time.Duration            `json:"uptime"`
	Targets       map[string]TargetMetrics `json:"targets"`
}

type TargetMetrics struct {
	Visits      int64         `json:"visits"`
	Failures    int64         `json:"failures"`
	LastOK      bool          `json:"last_ok"`
	LastVisit   time.Time     `json:"last_visit"`
	AvgDuration time.Duration `json:"avg_duration"`
	P50Duration time.Duration `json:"p50_duration"`
	P95Duration time.Duration `json:"p95_duration"`
}

func (m *Metrics) IncrementCycles() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.cycles++
}

func (m *Metrics) IncrementSkipped() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.skipped++
}

func (m *Metrics) IncrementLoadFailures() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.loadFailures++
}

func (m *Metrics) RecordVisit(target string, at time.Time, duration time.Duration, success bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.visits[target]++
	if !success {
		m.failures[target]++
	}
	m.lastOK[target] = success
	m.lastVisit[target] = at

	m.durations[target] = append(m.durations[target], duration)
	if len(m.durations[target]) > maxDurations {
		m.durations[target] = m.durations[target][1:]
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Cycles:        m.cycles,
		SkippedCycles: m.skipped,
		LoadFailures:  m.loadFailures,
		Uptime:        time.Since(m.startTime),
		Targets:       make(map[string]TargetMetrics, len(m.visits)),
	}

	for target, visits := range m.visits {
		snap.TotalVisits += visits

		tm := TargetMetrics{
			Visits:    visits,
			Failures:  m.failures[target],
			LastOK:    m.lastOK[target],
			LastVisit: m.lastVisit[target],
		}

		durations := m.durations[target]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			tm.AvgDuration = average(sorted)
			tm.P50Duration = percentile(sorted, 0.50)
			tm.P95Duration = percentile(sorted, 0.95)
		}

		snap.Targets[target] = tm
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		visits:    make(map[string]int64),
		failures:  make(map[string]int64),
		durations: make(map[string][]time.Duration),
		lastOK:    make(map[string]bool),
		lastVisit: make(map[string]time.Time),
		startTime: time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
