package client

import (
	"context"
	"sync/atomic"
	"time"
)

// Monitor tracks whether the chat backend is reachable by probing its health
// endpoint on an interval. Sends are refused while offline without touching
// the network.
type Monitor struct {
	check    func(ctx context.Context) error
	interval time.Duration
	online   atomic.Bool
	onChange func(online bool)
	stop     chan struct{}
	done     chan struct{}
}

// NewMonitor builds a monitor around a health probe. onChange fires on every
// online/offline transition; it may be nil. The monitor starts optimistic:
// sends are allowed until the first probe says otherwise.
func NewMonitor(check func(ctx context.Context) error, interval time.Duration, onChange func(bool)) *Monitor {
	m := &Monitor{
		check:    check,
		interval: interval,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	m.online.Store(true)
	return m
}

// Start probes once immediately, then on every interval tick until Stop.
func (m *Monitor) Start() {
	go func() {
		defer close(m.done)

		m.probe()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.probe()
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.stop)
	<-m.done
}

// Online reports the result of the most recent probe.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

func (m *Monitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	defer cancel()

	nowOnline := m.check(ctx) == nil
	wasOnline := m.online.Swap(nowOnline)
	if nowOnline != wasOnline && m.onChange != nil {
		m.onChange(nowOnline)
	}
}
