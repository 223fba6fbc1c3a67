package app

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"nh3lab.klederson.com/internal/config"
)

// Sender delivers messages to the running program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Player reveals a recorded series one sample at a time, in the
// background, at an adjustable speed.
type Player struct {
	mu       sync.Mutex
	n        int
	next     int
	speed    int
	paused   bool
	done     bool
	interval time.Duration
	cancel   context.CancelFunc
}

// NewPlayer creates a player for n samples, revealing one sample per
// interval at 1x.
func NewPlayer(n int, interval time.Duration) *Player {
	return &Player{n: n, speed: 1, interval: interval}
}

// Start begins sending SampleMsg values to s.
func (p *Player) Start(s Sender) {
	ctx, cancel := context.WithCancel(context.Background())
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	go p.run(ctx, s)
}

// Stop halts the background goroutine.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Player) run(ctx context.Context, s Sender) {
	for {
		timer := time.NewTimer(p.delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if msg := p.Step(); msg != nil {
			s.Send(msg)
		}
	}
}

// Step advances the player by one sample and returns the message to
// deliver, or nil when paused or already finished.
func (p *Player) Step() tea.Msg {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused || p.done {
		return nil
	}
	if p.next >= p.n {
		p.done = true
		return ReplayDoneMsg{}
	}
	idx := p.next
	p.next++
	return SampleMsg{Index: idx}
}

func (p *Player) delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval / time.Duration(p.speed)
}

// Pause stops revealing samples.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume continues after Pause.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
}

// Paused reports whether the player is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Restart rewinds to the first sample.
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = 0
	p.done = false
}

// Faster doubles the speed up to ReplayMaxSpeed.
func (p *Player) Faster() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.speed < config.ReplayMaxSpeed {
		p.speed *= 2
	}
	return p.speed
}

// Slower halves the speed down to 1x.
func (p *Player) Slower() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.speed > 1 {
		p.speed /= 2
	}
	return p.speed
}

// Speed returns the current multiplier.
func (p *Player) Speed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}
