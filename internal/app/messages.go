package app

import "time"

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// SampleMsg reveals the sample at Index.
type SampleMsg struct {
	Index int
}

// ReplayDoneMsg is sent once the player has revealed every sample.
type ReplayDoneMsg struct{}
