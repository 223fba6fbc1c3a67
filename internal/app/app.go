package app

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/detector"
	"nh3lab.klederson.com/internal/scope"
	"nh3lab.klederson.com/internal/synth"
	"nh3lab.klederson.com/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	player   *Player
	detector *detector.Detector
	history  *History
	playhead *scope.Playhead
}

// Options configures the replay viewer.
type Options struct {
	Series   synth.Series
	Events   []synth.Descriptor
	StepSec  float64
	Detector detector.Config
	Source   string // shown in the menu bar
	Log      *slog.Logger
}

// Model is the root Bubble Tea model for the replay viewer.
type Model struct {
	width  int
	height int

	series  synth.Series
	events  []synth.Descriptor
	windows []scope.Window
	stepMin float64
	source  string
	shown   int
	done    bool
	last    detector.Outcome
	found   []detector.Classification
	cursor  int
	log     *slog.Logger

	shared *shared
}

// New creates a Model replaying opts.Series from the first sample.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return Model{
		series:  opts.Series,
		events:  opts.Events,
		windows: scope.WindowsFor(opts.Events, config.ShadeFraction),
		stepMin: opts.StepSec / 60,
		source:  opts.Source,
		log:     log.With("component", "viewer"),
		shared: &shared{
			player:   NewPlayer(opts.Series.Len(), config.ReplayTickRate),
			detector: detector.New(opts.Detector, log),
			history:  NewHistory(config.HistoryCapacity),
			playhead: scope.NewPlayhead(),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tickCmd()

	case SampleMsg:
		return m.reveal(msg.Index), nil

	case ReplayDoneMsg:
		// A done message from before a restart arrives with samples still pending.
		if !m.done && m.shown >= m.series.Len() {
			m.done = true
			m.log.Info("replay finished", "samples", m.shown, "events", len(m.found))
		}
		return m, nil
	}

	return m, nil
}

// reveal applies sample i. Samples arriving out of order, such as those
// already in flight when the replay restarts, are dropped.
func (m Model) reveal(i int) Model {
	if i != m.shown || i >= m.series.Len() {
		return m
	}
	ppm := m.series.PPM[i]
	m.shared.history.Push(ppm)
	m.last = m.shared.detector.Update(ppm)
	if m.last.Ended != nil {
		m.found = append(m.found, *m.last.Ended)
		m.log.Info("event classified", "event", m.last.Ended.Event.String(),
			"minute", m.series.Minutes[i], "peak", m.last.Ended.PeakPPM)
	}
	m.shown++
	return m
}

func (m Model) restart() Model {
	m.shared.player.Restart()
	m.shared.detector.Reset()
	m.shared.history.Reset()
	m.shown = 0
	m.done = false
	m.last = detector.Outcome{}
	m.found = nil
	m.cursor = 0
	m.log.Info("replay restarted")
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.Stop()
		return m, tea.Quit

	case "s", "S":
		m.shared.player.Resume()

	case "p", "P":
		m.shared.player.Pause()

	case "r", "R":
		return m.restart(), nil

	case "+", "=":
		m.log.Debug("speed", "x", m.shared.player.Faster())

	case "-", "_":
		m.log.Debug("speed", "x", m.shared.player.Slower())

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.found)-1 {
			m.cursor++
		}

	case "home":
		m.cursor = 0

	case "end":
		if len(m.found) > 0 {
			m.cursor = len(m.found) - 1
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing replay..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < ui.ReadingPanelHeight+5 {
		bodyH = ui.ReadingPanelHeight + 5
	}

	plotW := m.width * 2 / 3
	if plotW < 30 {
		plotW = 30
	}
	sideW := m.width - plotW
	if sideW < 28 {
		sideW = 28
		plotW = m.width - sideW
	}

	paused := m.shared.player.Paused()
	speed := m.shared.player.Speed()
	menuBar := ui.RenderMenuBar(m.width, m.source, paused, m.done, speed)

	// Border, title and legend take five rows.
	innerW := max(plotW-4, 10)
	innerH := max(bodyH-5, 5)
	m.shared.playhead.Update(m.shown, m.series.Len(), innerW)
	plot := scope.Render(innerW, innerH, scope.View{
		Minutes:   m.series.Minutes,
		PPM:       m.series.PPM,
		Shown:     m.shown,
		Threshold: m.series.Threshold,
		Windows:   m.windows,
	}, m.shared.playhead)
	title := fmt.Sprintf("NH3 REPLAY  %d samples  step %.0fs", m.series.Len(), m.stepMin*60)
	plotPanel := ui.RenderPlotPanel(plotW, bodyH, title, plot, scope.RenderLegend(innerW))

	reading := m.reading()
	readingPanel := ui.RenderReadingPanel(reading, sideW, m.shared.history.Values(), scope.AxisMax(m.series.PPM))
	eventList := ui.RenderEventList(m.found, m.events, m.stepMin, sideW, bodyH-ui.ReadingPanelHeight, m.cursor)
	side := lipgloss.JoinVertical(lipgloss.Left, readingPanel, eventList)

	statusBar := ui.RenderStatusBar(m.width, ui.Status{
		Paused:    paused,
		Done:      m.done,
		Sample:    m.shown,
		Total:     m.series.Len(),
		Minutes:   reading.Minutes,
		PPM:       reading.PPM,
		Threshold: m.series.Threshold.Level(),
		State:     m.last.State.String(),
		Events:    len(m.found),
	})

	return ui.ComposeLayout(menuBar, plotPanel, side, statusBar)
}

func (m Model) reading() ui.Reading {
	r := ui.Reading{
		Threshold: m.series.Threshold.Level(),
		State:     m.last.State.String(),
		Event:     m.last.Event.String(),
		Baseline:  m.last.Baseline,
	}
	if m.shown > 0 {
		i := m.shown - 1
		r.Minutes = m.series.Minutes[i]
		r.PPM = m.series.PPM[i]
		r.Detected = m.series.Threshold.Detected(r.PPM)
	}
	return r
}

// Shown returns how many samples have been revealed.
func (m Model) Shown() int { return m.shown }

// Found returns the events classified so far.
func (m Model) Found() []detector.Classification { return m.found }

// Start launches the background player. Must be called before p.Run().
func (m *Model) Start(s Sender) {
	m.shared.player.Start(s)
}

// Stop halts the background player.
func (m Model) Stop() {
	m.shared.player.Stop()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
