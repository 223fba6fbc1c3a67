// Package console streams the device's serial output to a terminal with
// local timestamps.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.bug.st/serial"
	"nh3lab.klederson.com/internal/config"
)

// EndBanner is written once the stream stops.
const EndBanner = "--- Monitor ended ---"

// TimeFormat prefixes every forwarded line.
const TimeFormat = "15:04:05.000"

// MaxLineBytes bounds a single line read from the port.
const MaxLineBytes = 1 << 20

var (
	ErrOpenPort = errors.New("open serial port")
	ErrReset    = errors.New("reset board")
)

// Config selects the port and how long to listen.
type Config struct {
	Port     string
	Baud     int
	Duration time.Duration
	Reset    bool
}

// FromSpec converts the loaded serial section.
func FromSpec(spec config.SerialSpec) Config {
	return Config{
		Port:     spec.Port,
		Baud:     spec.Baud,
		Duration: time.Duration(spec.DurationS * float64(time.Second)),
		Reset:    spec.ResetOnRun,
	}
}

// Open opens the serial port in 8N1 mode.
func Open(cfg Config) (serial.Port, error) {
	port, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenPort, cfg.Port, err)
	}
	return port, nil
}

// LineControl is the part of a serial port Reset needs.
type LineControl interface {
	SetDTR(dtr bool) error
	SetRTS(rts bool) error
}

// Reset pulses the boot/enable lines so the board restarts into the
// application.
func Reset(port LineControl, gap time.Duration) error {
	steps := []struct {
		set   func(bool) error
		level bool
		wait  bool
	}{
		{port.SetDTR, false, false},
		{port.SetRTS, true, true},
		{port.SetRTS, false, true},
		{port.SetDTR, false, false},
	}
	for _, s := range steps {
		if err := s.set(s.level); err != nil {
			return fmt.Errorf("%w: %w", ErrReset, err)
		}
		if s.wait {
			time.Sleep(gap)
		}
	}
	return nil
}

// Monitor forwards lines from a reader.
type Monitor struct {
	log *slog.Logger
	// Now stamps each line; replaced in tests.
	Now func() time.Time
}

// NewMonitor returns a monitor using the wall clock.
func NewMonitor(log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Monitor{log: log, Now: time.Now}
}

// Stream copies lines from r to w, each prefixed with the local time,
// until r is exhausted or ctx ends. Invalid UTF-8 is replaced, trailing
// whitespace trimmed and empty lines skipped. The end banner is always
// written.
func (m *Monitor) Stream(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	var err error
	count := 0
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				err = <-errc
				break loop
			}
			line = strings.TrimRight(strings.ToValidUTF8(line, "�"), " \t\r\n")
			if line == "" {
				continue
			}
			if _, werr := fmt.Fprintf(w, "[%s] %s\n", m.Now().Format(TimeFormat), line); werr != nil {
				err = werr
				break loop
			}
			count++
		}
	}

	m.log.Info("monitor stopped", "lines", count)
	if _, werr := fmt.Fprintln(w, EndBanner); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return fmt.Errorf("stream serial: %w", err)
	}
	return nil
}

// Run opens the configured port, optionally resets the board and streams
// its output to w for cfg.Duration or until ctx ends.
func Run(ctx context.Context, cfg Config, w io.Writer, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	port, err := Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	log.Info("monitoring", "port", cfg.Port, "baud", cfg.Baud, "duration", cfg.Duration)
	if cfg.Reset {
		if err := Reset(port, config.SerialResetGap); err != nil {
			return err
		}
		log.Debug("board reset")
	}

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	// A blocked Read returns once the port is closed.
	stop := context.AfterFunc(ctx, func() { _ = port.Close() })
	defer stop()

	err = NewMonitor(log).Stream(ctx, port, w)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
