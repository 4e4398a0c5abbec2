// Package alert runs the menstrual cup alert: a delay, then a looping sound
// and an acknowledgment prompt, then back home.
package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/Rorical/Nyssa/internal/audio"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

const (
	DefaultDelay = 8 * time.Second

	PromptTitle   = "Menstrual Cup Alert"
	PromptMessage = "Menstrual cup is filled. Take it out."
	PromptButton  = "OK"
)

// Prompter shows a blocking prompt and calls onPress with the pressed
// button. It must not block until the press.
type Prompter interface {
	Show(title, message string, buttons []string, onPress func(button string)) error
}

// Navigator leaves the alert screen for the home screen.
type Navigator interface {
	Home()
}

// ResourceError wraps a failure to start the alert sound.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return "alert sound: " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Snapshot is what observers receive after every transition
type Snapshot struct {
	State models.AlertState
	Err   error
}

// Session is the alert state of one alert screen. All methods are safe for
// concurrent use; the timer fires on its own goroutine.
type Session struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	delay      time.Duration
	player     audio.Player
	prompter   Prompter
	navigator  Navigator
	onChange   func(Snapshot)
	log        *log.Logger
	state      models.AlertState
	timer      clockwork.Timer
	sound      audio.Sound
	lastErr    error
	generation int
	ctx        context.Context
}

type Option func(*Session)

// WithClock replaces the wall clock, for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithObserver registers the change callback. It is called without the
// session lock held.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) { s.onChange = fn }
}

func NewSession(delay time.Duration, player audio.Player, prompter Prompter, navigator Navigator, opts ...Option) *Session {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Session{
		clock:     clockwork.NewRealClock(),
		delay:     delay,
		player:    player,
		prompter:  prompter,
		navigator: navigator,
		log:       logger.NewComponentLogger("alert"),
		state:     models.AlertIdle,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() models.AlertState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Err: s.lastErr}
}

// Mount arms the one-shot delay. Mounting a session that is not idle does
// nothing.
func (s *Session) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.state != models.AlertIdle {
		s.mu.Unlock()
		return
	}
	s.generation++
	generation := s.generation
	s.ctx = ctx
	s.lastErr = nil
	s.state = models.AlertArmed
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(generation) })
	s.mu.Unlock()

	s.log.Info("alert armed", "delay", s.delay)
	s.notify()
}

// fire runs when the delay elapses. Only the timer of the current mount can
// start playback, and only once. Play runs without the lock so a slow audio
// device does not block Unmount or State.
func (s *Session) fire(generation int) {
	s.mu.Lock()
	if generation != s.generation || s.state != models.AlertArmed {
		s.mu.Unlock()
		return
	}
	s.state = models.AlertSounding
	s.timer = nil
	ctx := s.ctx
	s.mu.Unlock()

	sound, err := s.player.Play(ctx)

	s.mu.Lock()
	if generation != s.generation || s.state != models.AlertSounding {
		// unmounted or acknowledged while the sound was starting
		s.mu.Unlock()
		if sound != nil {
			discard(sound)
		}
		s.log.Info("alert cancelled while starting sound")
		return
	}
	if err != nil {
		s.lastErr = &ResourceError{Err: err}
		s.log.Error("alert sound failed", "error", err)
	} else {
		s.sound = sound
	}
	s.mu.Unlock()

	s.log.Info("alert sounding", "state", models.AlertSounding)
	s.notify()

	onPress := func(string) { s.acknowledge(generation) }
	if err := s.prompter.Show(PromptTitle, PromptMessage, []string{PromptButton}, onPress); err != nil {
		s.log.Error("alert prompt failed", "error", err)
	}
}

func discard(sound audio.Sound) {
	if err := sound.Stop(); err != nil {
		logger.Warn("stop orphaned sound", "error", err)
	}
	if err := sound.Release(); err != nil {
		logger.Warn("release orphaned sound", "error", err)
	}
}

// Acknowledge is the prompt's OK button: stop the sound and go home.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()
	s.acknowledge(generation)
}

func (s *Session) acknowledge(generation int) {
	s.mu.Lock()
	if generation != s.generation || s.state != models.AlertSounding {
		s.mu.Unlock()
		return
	}
	err := s.teardownLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("alert teardown", "error", err)
	}
	s.notify()
	s.navigator.Home()
}

// Unmount cancels a pending delay and stops any playback. It never
// navigates.
func (s *Session) Unmount() {
	s.mu.Lock()
	if s.state == models.AlertIdle && s.sound == nil {
		s.mu.Unlock()
		return
	}
	// invalidates a timer callback that is already running
	s.generation++
	err := s.teardownLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("alert teardown", "error", err)
	}
	s.log.Info("alert unmounted")
	s.notify()
}

// Teardown stops and releases the sound and returns to idle. With nothing
// held it is a no-op.
func (s *Session) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teardownLocked()
}

func (s *Session) teardownLocked() error {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	var firstErr error
	if s.sound != nil {
		if err := s.sound.Stop(); err != nil {
			firstErr = fmt.Errorf("stop sound: %w", err)
		}
		if err := s.sound.Release(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("release sound: %w", err)
		}
		s.sound = nil
	}
	s.state = models.AlertIdle
	return firstErr
}

func (s *Session) notify() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}
