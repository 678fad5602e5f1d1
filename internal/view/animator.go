package view

import (
	"context"
	"fmt"
	"time"

	"github.com/erazemk/omara/internal/nav"
)

// Default transition durations.
const (
	ScreenDuration = 300 * time.Millisecond
	FormDuration   = 500 * time.Millisecond
)

// Transition is an in-flight visual transition.
type Transition struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// TimedAnimator implements nav.Animator by publishing the transition on a
// Recorder for its duration. Moving into the form takes Form, everything
// else takes Screen.
type TimedAnimator struct {
	Recorder *Recorder
	Screen   time.Duration
	Form     time.Duration
}

// NewTimedAnimator creates an animator with the default durations.
func NewTimedAnimator(r *Recorder) *TimedAnimator {
	return &TimedAnimator{Recorder: r, Screen: ScreenDuration, Form: FormDuration}
}

// Duration returns how long the transition into screen to takes.
func (a *TimedAnimator) Duration(to nav.Screen) time.Duration {
	if to == nav.ScreenForm {
		return a.Form
	}
	return a.Screen
}

func (a *TimedAnimator) Play(ctx context.Context, from, to nav.Screen) error {
	d := a.Duration(to)
	a.Recorder.beginTransition(Transition{
		From:       from.String(),
		To:         to.String(),
		DurationMS: d.Milliseconds(),
		StartedAt:  time.Now().UTC(),
	})
	defer a.Recorder.endTransition()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("transition %s -> %s: %w", from, to, ctx.Err())
	}
}
