// Package notify delivers diagnostics and transition feedback to the user.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/rbright/niri-output-toggle/internal/config"
)

const deliveryTimeout = 2 * time.Second

type desktopNotifier interface {
	Notify(ctx context.Context, summary string, body string) (uint32, error)
}

// Diagnostics is the user-facing sink for errors and transitions.
// Delivery failures are logged and never returned.
type Diagnostics struct {
	cfg     config.Config
	logger  *slog.Logger
	desktop desktopNotifier
	play    func(cueKind) error
}

// NewDiagnostics creates a sink from config. logger may be nil.
func NewDiagnostics(cfg config.Config, logger *slog.Logger) *Diagnostics {
	return &Diagnostics{
		cfg:     cfg,
		logger:  logger,
		desktop: NewDesktop(cfg.Notify.AppName, cfg.Notify.Urgency, cfg.Notify.TimeoutMS),
		play:    playPulseCue,
	}
}

// Report logs the diagnostic and surfaces it as a desktop notification.
func (d *Diagnostics) Report(ctx context.Context, title string, message string) {
	if title == "" {
		title = d.cfg.Notify.Title
	}
	if d.logger != nil {
		d.logger.Error(title, "message", message)
	}

	d.cue(cueError)
	if !d.cfg.Notify.Enable {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()
	if _, err := d.desktop.Notify(runCtx, title, message); err != nil {
		d.debug("desktop notification failed", err)
	}
}

// Transition plays the on/off cue for a completed power change.
func (d *Diagnostics) Transition(on bool) {
	if on {
		d.cue(cueOn)
		return
	}
	d.cue(cueOff)
}

func (d *Diagnostics) cue(kind cueKind) {
	if !d.cfg.Sound.Enable || d.play == nil {
		return
	}
	if err := d.play(kind); err != nil {
		d.debug("audio cue failed", err)
	}
}

func (d *Diagnostics) debug(message string, err error) {
	if d.logger == nil || err == nil {
		return
	}
	d.logger.Debug(message, "error", err.Error())
}
