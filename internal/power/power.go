// Package power decides and flips the power state of one compositor output.
package power

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rbright/niri-output-toggle/internal/niri"
)

// ErrIndeterminate means the current state could not be read, so no action was taken.
var ErrIndeterminate = errors.New("could not determine current state")

// State is the derived power state of an output.
type State int

const (
	Indeterminate State = iota
	Off
	On
)

func (s State) String() string {
	switch s {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

// OutputClient is the subset of the control-socket client the controller needs.
type OutputClient interface {
	Query(ctx context.Context) (niri.Outcome, error)
	SetPower(ctx context.Context, output string, power niri.Power) (niri.Outcome, error)
}

// Transition describes what a toggle or set did.
type Transition struct {
	Output  string
	From    State
	To      State
	Changed bool
	Outcome niri.Outcome
}

func (t Transition) String() string {
	if !t.Changed {
		return fmt.Sprintf("%s: already %s", t.Output, t.From)
	}
	return fmt.Sprintf("%s: %s -> %s", t.Output, t.From, t.To)
}

// Controller reads and flips output power over an OutputClient.
type Controller struct {
	client OutputClient
	logger *slog.Logger
}

// NewController creates a controller. logger may be nil.
func NewController(client OutputClient, logger *slog.Logger) *Controller {
	return &Controller{client: client, logger: logger}
}

// GetPowerState queries outputs and derives the state of output.
// Errors are transport or decode failures only.
func (c *Controller) GetPowerState(ctx context.Context, output string) (State, error) {
	outcome, err := c.client.Query(ctx)
	if err != nil {
		return Indeterminate, err
	}
	if outcome.Kind != niri.KindOK {
		c.debug("outputs query not ok", "output", output, "kind", outcome.Kind.String())
		return Indeterminate, nil
	}
	return StateFromPayload(outcome.Payload, output), nil
}

// StateFromPayload navigates Outputs -> output -> current_mode.
// Any missing key or unexpected shape yields Indeterminate.
func StateFromPayload(payload any, output string) State {
	root, ok := payload.(map[string]any)
	if !ok {
		return Indeterminate
	}
	outputs, ok := root["Outputs"].(map[string]any)
	if !ok {
		return Indeterminate
	}
	info, ok := outputs[output].(map[string]any)
	if !ok {
		return Indeterminate
	}
	if mode := info["current_mode"]; mode != nil {
		return On
	}
	return Off
}

// Toggle flips output to the opposite of its current state.
func (c *Controller) Toggle(ctx context.Context, output string) (Transition, error) {
	current, err := c.GetPowerState(ctx, output)
	if err != nil {
		return Transition{Output: output}, err
	}

	switch current {
	case On:
		return c.apply(ctx, output, On, Off)
	case Off:
		return c.apply(ctx, output, Off, On)
	default:
		return Transition{Output: output, From: Indeterminate}, ErrIndeterminate
	}
}

// Set drives output to target, skipping the request when it is already there.
func (c *Controller) Set(ctx context.Context, output string, target State) (Transition, error) {
	if target != On && target != Off {
		return Transition{Output: output}, fmt.Errorf("invalid target state %s", target)
	}

	current, err := c.GetPowerState(ctx, output)
	if err != nil {
		return Transition{Output: output}, err
	}
	if current == Indeterminate {
		return Transition{Output: output, From: Indeterminate}, ErrIndeterminate
	}
	if current == target {
		return Transition{Output: output, From: current, To: current}, nil
	}
	return c.apply(ctx, output, current, target)
}

func (c *Controller) apply(ctx context.Context, output string, from State, to State) (Transition, error) {
	action := niri.PowerOff
	if to == On {
		action = niri.PowerOn
	}

	outcome, err := c.client.SetPower(ctx, output, action)
	if err != nil {
		return Transition{Output: output, From: from}, err
	}
	c.debug("output power set", "output", output, "from", from.String(), "to", to.String(), "kind", outcome.Kind.String())
	return Transition{Output: output, From: from, To: to, Changed: true, Outcome: outcome}, nil
}

func (c *Controller) debug(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, args...)
}
