// Package doctor runs readiness diagnostics for config, the niri socket, and notifications.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rbright/niri-output-toggle/internal/config"
	"github.com/rbright/niri-output-toggle/internal/niri"
	"github.com/rbright/niri-output-toggle/internal/notify"
	"github.com/rbright/niri-output-toggle/internal/power"
)

const probeTimeout = 2 * time.Second

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

type probes struct {
	peerUID      func(ctx context.Context, endpoint string) (uint32, error)
	query        func(ctx context.Context, endpoint string) (niri.Outcome, error)
	notifyServer func(ctx context.Context, cfg config.NotifyConfig) (string, error)
}

func liveProbes() probes {
	return probes{
		peerUID: niri.PeerUID,
		query: func(ctx context.Context, endpoint string) (niri.Outcome, error) {
			return niri.NewClient(endpoint, nil, nil).Query(ctx)
		},
		notifyServer: func(ctx context.Context, cfg config.NotifyConfig) (string, error) {
			return notify.NewDesktop(cfg.AppName, cfg.Urgency, cfg.TimeoutMS).ServerName(ctx)
		},
	}
}

// Run executes environment/config/runtime checks for a loaded config and target output.
func Run(ctx context.Context, cfg config.Loaded, output string) Report {
	return run(ctx, cfg, output, liveProbes())
}

func run(ctx context.Context, cfg config.Loaded, output string, p probes) Report {
	checks := []Check{}

	configMsg := fmt.Sprintf("loaded %q", cfg.Path)
	if !cfg.Exists {
		configMsg = fmt.Sprintf("using defaults (%q not found)", cfg.Path)
	}
	checks = append(checks, Check{Name: "config", Pass: true, Message: configMsg})

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "wayland")
	}, "session type is wayland", "expected XDG_SESSION_TYPE=wayland"))

	endpoint, err := config.SocketPath()
	if err != nil {
		checks = append(checks, Check{Name: config.SocketEnv, Pass: false, Message: err.Error()})
	} else {
		checks = append(checks, Check{Name: config.SocketEnv, Pass: true, Message: endpoint})
		checks = append(checks, checkSocketOwner(ctx, endpoint, p))
		checks = append(checks, checkOutput(ctx, endpoint, output, p))
	}

	if cfg.Config.Notify.Enable {
		checks = append(checks, checkNotificationServer(ctx, cfg.Config.Notify, p))
	}

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkSocketOwner verifies the control socket is served by the current user.
func checkSocketOwner(ctx context.Context, endpoint string, p probes) Check {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	uid, err := p.peerUID(probeCtx, endpoint)
	if err != nil {
		return Check{Name: "niri.socket", Pass: false, Message: err.Error()}
	}
	if uid != uint32(os.Getuid()) {
		return Check{Name: "niri.socket", Pass: false, Message: fmt.Sprintf("socket owned by uid %d, expected %d", uid, os.Getuid())}
	}
	return Check{Name: "niri.socket", Pass: true, Message: fmt.Sprintf("reachable, owned by uid %d", uid)}
}

// checkOutput runs one Outputs query and reports the target output's state.
func checkOutput(ctx context.Context, endpoint string, output string, p probes) Check {
	name := "niri.output"
	outcome, err := p.query(ctx, endpoint)
	if err != nil {
		return Check{Name: name, Pass: false, Message: err.Error()}
	}
	if outcome.Kind != niri.KindOK {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("outputs query returned %s: %s", outcome.Kind, niri.PayloadText(outcome.Payload))}
	}

	state := power.StateFromPayload(outcome.Payload, output)
	if state == power.Indeterminate {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("output %q not reported by niri", output)}
	}
	return Check{Name: name, Pass: true, Message: fmt.Sprintf("%s is %s", output, state)}
}

// checkNotificationServer confirms a freedesktop notification daemon owns the bus name.
func checkNotificationServer(ctx context.Context, cfg config.NotifyConfig, p probes) Check {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	server, err := p.notifyServer(probeCtx, cfg)
	if err != nil {
		return Check{Name: "notify.server", Pass: false, Message: err.Error()}
	}
	return Check{Name: "notify.server", Pass: true, Message: fmt.Sprintf("notification server %q", server)}
}
