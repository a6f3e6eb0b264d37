package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rbright/niri-output-toggle/internal/cli"
	"github.com/rbright/niri-output-toggle/internal/config"
	"github.com/rbright/niri-output-toggle/internal/doctor"
	"github.com/rbright/niri-output-toggle/internal/logging"
	"github.com/rbright/niri-output-toggle/internal/niri"
	"github.com/rbright/niri-output-toggle/internal/notify"
	"github.com/rbright/niri-output-toggle/internal/power"
	"github.com/rbright/niri-output-toggle/internal/version"
)

const binaryName = "niri-output-toggle"

// Sink receives diagnostics and transition feedback.
type Sink interface {
	niri.Reporter
	Transition(on bool)
}

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Sink   Sink
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText(binaryName))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText(binaryName))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	logger := r.Logger
	logPath := ""
	if logger == nil {
		logRuntime, err := logging.New(config.AppName, cfgLoaded.Config.Log.Level)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
			return 1
		}
		defer func() { _ = logRuntime.Close() }()
		logger = logRuntime.Logger
		logPath = logRuntime.Path
	}

	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w)
		logger.Warn("config warning", "key", w.Key, "message", w.Message)
	}

	output := parsed.Output
	if output == "" {
		output = cfgLoaded.Config.Output
	}

	logger.Info("command start",
		"command", parsed.Command,
		"output", output,
		"config", cfgLoaded.Path,
		"log", logPath,
	)

	if parsed.Command == cli.CommandDoctor {
		report := doctor.Run(ctx, cfgLoaded, output)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	}

	sink := r.Sink
	if sink == nil {
		sink = notify.NewDiagnostics(cfgLoaded.Config, logger)
	}
	title := strings.TrimSpace(cfgLoaded.Config.Notify.Title)
	if title == "" {
		title = niri.ErrorTitle
	}
	messages := notify.MessagesFromEnv()

	endpoint, err := config.SocketPath()
	if err != nil {
		sink.Report(ctx, title, messages.ConfigMissing)
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	client := niri.NewClient(endpoint, sink, logger)
	client.Title = title
	controller := power.NewController(client, logger)

	switch parsed.Command {
	case cli.CommandStatus:
		return r.commandStatus(ctx, controller, output, sink, title, logger)
	case cli.CommandToggle:
		transition, err := controller.Toggle(ctx, output)
		return r.finish(ctx, transition, err, sink, title, logger)
	case cli.CommandOn:
		transition, err := controller.Set(ctx, output, power.On)
		return r.finish(ctx, transition, err, sink, title, logger)
	case cli.CommandOff:
		transition, err := controller.Set(ctx, output, power.Off)
		return r.finish(ctx, transition, err, sink, title, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandStatus(ctx context.Context, controller *power.Controller, output string, sink Sink, title string, logger *slog.Logger) int {
	state, err := controller.GetPowerState(ctx, output)
	if err != nil {
		return r.fail(ctx, err, sink, title, logger)
	}
	fmt.Fprintln(r.Stdout, state)
	if state == power.Indeterminate {
		logger.Error("output state indeterminate", "output", output)
		return 1
	}
	return 0
}

func (r Runner) finish(ctx context.Context, transition power.Transition, err error, sink Sink, title string, logger *slog.Logger) int {
	if err != nil {
		return r.fail(ctx, err, sink, title, logger)
	}

	fields := []any{
		"output", transition.Output,
		"from", transition.From.String(),
		"to", transition.To.String(),
		"changed", transition.Changed,
	}
	if transition.Changed {
		fields = append(fields, "kind", transition.Outcome.Kind.String())
	}
	logger.Info("command complete", fields...)

	fmt.Fprintln(r.Stdout, transition.String())
	if !transition.Changed {
		return 0
	}
	if transition.Outcome.Kind != niri.KindOK {
		fmt.Fprintf(r.Stderr, "warning: niri answered %s: %s\n", transition.Outcome.Kind, niri.PayloadText(transition.Outcome.Payload))
		return 0
	}
	sink.Transition(transition.To == power.On)
	return 0
}

// fail reports err through the sink and maps it to a non-zero exit code.
func (r Runner) fail(ctx context.Context, err error, sink Sink, title string, logger *slog.Logger) int {
	messages := notify.MessagesFromEnv()

	var decodeErr *niri.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		sink.Report(ctx, title, fmt.Sprintf("%s:\n%v", messages.DecodeFailed, decodeErr.Err))
		logger.Error("niri response decode failed", "error", err.Error(), "raw", string(decodeErr.Raw))
	case errors.Is(err, power.ErrIndeterminate):
		sink.Report(ctx, title, messages.Indeterminate)
		logger.Error("output state indeterminate", "error", err.Error())
	default:
		sink.Report(ctx, title, err.Error())
		logger.Error("niri request failed", "error", err.Error())
	}

	fmt.Fprintf(r.Stderr, "error: %v\n", err)
	return 1
}
