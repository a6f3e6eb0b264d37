package niri

import (
	"context"
	"log/slog"
)

// ErrorTitle is the notification title used for control-socket problems.
const ErrorTitle = "Output switch error"

// Reporter surfaces a diagnostic to the user.
type Reporter interface {
	Report(ctx context.Context, title string, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, title string, message string)

func (f ReporterFunc) Report(ctx context.Context, title string, message string) {
	f(ctx, title, message)
}

// Client issues requests against one control-socket endpoint.
type Client struct {
	Endpoint string
	Reporter Reporter
	Logger   *slog.Logger
	Title    string
}

// NewClient creates a client for endpoint. reporter may be nil.
func NewClient(endpoint string, reporter Reporter, logger *slog.Logger) *Client {
	return &Client{Endpoint: endpoint, Reporter: reporter, Logger: logger, Title: ErrorTitle}
}

// Query lists all outputs.
func (c *Client) Query(ctx context.Context) (Outcome, error) {
	return c.Do(ctx, QueryOutputs{})
}

// SetPower switches output on or off.
func (c *Client) SetPower(ctx context.Context, output string, power Power) (Outcome, error) {
	return c.Do(ctx, SetOutputPower{Output: output, Power: power})
}

// Do encodes req, performs one roundtrip, decodes and inspects the outcome.
func (c *Client) Do(ctx context.Context, req Request) (Outcome, error) {
	payload, err := Encode(req)
	if err != nil {
		return Outcome{}, err
	}

	raw, err := Send(ctx, c.Endpoint, payload)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := Decode(raw)
	if err != nil {
		return Outcome{}, err
	}

	if c.Logger != nil {
		c.Logger.Debug("niri roundtrip",
			"request", string(payload),
			"kind", outcome.Kind.String(),
			"response_bytes", len(raw),
		)
	}

	c.inspect(ctx, outcome)
	return outcome, nil
}

func (c *Client) inspect(ctx context.Context, outcome Outcome) {
	title := c.Title
	if title == "" {
		title = ErrorTitle
	}
	Inspect(ctx, c.Reporter, title, outcome)
}

// Inspect reports outcomes the user should see. It never alters the outcome.
//
// Error and unknown kinds are reported with their payload. Successful
// OutputConfigChanged payloads are reported unless the change was Applied.
func Inspect(ctx context.Context, reporter Reporter, title string, outcome Outcome) {
	if reporter == nil {
		return
	}

	switch outcome.Kind {
	case KindError, KindUnknown:
		reporter.Report(ctx, title, PayloadText(outcome.Payload))
		return
	}

	fields, ok := outcome.Payload.(map[string]any)
	if !ok {
		return
	}
	changed, ok := fields["OutputConfigChanged"]
	if !ok {
		return
	}
	if status, _ := changed.(string); status == "Applied" {
		return
	}
	reporter.Report(ctx, title, PayloadText(changed))
}
