package niri

import (
	"encoding/json"
	"fmt"
)

// Power is the requested power action for one output.
type Power int

const (
	PowerOff Power = iota
	PowerOn
)

// String returns the wire action name.
func (p Power) String() string {
	if p == PowerOn {
		return "On"
	}
	return "Off"
}

// Request is one of the control-socket requests this client issues.
type Request interface {
	isRequest()
}

// QueryOutputs lists every output the compositor knows about.
type QueryOutputs struct{}

// SetOutputPower switches a named output on or off.
type SetOutputPower struct {
	Output string
	Power  Power
}

func (QueryOutputs) isRequest()   {}
func (SetOutputPower) isRequest() {}

type outputAction struct {
	Output string `json:"output"`
	Action string `json:"action"`
}

type outputEnvelope struct {
	Output outputAction `json:"Output"`
}

// Encode serializes req without the trailing newline; Send adds the frame terminator.
func Encode(req Request) ([]byte, error) {
	switch r := req.(type) {
	case QueryOutputs:
		return json.Marshal("Outputs")
	case SetOutputPower:
		if r.Output == "" {
			return nil, fmt.Errorf("output name must not be empty")
		}
		return json.Marshal(outputEnvelope{Output: outputAction{Output: r.Output, Action: r.Power.String()}})
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}
}
