package niri

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind classifies a decoded control-socket response.
type Kind int

const (
	KindOK Kind = iota + 1
	KindError
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindError:
		return "ERROR"
	case KindUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is a response narrowed to its kind plus the payload under it.
// Payload holds the generic JSON tree produced by encoding/json.
type Outcome struct {
	Kind    Kind
	Payload any
}

// Decode classifies raw response bytes. "Ok" wins over "Err" when both are present.
func Decode(raw []byte) (Outcome, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	var value any
	if err := dec.Decode(&value); err != nil {
		return Outcome{}, &DecodeError{Raw: raw, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Outcome{}, &DecodeError{Raw: raw, Err: fmt.Errorf("trailing data after response value")}
	}

	top, ok := value.(map[string]any)
	if !ok {
		return Outcome{Kind: KindUnknown, Payload: value}, nil
	}
	if payload, ok := top["Ok"]; ok {
		return Outcome{Kind: KindOK, Payload: payload}, nil
	}
	if payload, ok := top["Err"]; ok {
		return Outcome{Kind: KindError, Payload: payload}, nil
	}
	return Outcome{Kind: KindUnknown, Payload: value}, nil
}

// PayloadText renders a payload for humans: strings verbatim, everything else as JSON.
func PayloadText(payload any) string {
	if s, ok := payload.(string); ok {
		return s
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
