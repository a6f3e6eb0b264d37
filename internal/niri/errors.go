package niri

import "fmt"

// ConnectError reports that the control socket could not be reached.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect niri socket %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// IOError reports a write or read failure on an established connection.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s niri socket: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports a control-socket response that is not valid JSON.
// Callers treat it as fatal for the whole process.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode niri response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
