package power

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rbright/niri-output-toggle/internal/niri"
	"github.com/rbright/niri-output-toggle/internal/niri/niritest"
	"github.com/stretchr/testify/require"
)

type setCall struct {
	output string
	power  niri.Power
}

type fakeClient struct {
	query    niri.Outcome
	queryErr error
	setErr   error
	sets     []setCall
}

func (f *fakeClient) Query(context.Context) (niri.Outcome, error) {
	return f.query, f.queryErr
}

func (f *fakeClient) SetPower(_ context.Context, output string, power niri.Power) (niri.Outcome, error) {
	f.sets = append(f.sets, setCall{output: output, power: power})
	if f.setErr != nil {
		return niri.Outcome{}, f.setErr
	}
	return niri.Outcome{Kind: niri.KindOK, Payload: map[string]any{"OutputConfigChanged": "Applied"}}, nil
}

func okPayload(t *testing.T, raw string) niri.Outcome {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return niri.Outcome{Kind: niri.KindOK, Payload: payload}
}

func TestStateFromPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want State
	}{
		{"mode object", `{"Outputs":{"HDMI-A-1":{"current_mode":{"width":3840,"height":2160,"refresh_rate":60000}}}}`, On},
		{"mode index", `{"Outputs":{"HDMI-A-1":{"current_mode":0}}}`, On},
		{"mode null", `{"Outputs":{"HDMI-A-1":{"current_mode":null}}}`, Off},
		{"mode absent", `{"Outputs":{"HDMI-A-1":{"name":"HDMI-A-1"}}}`, Off},
		{"output absent", `{"Outputs":{"DP-1":{"current_mode":0}}}`, Indeterminate},
		{"outputs absent", `{"Something":{}}`, Indeterminate},
		{"outputs wrong shape", `{"Outputs":["HDMI-A-1"]}`, Indeterminate},
		{"output wrong shape", `{"Outputs":{"HDMI-A-1":"on"}}`, Indeterminate},
		{"payload scalar", `"Handled"`, Indeterminate},
		{"payload null", `null`, Indeterminate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome := okPayload(t, tc.raw)
			require.Equal(t, tc.want, StateFromPayload(outcome.Payload, "HDMI-A-1"))
		})
	}
}

func TestGetPowerStateNonOKIsIndeterminate(t *testing.T) {
	for _, kind := range []niri.Kind{niri.KindError, niri.KindUnknown} {
		client := &fakeClient{query: niri.Outcome{Kind: kind, Payload: map[string]any{"Outputs": map[string]any{}}}}
		state, err := NewController(client, nil).GetPowerState(context.Background(), "HDMI-A-1")
		require.NoError(t, err)
		require.Equal(t, Indeterminate, state)
	}
}

func TestGetPowerStatePropagatesTransportErrors(t *testing.T) {
	client := &fakeClient{queryErr: &niri.ConnectError{Endpoint: "/nope", Err: errors.New("refused")}}
	state, err := NewController(client, nil).GetPowerState(context.Background(), "HDMI-A-1")
	require.Error(t, err)
	require.Equal(t, Indeterminate, state)
}

func TestToggleOnIssuesExactlyOneOff(t *testing.T) {
	client := &fakeClient{query: okPayload(t, `{"Outputs":{"HDMI-A-1":{"current_mode":{"width":3840}}}}`)}

	transition, err := NewController(client, nil).Toggle(context.Background(), "HDMI-A-1")
	require.NoError(t, err)
	require.Equal(t, []setCall{{output: "HDMI-A-1", power: niri.PowerOff}}, client.sets)
	require.Equal(t, On, transition.From)
	require.Equal(t, Off, transition.To)
	require.True(t, transition.Changed)
	require.Equal(t, "HDMI-A-1: on -> off", transition.String())
}

func TestToggleOffIssuesExactlyOneOn(t *testing.T) {
	client := &fakeClient{query: okPayload(t, `{"Outputs":{"HDMI-A-1":{"current_mode":null}}}`)}

	transition, err := NewController(client, nil).Toggle(context.Background(), "HDMI-A-1")
	require.NoError(t, err)
	require.Equal(t, []setCall{{output: "HDMI-A-1", power: niri.PowerOn}}, client.sets)
	require.Equal(t, "HDMI-A-1: off -> on", transition.String())
}

func TestToggleIndeterminateSendsNothing(t *testing.T) {
	client := &fakeClient{query: okPayload(t, `{"Outputs":{"DP-1":{"current_mode":0}}}`)}

	transition, err := NewController(client, nil).Toggle(context.Background(), "HDMI-A-1")
	require.ErrorIs(t, err, ErrIndeterminate)
	require.Empty(t, client.sets)
	require.Equal(t, Indeterminate, transition.From)
	require.False(t, transition.Changed)
}

func TestToggleReturnsSetErrors(t *testing.T) {
	client := &fakeClient{
		query:  okPayload(t, `{"Outputs":{"HDMI-A-1":{"current_mode":null}}}`),
		setErr: &niri.IOError{Op: "read", Err: errors.New("reset")},
	}

	_, err := NewController(client, nil).Toggle(context.Background(), "HDMI-A-1")
	var ioErr *niri.IOError
	require.True(t, errors.As(err, &ioErr))
	require.Len(t, client.sets, 1)
}

func TestSetSkipsRequestWhenAlreadyInTargetState(t *testing.T) {
	client := &fakeClient{query: okPayload(t, `{"Outputs":{"HDMI-A-1":{"current_mode":null}}}`)}

	transition, err := NewController(client, nil).Set(context.Background(), "HDMI-A-1", Off)
	require.NoError(t, err)
	require.Empty(t, client.sets)
	require.False(t, transition.Changed)
	require.Equal(t, "HDMI-A-1: already off", transition.String())
}

func TestSetDrivesOutputToTarget(t *testing.T) {
	client := &fakeClient{query: okPayload(t, `{"Outputs":{"HDMI-A-1":{"current_mode":null}}}`)}

	transition, err := NewController(client, nil).Set(context.Background(), "HDMI-A-1", On)
	require.NoError(t, err)
	require.Equal(t, []setCall{{output: "HDMI-A-1", power: niri.PowerOn}}, client.sets)
	require.True(t, transition.Changed)
}

func TestSetRejectsIndeterminateTarget(t *testing.T) {
	client := &fakeClient{}
	_, err := NewController(client, nil).Set(context.Background(), "HDMI-A-1", Indeterminate)
	require.Error(t, err)
	require.Empty(t, client.sets)
}

func TestToggleAgainstFakeCompositor(t *testing.T) {
	server := niritest.Start(t, niritest.Sequence(
		`{"Ok":{"Outputs":{"HDMI-A-1":{"current_mode":{"width":3840,"height":2160}}}}}`,
		`{"Ok":{"OutputConfigChanged":"Applied"}}`,
	))

	client := niri.NewClient(server.Path, nil, nil)
	transition, err := NewController(client, nil).Toggle(context.Background(), "HDMI-A-1")
	require.NoError(t, err)
	require.Equal(t, niri.KindOK, transition.Outcome.Kind)
	require.Equal(t, []string{
		`"Outputs"`,
		`{"Output":{"output":"HDMI-A-1","action":"Off"}}`,
	}, server.Requests())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "on", On.String())
	require.Equal(t, "off", Off.String())
	require.Equal(t, "unknown", Indeterminate.String())
}
