package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod         = notificationsService + ".Notify"
	getServerInfoMethod  = notificationsService + ".GetServerInformation"
)

// busCall invokes one method on the notifications object and stores replies into out.
type busCall func(ctx context.Context, method string, out []any, args ...any) error

// Desktop sends freedesktop notifications over the session bus.
type Desktop struct {
	AppName   string
	Urgency   string
	TimeoutMS int

	call busCall
}

// NewDesktop creates a notifier bound to the user's session bus.
func NewDesktop(appName string, urgency string, timeoutMS int) *Desktop {
	return &Desktop{AppName: appName, Urgency: urgency, TimeoutMS: timeoutMS, call: sessionBusCall}
}

// Notify shows summary/body and returns the server-assigned notification ID.
func (d *Desktop) Notify(ctx context.Context, summary string, body string) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyByte(d.Urgency)),
	}

	var id uint32
	err := d.call(ctx, notifyMethod, []any{&id},
		d.AppName,
		uint32(0),
		"",
		summary,
		body,
		[]string{},
		hints,
		int32(d.TimeoutMS),
	)
	if err != nil {
		return 0, fmt.Errorf("desktop notify failed: %w", err)
	}
	return id, nil
}

// ServerName returns the running notification daemon's name.
func (d *Desktop) ServerName(ctx context.Context) (string, error) {
	var name, vendor, version, specVersion string
	if err := d.call(ctx, getServerInfoMethod, []any{&name, &vendor, &version, &specVersion}); err != nil {
		return "", fmt.Errorf("query notification server: %w", err)
	}
	return name, nil
}

func urgencyByte(raw string) byte {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return 0
	case "critical":
		return 2
	default:
		return 1
	}
}

func sessionBusCall(ctx context.Context, method string, out []any, args ...any) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(notificationsService, notificationsPath).CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return call.Err
	}
	if len(out) == 0 {
		return nil
	}
	return call.Store(out...)
}
