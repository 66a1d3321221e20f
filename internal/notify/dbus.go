//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = "org.freedesktop.Notifications"
)

// dbusNotifier talks to the session notification server.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the notification server on the session bus. Without a
// session bus or a running server it returns a no-op notifier.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // headless sessions have no bus
	}
	obj := conn.Object(notifyDest, notifyPath)

	var name, vendor, version, specVersion string
	if err := obj.Call(notifyIface+".GetServerInformation", 0).
		Store(&name, &vendor, &version, &specVersion); err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // no server registered
	}
	return &dbusNotifier{obj: obj}, nil
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	err := d.obj.Call(notifyIface+".Notify", 0,
		appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints(n),
		n.Timeout,
	).Store(&id)
	return id, err
}

func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(notifyIface+".CloseNotification", 0, id).Err
}

// hints builds the freedesktop hint map for n.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Urgency == UrgencyCritical {
		h["category"] = dbus.MakeVariant("device.error")
	}
	if n.ReplacesID != 0 {
		// Avoid the popup animation when a notification is updated in place.
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}
