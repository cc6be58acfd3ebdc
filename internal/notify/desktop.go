package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier delivers a reminder to the user. Implementations are best-effort:
// delivery failure must never block or corrupt bill management.
type Notifier interface {
	Granted() bool
	Send(title, body string)
}

// Desktop sends OS desktop notifications through beeep. Permission is a
// config-level switch; there is no OS prompt to wait on.
type Desktop struct {
	enabled bool
}

// NewDesktop returns a Desktop notifier gated on the config switch.
func NewDesktop(enabled bool) *Desktop {
	return &Desktop{enabled: enabled}
}

// Granted reports whether notifications are enabled.
func (d *Desktop) Granted() bool {
	return d.enabled
}

// Send delivers one desktop notification. Errors are swallowed and logged:
// reminders are a convenience, not a guarantee.
func (d *Desktop) Send(title, body string) {
	if !d.enabled || title == "" {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		slog.Warn("desktop notification failed", "err", err)
	}
}
