package core

// Notifier receives best-effort new-message notifications, e.g. to drive a
// desktop-notification facility. Implementations must return quickly and
// must never fail the relay; errors are theirs to swallow.
type Notifier interface {
	Notify(roomID string, msg Message)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, Message) {}
