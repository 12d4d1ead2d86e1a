package internal

// TickResult is what one presenter tick found
type TickResult struct {
	// Snapshot is nil when nothing was ready
	Snapshot *Snapshot
	// RoomChanged is set when Snapshot belongs to a different room than the previous one
	RoomChanged bool
	// Notifications lists the new messages that mention the local user
	Notifications []Notification
	// Closed is set once the snapshot channel is closed; the caller should stop ticking
	Closed bool
}

// Presenter consumes ledger snapshots on behalf of the presentation layer
// and decides which messages deserve a notification.
type Presenter struct {
	user          User
	snapshots     <-chan Snapshot
	notifications *Queue[Notification]
	lastRoom      string
	closed        bool
}

// NewPresenter creates a Presenter. notifications may be nil; when set,
// notifications are also pushed there.
func NewPresenter(user User, snapshots <-chan Snapshot, notifications *Queue[Notification]) *Presenter {
	return &Presenter{
		user:          user,
		snapshots:     snapshots,
		notifications: notifications,
	}
}

// User returns the local user
func (p *Presenter) User() User {
	return p.user
}

// Closed reports whether the snapshot channel has been observed closed
func (p *Presenter) Closed() bool {
	return p.closed
}

// Tick checks for one snapshot without blocking
func (p *Presenter) Tick() TickResult {
	if p.closed {
		return TickResult{Closed: true}
	}

	select {
	case snapshot, ok := <-p.snapshots:
		if !ok {
			p.closed = true
			LogDebug("Snapshot channel closed, presenter stops ticking")
			return TickResult{Closed: true}
		}
		return p.present(snapshot)
	default:
		return TickResult{}
	}
}

func (p *Presenter) present(snapshot Snapshot) TickResult {
	result := TickResult{
		Snapshot:    &snapshot,
		RoomChanged: snapshot.RoomID != p.lastRoom,
	}
	p.lastRoom = snapshot.RoomID

	for _, msg := range snapshot.Messages {
		if !ShouldNotify(msg, p.user) {
			continue
		}
		n := NewNotification(snapshot.RoomID, msg)
		result.Notifications = append(result.Notifications, n)
		p.forward(n)
	}
	return result
}

func (p *Presenter) forward(n Notification) {
	if p.notifications == nil {
		return
	}
	if !p.notifications.Push(n) {
		LogDebug("Notification queue closed, not forwarding message %s", n.MessageID)
	}
}
