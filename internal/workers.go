package internal

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

const snapshotBuffer = 16

// Poller repeatedly fetches the active room and forwards ledger snapshots
type Poller struct {
	owner    *SessionOwner
	ledger   *MessageLedger
	out      chan<- Snapshot
	interval time.Duration
	lastRoom string
}

// NewPoller creates a Poller writing snapshots to out. out is closed when Run returns.
func NewPoller(owner *SessionOwner, ledger *MessageLedger, out chan<- Snapshot, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{owner: owner, ledger: ledger, out: out, interval: interval}
}

// Run polls immediately, then once per interval, until ctx is done
func (p *Poller) Run(ctx context.Context) error {
	defer close(p.out)
	WorkerLog(LogLevelDebug, "poller", "", "started, interval %s", p.interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			WorkerLog(LogLevelDebug, "poller", p.lastRoom, "stopped")
			return nil
		case <-timer.C:
		}

		snapshot, err := p.poll(ctx)
		if err != nil {
			// Only a cancelled context makes poll fail
			return nil
		}

		select {
		case p.out <- snapshot:
		case <-ctx.Done():
			return nil
		}

		timer.Reset(p.interval)
	}
}

func (p *Poller) poll(ctx context.Context) (Snapshot, error) {
	roomID, fetched, err := p.owner.ListMessages(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	if roomID != p.lastRoom {
		if p.lastRoom != "" {
			WorkerLog(LogLevelDebug, "poller", roomID, "switched from %s, resetting ledger", p.lastRoom)
		}
		p.ledger.Reset()
		p.lastRoom = roomID
	}

	fresh := p.ledger.Reconcile(fetched)
	if len(fresh) > 0 {
		WorkerLog(LogLevelDebug, "poller", roomID, "%d fetched, %d new, watermark %s", len(fetched), len(fresh), p.ledger.Watermark())
	}
	return p.ledger.Snapshot(roomID, fresh), nil
}

// RoomSwitcher applies room-id requests to the session
type RoomSwitcher struct {
	owner *SessionOwner
	in    <-chan string
}

// NewRoomSwitcher creates a RoomSwitcher reading from in
func NewRoomSwitcher(owner *SessionOwner, in <-chan string) *RoomSwitcher {
	return &RoomSwitcher{owner: owner, in: in}
}

// Run returns a WorkerError wrapping ErrChannelClosed once in is closed
func (w *RoomSwitcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-w.in:
			if !ok {
				WorkerLog(LogLevelInfo, "room-switcher", "", "channel closed, stopping")
				return &WorkerError{Worker: "room-switcher", Err: ErrChannelClosed}
			}
			if err := w.owner.SetActiveRoom(ctx, id); err != nil {
				return nil
			}
		}
	}
}

// OutboundSender posts user-composed text through the session
type OutboundSender struct {
	owner *SessionOwner
	in    <-chan string
}

// NewOutboundSender creates an OutboundSender reading from in
func NewOutboundSender(owner *SessionOwner, in <-chan string) *OutboundSender {
	return &OutboundSender{owner: owner, in: in}
}

// Run returns a WorkerError wrapping ErrChannelClosed once in is closed
func (w *OutboundSender) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-w.in:
			if !ok {
				WorkerLog(LogLevelInfo, "outbound-sender", "", "channel closed, stopping")
				return &WorkerError{Worker: "outbound-sender", Err: ErrChannelClosed}
			}
			if err := w.owner.SendMessage(ctx, text); err != nil {
				return nil
			}
		}
	}
}

// EngineOptions configures an Engine
type EngineOptions struct {
	PollInterval time.Duration
}

// Engine wires the session owner and the three workers together and
// supervises them: the first worker to fail cancels all the others.
// Room requests and outgoing text go through unbounded queues, so the
// presentation side never blocks and nothing it submits is dropped.
type Engine struct {
	owner    *SessionOwner
	poller   *Poller
	switcher *RoomSwitcher
	sender   *OutboundSender

	roomRequests *Queue[string]
	outgoing     *Queue[string]
	snapshots    chan Snapshot
}

// NewEngine builds an Engine around session
func NewEngine(session *ChatSession, opts EngineOptions) *Engine {
	e := &Engine{
		owner:        NewSessionOwner(session),
		roomRequests: NewQueue[string](),
		outgoing:     NewQueue[string](),
		snapshots:    make(chan Snapshot, snapshotBuffer),
	}
	e.poller = NewPoller(e.owner, NewMessageLedger(), e.snapshots, opts.PollInterval)
	e.switcher = NewRoomSwitcher(e.owner, e.roomRequests.Out())
	e.sender = NewOutboundSender(e.owner, e.outgoing.Out())
	return e
}

// RoomRequests is where the presentation side pushes room ids
func (e *Engine) RoomRequests() *Queue[string] {
	return e.roomRequests
}

// Outgoing is where the presentation side pushes composed text
func (e *Engine) Outgoing() *Queue[string] {
	return e.outgoing
}

// Snapshots delivers one snapshot per poll cycle; it is closed when the engine stops
func (e *Engine) Snapshots() <-chan Snapshot {
	return e.snapshots
}

// Close stops accepting text. Text already queued is still posted; the
// sender then sees its channel closed, which shuts the engine down. Room
// requests are accepted until Run returns.
func (e *Engine) Close() {
	e.outgoing.Close()
}

// Run blocks until ctx is cancelled or a worker stops. A closed inbound
// channel is reported as a WorkerError wrapping ErrChannelClosed; a
// cancelled ctx returns nil.
func (e *Engine) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return e.owner.Run(gctx) })
	g.Go(func() error { return e.poller.Run(gctx) })
	g.Go(func() error { return e.roomRequests.Run(gctx) })
	g.Go(func() error { return e.outgoing.Run(gctx) })
	g.Go(func() error { return e.switcher.Run(gctx) })
	g.Go(func() error { return e.sender.Run(gctx) })

	LogInfo("Sync engine started")
	err := g.Wait()
	e.outgoing.Close()
	e.roomRequests.Close()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	LogInfo("Sync engine stopped")
	return err
}
