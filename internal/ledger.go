package internal

import (
	"sort"
)

// MessageLedger tracks which messages of a room have already been delivered.
//
// The fetch window is fixed (15 by default). When more messages than that
// arrive between two polls, the watermark is no longer part of the page and
// the whole page is reported as new again. Consumers may therefore see a
// message twice after a long burst, and may notify twice for it.
type MessageLedger struct {
	known     []Message
	watermark string
}

// NewMessageLedger creates an empty ledger; the first non-empty page is new in full
func NewMessageLedger() *MessageLedger {
	return &MessageLedger{}
}

// Watermark returns the id of the newest message accepted so far, or "" if none
func (l *MessageLedger) Watermark() string {
	return l.watermark
}

// Known returns the messages accepted by the last non-empty reconciliation
func (l *MessageLedger) Known() []Message {
	out := make([]Message, len(l.known))
	copy(out, l.known)
	return out
}

// Reconcile returns the messages of fetched that are newer than the
// watermark, oldest first, and moves the watermark to the newest fetched id.
// An empty page leaves the ledger untouched.
func (l *MessageLedger) Reconcile(fetched []Message) []Message {
	if len(fetched) == 0 {
		return []Message{}
	}

	page := SortMessages(fetched)

	var fresh []Message
	for i := len(page) - 1; i >= 0; i-- {
		if l.watermark != "" && page[i].ID == l.watermark {
			break
		}
		fresh = append(fresh, page[i])
	}

	// Back to chronological order
	for i, j := 0, len(fresh)-1; i < j; i, j = i+1, j-1 {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}

	l.watermark = page[len(page)-1].ID
	if len(fresh) > 0 {
		// Callers own the returned slice
		l.known = append([]Message(nil), fresh...)
	}

	if fresh == nil {
		return []Message{}
	}
	return fresh
}

// Snapshot packages the result of a reconciliation for the presenter
func (l *MessageLedger) Snapshot(roomID string, fresh []Message) Snapshot {
	return Snapshot{
		RoomID:    roomID,
		Messages:  fresh,
		Watermark: l.watermark,
	}
}

// Reset forgets the watermark, e.g. after switching rooms
func (l *MessageLedger) Reset() {
	l.known = nil
	l.watermark = ""
}

// SortMessages returns a copy of messages ordered by sent time, oldest first.
// The sort is stable; if any message lacks a parseable timestamp the
// transport order is kept as is.
func SortMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)

	times := make(map[int]int64, len(out))
	allTimed := true
	for i, m := range out {
		t, ok := m.SentAt()
		if !ok {
			allTimed = false
			break
		}
		times[i] = t.UnixNano()
	}
	if !allTimed {
		return out
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return times[idx[a]] < times[idx[b]]
	})

	sorted := make([]Message, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
