package internal

import (
	"context"
)

// ChatSession holds the active room and the token. It is not safe for
// concurrent use; in the sync engine it is owned by a single SessionOwner.
type ChatSession struct {
	client     *Client
	token      string
	activeRoom string
	limit      int
}

// NewChatSession creates a session starting on roomID. limit bounds how many
// recent messages each ListMessages call fetches.
func NewChatSession(client *Client, token, roomID string, limit int) *ChatSession {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &ChatSession{
		client:     client,
		token:      token,
		activeRoom: roomID,
		limit:      limit,
	}
}

// ActiveRoom returns the id of the room currently polled
func (s *ChatSession) ActiveRoom() string {
	return s.activeRoom
}

// SetActiveRoom replaces the active room. It only affects the next fetch.
func (s *ChatSession) SetActiveRoom(id string) {
	s.activeRoom = id
}

// ListMessages returns the most recent messages of the active room, or an
// empty slice when the fetch failed.
func (s *ChatSession) ListMessages(ctx context.Context) []Message {
	return s.client.FetchMessages(ctx, s.token, s.activeRoom, s.limit)
}

// SendMessage posts text to the active room
func (s *ChatSession) SendMessage(ctx context.Context, text string) error {
	return s.client.PostMessage(ctx, s.token, s.activeRoom, text)
}

type requestKind int

const (
	requestList requestKind = iota
	requestSwitch
	requestSend
)

type listReply struct {
	roomID   string
	messages []Message
}

type sessionRequest struct {
	kind  requestKind
	value string
	reply chan listReply // buffered; nil for room switches
}

// SessionOwner serializes every access to a ChatSession through one goroutine.
// Requests are served in arrival order from a single channel.
type SessionOwner struct {
	session  *ChatSession
	requests chan sessionRequest
}

// NewSessionOwner wraps session. Run must be started before any request is made.
func NewSessionOwner(session *ChatSession) *SessionOwner {
	return &SessionOwner{
		session:  session,
		requests: make(chan sessionRequest),
	}
}

// Run serves requests until ctx is done
func (o *SessionOwner) Run(ctx context.Context) error {
	WorkerLog(LogLevelDebug, "session", o.session.ActiveRoom(), "owner started")
	for {
		select {
		case <-ctx.Done():
			WorkerLog(LogLevelDebug, "session", o.session.ActiveRoom(), "owner stopped")
			return nil
		case req := <-o.requests:
			o.serve(ctx, req)
		}
	}
}

func (o *SessionOwner) serve(ctx context.Context, req sessionRequest) {
	switch req.kind {
	case requestList:
		room := o.session.ActiveRoom()
		req.reply <- listReply{roomID: room, messages: o.session.ListMessages(ctx)}
	case requestSwitch:
		WorkerLog(LogLevelInfo, "session", req.value, "setting active room")
		o.session.SetActiveRoom(req.value)
	case requestSend:
		// The result is not observed; PostMessage already logged any failure
		_ = o.session.SendMessage(ctx, req.value)
		req.reply <- listReply{}
	}
}

func (o *SessionOwner) submit(ctx context.Context, req sessionRequest) error {
	select {
	case o.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListMessages fetches the active room and reports which room was fetched
func (o *SessionOwner) ListMessages(ctx context.Context) (string, []Message, error) {
	reply := make(chan listReply, 1)
	if err := o.submit(ctx, sessionRequest{kind: requestList, reply: reply}); err != nil {
		return "", nil, err
	}
	select {
	case r := <-reply:
		return r.roomID, r.messages, nil
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

// SetActiveRoom queues a room switch
func (o *SessionOwner) SetActiveRoom(ctx context.Context, id string) error {
	return o.submit(ctx, sessionRequest{kind: requestSwitch, value: id})
}

// SendMessage posts text to the active room and returns once the post is done
func (o *SessionOwner) SendMessage(ctx context.Context, text string) error {
	reply := make(chan listReply, 1)
	if err := o.submit(ctx, sessionRequest{kind: requestSend, value: text, reply: reply}); err != nil {
		return err
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
