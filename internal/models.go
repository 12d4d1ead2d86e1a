package internal

import (
	"time"
)

// User represents a Gitter account
type User struct {
	ID              string `json:"id" yaml:"id"`
	Username        string `json:"username" yaml:"username"`
	DisplayName     string `json:"displayName" yaml:"display_name"`
	URL             string `json:"url" yaml:"url"`
	AvatarURLSmall  string `json:"avatarUrlSmall" yaml:"avatar_url_small,omitempty"`
	AvatarURLMedium string `json:"avatarUrlMedium" yaml:"avatar_url_medium,omitempty"`
}

// Room represents a room the local user has joined
type Room struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Topic      string `json:"topic" yaml:"topic,omitempty"`
	URL        string `json:"url" yaml:"url"`
	OneToOne   bool   `json:"oneToOne" yaml:"one_to_one"`
	Mentions   int    `json:"mentions" yaml:"mentions"`
	GithubType string `json:"githubType" yaml:"github_type,omitempty"`
	Lurk       bool   `json:"lurk" yaml:"lurk"`
}

// URLRef is a url embedded in a message
type URLRef struct {
	URL string `json:"url" yaml:"url"`
}

// Mention is an @-mention embedded in a message
type Mention struct {
	ScreenName string `json:"screenName" yaml:"screen_name"`
}

// Message represents a chat message as returned by the chatMessages resource
type Message struct {
	ID       string    `json:"id" yaml:"id"`
	Text     string    `json:"text" yaml:"text"`
	HTML     string    `json:"html" yaml:"html,omitempty"`
	Sent     string    `json:"sent" yaml:"sent"`
	FromUser User      `json:"fromUser" yaml:"from_user"`
	Unread   bool      `json:"unread" yaml:"unread"`
	ReadBy   int       `json:"readBy" yaml:"read_by"`
	URLs     []URLRef  `json:"urls" yaml:"urls,omitempty"`
	Mentions []Mention `json:"mentions" yaml:"mentions,omitempty"`
	V        int       `json:"v" yaml:"v"`
}

// SentAt parses the sent timestamp. The second return value is false when
// the timestamp is missing or not RFC3339.
func (m Message) SentAt() (time.Time, bool) {
	if m.Sent == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, m.Sent)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Snapshot is the set of newly reconciled messages produced by one poll cycle
type Snapshot struct {
	RoomID    string    `json:"room_id"`
	Messages  []Message `json:"messages"`
	Watermark string    `json:"watermark"`
}

// Transcript is a room together with its most recent messages, used for export
type Transcript struct {
	Room       Room      `json:"room" yaml:"room"`
	Messages   []Message `json:"messages" yaml:"messages"`
	ExportedAt string    `json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
}

// NewTranscript builds a transcript stamped with the current time
func NewTranscript(room Room, messages []Message) *Transcript {
	return &Transcript{
		Room:       room,
		Messages:   messages,
		ExportedAt: time.Now().Format(time.RFC3339),
	}
}
