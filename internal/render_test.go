package internal

import (
	"strings"
	"testing"
)

func TestFormatMessage(t *testing.T) {
	alice := CreateTestUser("alice")

	tests := []struct {
		name       string
		msg        Message
		contains   []string
		hasMention bool
	}{
		{
			name:     "plain message",
			msg:      CreateTestMessage("1", "bob", "hello there"),
			contains: []string{"@bob", "hello there"},
		},
		{
			name:       "mention of self",
			msg:        CreateTestMention("2", "bob", "alice"),
			contains:   []string{"@bob", "@alice ping"},
			hasMention: true,
		},
		{
			name:     "own message",
			msg:      CreateTestMessage("3", "alice", "mine"),
			contains: []string{"@alice", "mine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMessage(tt.msg, alice)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatMessage() = %q, should contain %q", got, want)
				}
			}
			if strings.Contains(got, "●") != tt.hasMention {
				t.Errorf("FormatMessage() = %q, mention marker present = %v, want %v", got, !tt.hasMention, tt.hasMention)
			}
		})
	}
}

func TestFormatMessage_Timestamp(t *testing.T) {
	msg := CreateTestMessageAt("1", "bob", "hi", 0)
	sent, _ := msg.SentAt()

	got := FormatMessage(msg, User{})
	if !strings.Contains(got, sent.Local().Format("15:04")) {
		t.Errorf("FormatMessage() = %q, should contain the local send time", got)
	}
}

func TestFormatRoom(t *testing.T) {
	room := CreateTestRoom("r1", "gitterHQ/gitter", false)
	room.Mentions = 3

	got := FormatRoom(room, true)
	if !strings.Contains(got, "gitterHQ/gitter") {
		t.Errorf("FormatRoom() = %q, should contain the room name", got)
	}
	if !strings.Contains(got, "@3") {
		t.Errorf("FormatRoom() = %q, should contain the mention count", got)
	}
	if !strings.Contains(got, "▸") {
		t.Errorf("FormatRoom() = %q, should mark the active room", got)
	}

	if strings.Contains(FormatRoom(room, false), "▸") {
		t.Error("FormatRoom() should not mark an inactive room")
	}
}
