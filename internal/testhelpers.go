package internal

import (
	"fmt"
	"time"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// CreateTestUser creates a test user with the given username
func CreateTestUser(username string) User {
	return User{
		ID:          "user-" + username,
		Username:    username,
		DisplayName: username,
		URL:         "/" + username,
	}
}

// CreateTestMessage creates a test message without a sent timestamp, so
// transport order is kept when it is reconciled
func CreateTestMessage(id, from, text string) Message {
	return Message{
		ID:       id,
		Text:     text,
		HTML:     text,
		FromUser: CreateTestUser(from),
	}
}

// CreateTestMessageAt creates a test message sent offset after a fixed epoch
func CreateTestMessageAt(id, from, text string, offset time.Duration) Message {
	msg := CreateTestMessage(id, from, text)
	msg.Sent = testEpoch.Add(offset).Format(time.RFC3339Nano)
	return msg
}

// CreateTestMessages creates messages with ids from..to (inclusive), oldest first
func CreateTestMessages(from, to int) []Message {
	var messages []Message
	for i := from; i <= to; i++ {
		id := fmt.Sprintf("%d", i)
		messages = append(messages, CreateTestMessageAt(id, "alice", "message "+id, time.Duration(i)*time.Second))
	}
	return messages
}

// CreateTestMention creates a test message whose first mention is screenName
func CreateTestMention(id, from, screenName string) Message {
	msg := CreateTestMessage(id, from, "@"+screenName+" ping")
	msg.Mentions = []Mention{{ScreenName: screenName}}
	return msg
}

// CreateTestRoom creates a test room
func CreateTestRoom(id, name string, oneToOne bool) Room {
	return Room{
		ID:       id,
		Name:     name,
		URL:      "/" + name,
		OneToOne: oneToOne,
	}
}

// CreateTestTranscript creates a transcript of a group room with a fixed export time
func CreateTestTranscript(roomName string, messages []Message) *Transcript {
	return &Transcript{
		Room:       CreateTestRoom("room-"+roomName, roomName, false),
		Messages:   messages,
		ExportedAt: testEpoch.Format(time.RFC3339),
	}
}
