package internal

import "fmt"

// Notification is a trigger for a desktop notification. Displaying it is up
// to the consumer.
type Notification struct {
	RoomID    string
	MessageID string
	From      string
	Body      string
}

// ShouldNotify reports whether msg mentions user. Only the first mention is
// considered.
func ShouldNotify(msg Message, user User) bool {
	if len(msg.Mentions) == 0 || user.Username == "" {
		return false
	}
	return msg.Mentions[0].ScreenName == user.Username
}

// NewNotification builds the notification for msg
func NewNotification(roomID string, msg Message) Notification {
	return Notification{
		RoomID:    roomID,
		MessageID: msg.ID,
		From:      msg.FromUser.Username,
		Body:      fmt.Sprintf("Message from user %s!", msg.FromUser.Username),
	}
}
