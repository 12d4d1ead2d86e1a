package internal

import (
	"context"
)

// Directory is the data fetched once at startup
type Directory struct {
	User    User
	Catalog *RoomCatalog
}

// Bootstrap loads the local user and the normalized room catalog
func Bootstrap(ctx context.Context, client *Client, token string) (*Directory, error) {
	users := client.FetchUser(ctx, token)
	if len(users) == 0 {
		return nil, ErrNoUser
	}

	catalog := NewRoomCatalog(client.FetchRooms(ctx, token))
	if catalog.Len() == 0 {
		return nil, ErrNoRooms
	}

	LogInfo("Signed in as @%s, %d room(s)", users[0].Username, catalog.Len())
	return &Directory{User: users[0], Catalog: catalog}, nil
}
