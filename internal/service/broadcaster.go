package service

// Push message types
const (
	MsgCategoryChanged = "category_changed"
	MsgResultUpdated   = "result_updated"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToUser(userID string, msgType string, payload interface{})
	DisconnectUser(userID string)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToUser(string, string, interface{}) {}
func (nopBroadcaster) DisconnectUser(string)                       {}
