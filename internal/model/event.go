package model

// TypeText is the event type tag carried by every message event.
const TypeText = "text"

// UserEntry is the accumulated identity for one (user, channel) pair.
// At most one entry exists per pair; see engine for the overwrite policy.
type UserEntry struct {
	UserID      string `json:"userId"`
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName"`
	UserName    string `json:"userName"`
}

// MessageEvent is a qualifying record whose command equals the message
// sentinel, normalized for output.
type MessageEvent struct {
	UserID    string `json:"userId"`
	ChannelID string `json:"channelId"`
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

// CommandEvent is a qualifying record carrying any command other than the
// message sentinel.
type CommandEvent struct {
	UserID    string `json:"userId"`
	ChannelID string `json:"channelId"`
	Command   string `json:"command"`
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}
