package domain

// Command is implemented by every store mutation request that targets a
// channel.
type Command interface {
	Channel() string
}

// PostMessageCommand carries a compose submission. The store produces the
// message identifier and timestamp; callers only supply what they know.
type PostMessageCommand struct {
	ChannelID string
	UserID    string
	Content   string
	Kind      MessageKind
}

func (p PostMessageCommand) Channel() string {
	return p.ChannelID
}

// LoadSnapshotCommand replaces the channel and message collections
// wholesale.
type LoadSnapshotCommand struct {
	Channels []Channel
	Messages map[string][]Message
}
