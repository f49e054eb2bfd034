package domain

// UISettings is the JSON-encoded, non-theme preference record.
// Pointer fields distinguish "not specified" from a zero value so that a
// partial write can be shallow-merged over the stored record: non-nil
// fields win, nil fields retain whatever the store already holds.
type UISettings struct {
	SidebarOpen       *bool   `json:"sidebarOpen,omitempty"`
	LastActiveChannel *string `json:"lastActiveChannel,omitempty"`
}

// Merge returns the receiver with every non-nil field of partial applied
// over it. Neither input is modified.
func (s UISettings) Merge(partial UISettings) UISettings {
	if partial.SidebarOpen != nil {
		s.SidebarOpen = partial.SidebarOpen
	}
	if partial.LastActiveChannel != nil {
		s.LastActiveChannel = partial.LastActiveChannel
	}
	return s
}
