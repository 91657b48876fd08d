package domain

import "time"

// EngagementAction is what a user did with an item
type EngagementAction string

const (
	ActionClick      EngagementAction = "click"
	ActionBookmark   EngagementAction = "bookmark"
	ActionUnbookmark EngagementAction = "unbookmark"
	ActionShare      EngagementAction = "share"
	ActionDwell      EngagementAction = "dwell"
)

// Valid reports whether the action is known
func (a EngagementAction) Valid() bool {
	switch a {
	case ActionClick, ActionBookmark, ActionUnbookmark, ActionShare, ActionDwell:
		return true
	}
	return false
}

// Engagement records a user interaction with an item
type Engagement struct {
	ID        string
	ItemID    string
	Action    EngagementAction
	SessionID string
	UserID    string
	Metadata  map[string]any
	CreatedAt time.Time
}
