package notifier

import (
	"context"
)

//go:generate mockgen -source=public.go -destination=mock_notifier.go -package=notifier

type EventType string

const (
	EventBotSubmit   EventType = "bot_submit"
	EventBotRejected EventType = "bot_rejected"
	EventBotApproved EventType = "bot_approved"
	EventBotFeatured EventType = "bot_featured"
)

// Event is a bot lifecycle notification. UserId is always the bot owner;
// Username is the owner on submit and the acting moderator otherwise.
type Event struct {
	Type     EventType `json:"type"`
	BotId    string    `json:"botId"`
	BotName  string    `json:"botName"`
	UserId   string    `json:"userId"`
	Username string    `json:"username"`
	Reason   string    `json:"reason,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, event *Event) error
}
