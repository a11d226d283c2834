package bot

import "context"

// Gateway is the outbound side of the messaging transport
type Gateway interface {
	// Send delivers a message and returns its id
	Send(ctx context.Context, msg OutboundMessage) (int, error)
	// Edit replaces the text and inline buttons of a sent message
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb InlineKeyboard) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	// AnswerCallback clears the loading state of a pressed button
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Button is an inline button carrying either callback data or a URL
type Button struct {
	Text string
	Data string
	URL  string
}

// InlineKeyboard is a grid of inline buttons attached to a message
type InlineKeyboard [][]Button

// ReplyButton is a button of the custom reply keyboard
type ReplyButton struct {
	Text           string
	RequestContact bool
}

// ReplyKeyboard replaces the user's keyboard until removed
type ReplyKeyboard struct {
	Rows   [][]ReplyButton
	Resize bool
}

// OutboundMessage is a text message with at most one keyboard attachment.
// RemoveKeyboard wins over Reply, Inline wins over both.
type OutboundMessage struct {
	ChatID         int64
	Text           string
	Inline         InlineKeyboard
	Reply          *ReplyKeyboard
	RemoveKeyboard bool
}
