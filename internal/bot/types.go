package bot

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"partybot/internal/storage"
)

// Kind classifies an inbound event
type Kind int

const (
	KindCommand Kind = iota + 1
	KindCallback
	KindText
	KindContact
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindCallback:
		return "callback"
	case KindText:
		return "text"
	case KindContact:
		return "contact"
	}
	return "unknown"
}

// Event is one inbound update from the gateway
type Event struct {
	Kind      Kind
	ChatID    int64
	UserID    int64
	MessageID int // message carrying the pressed button, or the user's message

	Command string // without the leading slash
	Args    string

	Data       string // callback data
	CallbackID string

	Text  string
	Phone string // shared contact number
}

// State is the step of a chat's conversation
type State int

const (
	StateIdle State = iota
	StateAwaitName
	StateAwaitPhone
	StateAwaitUsername
	StateAwaitSource
	StateAdminAwaitDate
	StateAdminAwaitTime
	StateAdminAwaitLocation
	StateAdminAwaitBroadcast
	StateAdminAwaitPreMessage
)

var stateNames = map[State]string{
	StateIdle:                 "idle",
	StateAwaitName:            "await_name",
	StateAwaitPhone:           "await_phone",
	StateAwaitUsername:        "await_username",
	StateAwaitSource:          "await_source",
	StateAdminAwaitDate:       "admin_await_date",
	StateAdminAwaitTime:       "admin_await_time",
	StateAdminAwaitLocation:   "admin_await_location",
	StateAdminAwaitBroadcast:  "admin_await_broadcast",
	StateAdminAwaitPreMessage: "admin_await_premessage",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// registration reports whether s belongs to the registration form
func (s State) registration() bool {
	return s >= StateAwaitName && s <= StateAwaitSource
}

// admin reports whether s belongs to the admin conversation
func (s State) admin() bool {
	return s >= StateAdminAwaitDate && s <= StateAdminAwaitPreMessage
}

// Session is the transient per-chat conversation state
type Session struct {
	State State

	// registration draft
	Name     string
	Phone    string
	Username string

	// admin event-info draft, applied after the last field
	Date string
	Time string
}

// Bot is the conversation engine
type Bot struct {
	gateway  Gateway
	settings SettingsManager
	registry storage.UserRegistry
	recorder storage.Recorder
	template storage.TemplateStore

	adminIDs map[int64]bool
	sessions map[int64]*Session
	mu       sync.Mutex // one event at a time

	limiter *rate.Limiter
	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
}
