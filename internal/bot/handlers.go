package bot

import (
	"context"

	"go.uber.org/zap"
)

// handlerFunc processes one input in a conversation state and returns the
// next state. StateIdle ends the conversation.
type handlerFunc func(b *Bot, ctx context.Context, ev Event, s *Session) State

type transition struct {
	state State
	kind  Kind
}

// transitions maps (state, input kind) to the handler of that input
var transitions = map[transition]handlerFunc{
	{StateAwaitName, KindText}:            (*Bot).onName,
	{StateAwaitPhone, KindText}:           (*Bot).onPhone,
	{StateAwaitPhone, KindContact}:        (*Bot).onPhone,
	{StateAwaitUsername, KindText}:        (*Bot).onUsername,
	{StateAwaitSource, KindText}:          (*Bot).onSource,
	{StateAdminAwaitDate, KindText}:       (*Bot).onAdminDate,
	{StateAdminAwaitTime, KindText}:       (*Bot).onAdminTime,
	{StateAdminAwaitLocation, KindText}:   (*Bot).onAdminLocation,
	{StateAdminAwaitBroadcast, KindText}:  (*Bot).onBroadcast,
	{StateAdminAwaitPreMessage, KindText}: (*Bot).onPreMessage,
}

// HandleEvent processes a single inbound event. Events are handled one at a
// time.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Recover from panics to keep serving other events
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in event handler",
				zap.Int64("chat_id", ev.ChatID),
				zap.Stringer("kind", ev.Kind),
				zap.Any("panic", r),
			)
			delete(b.sessions, ev.ChatID)
			b.reply(ctx, ev.ChatID, textError)
		}
	}()

	switch ev.Kind {
	case KindCommand:
		b.handleCommand(ctx, ev)
	case KindCallback:
		b.handleCallback(ctx, ev)
	case KindText, KindContact:
		b.handleInput(ctx, ev)
	default:
		b.logger.Debug("Ignoring unsupported event", zap.Int64("chat_id", ev.ChatID))
	}
}

// handleInput routes free text and contacts through the transition table
func (b *Bot) handleInput(ctx context.Context, ev Event) {
	s, ok := b.sessions[ev.ChatID]
	if !ok {
		b.logger.Debug("Ignoring input outside a conversation", zap.Int64("chat_id", ev.ChatID))
		return
	}

	if s.State.registration() && ev.Kind == KindText && isCancel(ev.Text) {
		b.endConversation(ctx, ev.ChatID, s)
		return
	}

	handler, ok := transitions[transition{s.State, ev.Kind}]
	if !ok {
		b.logger.Debug("No handler for input",
			zap.Int64("chat_id", ev.ChatID),
			zap.Stringer("state", s.State),
			zap.Stringer("kind", ev.Kind),
		)
		return
	}

	next := handler(b, ctx, ev, s)
	b.setState(ev.ChatID, s, next)
}

// setState stores the next state or drops the session when it ends
func (b *Bot) setState(chatID int64, s *Session, next State) {
	if next == StateIdle {
		delete(b.sessions, chatID)
		return
	}
	if next != s.State {
		b.logger.Debug("Conversation state changed",
			zap.Int64("chat_id", chatID),
			zap.Stringer("from", s.State),
			zap.Stringer("to", next),
		)
	}
	s.State = next
	b.sessions[chatID] = s
}

// begin starts a fresh conversation, replacing any active one
func (b *Bot) begin(chatID int64, state State) *Session {
	s := &Session{State: state}
	b.sessions[chatID] = s
	return s
}

// endConversation cancels the active conversation with its acknowledgment
func (b *Bot) endConversation(ctx context.Context, chatID int64, s *Session) {
	delete(b.sessions, chatID)

	if s.State.admin() {
		b.reply(ctx, chatID, textAdminCancelled)
		return
	}
	b.send(ctx, OutboundMessage{ChatID: chatID, Text: textCancelled, RemoveKeyboard: true})
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.adminIDs[userID]
}
