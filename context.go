package ferogram

import (
	"context"
	"time"
)

// Context is the per-update handle the dispatcher injects for every
// dispatch. It exposes the client, the update, and a window onto the stream
// of all updates for conversation-style "wait for the next update" flows.
type Context struct {
	client  Client
	update  Update
	updates *broadcaster
}

func newContext(client Client, update Update, updates *broadcaster) *Context {
	return &Context{client: client, update: update, updates: updates}
}

// Client returns the client handle.
func (c *Context) Client() Client { return c.client }

// Update returns the update being dispatched.
func (c *Context) Update() Update { return c.update }

// Chat resolves the chat the update happened in. For callback queries the
// attached message is loaded through the client; updates without a chat
// return ErrNoChat.
func (c *Context) Chat(ctx context.Context) (Chat, error) {
	switch c.update.Kind {
	case KindNewMessage, KindMessageEdited:
		if c.update.Message != nil {
			return c.update.Message.Chat, nil
		}
	case KindCallbackQuery:
		q := c.update.Callback
		if q != nil && q.ChatID != 0 {
			m, err := c.client.LoadMessage(ctx, q.ChatID, q.MessageID)
			if err != nil {
				return Chat{}, err
			}
			return m.Chat, nil
		}
	}
	return Chat{}, ErrNoChat
}

// Reply sends text in reply to the message held by the update. For callback
// queries the attached message is loaded first. Updates without a reply
// target return ErrNoReplyTarget.
func (c *Context) Reply(ctx context.Context, text string) (*Message, error) {
	switch c.update.Kind {
	case KindNewMessage, KindMessageEdited:
		if m := c.update.Message; m != nil {
			return c.client.SendMessage(ctx, m.Chat.ID, text, m.ID)
		}
	case KindCallbackQuery:
		q := c.update.Callback
		if q != nil && q.ChatID != 0 {
			m, err := c.client.LoadMessage(ctx, q.ChatID, q.MessageID)
			if err != nil {
				return nil, err
			}
			return c.client.SendMessage(ctx, m.Chat.ID, text, m.ID)
		}
	}
	return nil, ErrNoReplyTarget
}

// IsMessage reports whether the update is a new or edited message.
func (c *Context) IsMessage() bool {
	return c.update.Kind == KindNewMessage || c.update.Kind == KindMessageEdited
}

// IsEdited reports whether the update is an edited message.
func (c *Context) IsEdited() bool { return c.update.Kind == KindMessageEdited }

// IsCallbackQuery reports whether the update is a callback query.
func (c *Context) IsCallbackQuery() bool { return c.update.Kind == KindCallbackQuery }

// IsInlineQuery reports whether the update is an inline query.
func (c *Context) IsInlineQuery() bool { return c.update.Kind == KindInlineQuery }

// IsInlineSend reports whether the update is a chosen inline result.
func (c *Context) IsInlineSend() bool { return c.update.Kind == KindInlineSend }

// IsRaw reports whether the update is raw.
func (c *Context) IsRaw() bool { return c.update.Kind == KindRaw }

// WaitForUpdate blocks until an update passing filter arrives, the timeout
// expires (ErrWaitTimeout), or ctx is done. A nil filter accepts the next
// update. Dispatch of other updates continues while waiting; only the
// calling handler's task is parked.
func (c *Context) WaitForUpdate(ctx context.Context, filter Filter, timeout time.Duration) (Update, error) {
	if c.updates == nil {
		return Update{}, ErrWaitTimeout
	}

	ch, cancel := c.updates.subscribe(16)
	defer cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return Update{}, ErrWaitTimeout
			}
			if filter == nil || filter.Check(ctx, c.client, u).IsContinue() {
				return u, nil
			}
		case <-timer.C:
			return Update{}, ErrWaitTimeout
		case <-ctx.Done():
			return Update{}, ctx.Err()
		}
	}
}
