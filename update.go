package ferogram

import "encoding/json"

// UpdateKind tags an Update with its concrete variant. Handlers guard on the
// exact kind; there is no partial matching.
type UpdateKind int

const (
	// KindRaw is an opaque update the framework does not model.
	KindRaw UpdateKind = iota
	// KindNewMessage is an incoming message.
	KindNewMessage
	// KindMessageEdited is an edit to an existing message.
	KindMessageEdited
	// KindMessageDeleted is a message-deletion record.
	KindMessageDeleted
	// KindCallbackQuery is a button callback.
	KindCallbackQuery
	// KindInlineQuery is an inline query.
	KindInlineQuery
	// KindInlineSend is a sent inline result.
	KindInlineSend
)

// String returns the kind's wire name.
func (k UpdateKind) String() string {
	switch k {
	case KindNewMessage:
		return "new_message"
	case KindMessageEdited:
		return "message_edited"
	case KindMessageDeleted:
		return "message_deleted"
	case KindCallbackQuery:
		return "callback_query"
	case KindInlineQuery:
		return "inline_query"
	case KindInlineSend:
		return "inline_send"
	default:
		return "raw"
	}
}

// Update is a single already-parsed event delivered by the update source.
// Exactly one payload field matching Kind is set. The dispatch pipeline
// treats updates as immutable values: it inspects and categorizes them but
// never mutates them.
type Update struct {
	Kind UpdateKind

	Message    *Message
	Deletion   *MessageDeletion
	Callback   *CallbackQuery
	Inline     *InlineQuery
	InlineSend *InlineSend
	Raw        json.RawMessage
}

// Sender returns the user that originated the update, or nil when the update
// has no sender (deletions, raw updates).
func (u Update) Sender() *User {
	switch u.Kind {
	case KindNewMessage, KindMessageEdited:
		if u.Message != nil {
			return u.Message.Sender
		}
	case KindCallbackQuery:
		if u.Callback != nil {
			return u.Callback.Sender
		}
	case KindInlineQuery:
		if u.Inline != nil {
			return u.Inline.Sender
		}
	case KindInlineSend:
		if u.InlineSend != nil {
			return u.InlineSend.Sender
		}
	}
	return nil
}

// ChatType classifies the chat an update happened in.
type ChatType string

const (
	ChatPrivate ChatType = "private"
	ChatGroup   ChatType = "group"
	ChatChannel ChatType = "channel"
)

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID       int64    `json:"id"`
	Type     ChatType `json:"type"`
	Title    string   `json:"title,omitempty"`
	Username string   `json:"username,omitempty"`
}

// User identifies a message sender.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Bot      bool   `json:"bot,omitempty"`
}

// MediaKind classifies a message attachment.
type MediaKind string

const (
	MediaPhoto           MediaKind = "photo"
	MediaVideo           MediaKind = "video"
	MediaAudio           MediaKind = "audio"
	MediaDocument        MediaKind = "document"
	MediaSticker         MediaKind = "sticker"
	MediaAnimatedSticker MediaKind = "animated_sticker"
	MediaDice            MediaKind = "dice"
	MediaPoll            MediaKind = "poll"
)

// Media is a message attachment.
type Media struct {
	Kind     MediaKind `json:"kind"`
	MimeType string    `json:"mime_type,omitempty"`
}

// EntityType classifies a span of message text.
type EntityType string

const (
	EntityURL      EntityType = "url"
	EntityTextLink EntityType = "text_link"
	EntityMention  EntityType = "mention"
)

// Entity is an annotated span of message text. For EntityTextLink the target
// lives in URL; for EntityURL the target is the covered text itself.
type Entity struct {
	Type   EntityType `json:"type"`
	Offset int        `json:"offset"`
	Length int        `json:"length"`
	URL    string     `json:"url,omitempty"`
}

// ForwardHeader records the origin of a forwarded message.
type ForwardHeader struct {
	FromID   int64  `json:"from_id,omitempty"`
	FromName string `json:"from_name,omitempty"`
}

// Message is an incoming (or edited) message.
type Message struct {
	ID        int64          `json:"id"`
	Chat      Chat           `json:"chat"`
	Sender    *User          `json:"sender,omitempty"`
	Text      string         `json:"text,omitempty"`
	Entities  []Entity       `json:"entities,omitempty"`
	Media     *Media         `json:"media,omitempty"`
	ReplyToID int64          `json:"reply_to_id,omitempty"`
	Forward   *ForwardHeader `json:"forward,omitempty"`
	Outgoing  bool           `json:"outgoing,omitempty"`
}

// IsReply reports whether the message replies to another message.
func (m *Message) IsReply() bool { return m.ReplyToID != 0 }

// HasMedia reports whether the message carries an attachment of kind k.
func (m *Message) HasMedia(k MediaKind) bool {
	return m.Media != nil && m.Media.Kind == k
}

// URLs returns every URL referenced by the message's entities.
func (m *Message) URLs() []string {
	var urls []string
	runes := []rune(m.Text)
	for _, e := range m.Entities {
		switch e.Type {
		case EntityTextLink:
			if e.URL != "" {
				urls = append(urls, e.URL)
			}
		case EntityURL:
			if e.Offset >= 0 && e.Offset+e.Length <= len(runes) {
				urls = append(urls, string(runes[e.Offset:e.Offset+e.Length]))
			}
		}
	}
	return urls
}

// MessageDeletion records messages removed from a chat.
type MessageDeletion struct {
	ChatID     int64   `json:"chat_id,omitempty"`
	MessageIDs []int64 `json:"message_ids"`
}

// CallbackQuery is a button press on an inline keyboard.
type CallbackQuery struct {
	ID        string `json:"id"`
	Sender    *User  `json:"sender"`
	ChatID    int64  `json:"chat_id,omitempty"`
	MessageID int64  `json:"message_id,omitempty"`
	Data      string `json:"data,omitempty"`
}

// InlineQuery is a query typed after the bot's username in any chat.
type InlineQuery struct {
	ID     string `json:"id"`
	Sender *User  `json:"sender"`
	Query  string `json:"query"`
	Offset string `json:"offset,omitempty"`
}

// InlineSend reports an inline result chosen by a user.
type InlineSend struct {
	ID       string `json:"id"`
	Sender   *User  `json:"sender"`
	Query    string `json:"query"`
	ResultID string `json:"result_id"`
}
