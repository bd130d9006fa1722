package ferogram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseUpdate when the input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// UpdateSource delivers the stream of discrete updates the dispatcher
// consumes. The wrapped client library owns the transport; the dispatch core
// only reads tagged Update values from the returned channel, which must be
// closed when the stream ends.
type UpdateSource interface {
	Updates(ctx context.Context) <-chan Update
}

// ChannelSource adapts a plain channel to the UpdateSource interface. Useful
// in tests and for clients that already expose a channel:
//
//	ch := make(chan ferogram.Update)
//	go d.Run(ctx, client, ferogram.ChannelSource(ch))
type ChannelSource <-chan Update

// Updates implements the UpdateSource interface.
func (s ChannelSource) Updates(ctx context.Context) <-chan Update { return s }

// kindRules maps envelope field presence to an update kind, checked in
// order. Classification is a cheap field-existence probe; full decoding only
// happens for the matched variant.
var kindRules = []struct {
	path string
	kind UpdateKind
}{
	{"message", KindNewMessage},
	{"edited_message", KindMessageEdited},
	{"deleted_messages", KindMessageDeleted},
	{"callback_query", KindCallbackQuery},
	{"inline_query", KindInlineQuery},
	{"inline_send", KindInlineSend},
}

// ParseUpdate classifies a raw JSON update envelope by field presence and
// decodes the matched payload. Envelopes matching no rule come back as
// KindRaw with the original bytes attached, so raw handlers still see them;
// non-JSON input fails with ErrInvalidJSON.
func ParseUpdate(raw []byte) (Update, error) {
	if !gjson.ValidBytes(raw) {
		return Update{}, ErrInvalidJSON
	}

	for _, rule := range kindRules {
		payload := gjson.GetBytes(raw, rule.path)
		if !payload.Exists() {
			continue
		}
		update, err := decodePayload(rule.kind, []byte(payload.Raw))
		if err != nil {
			return Update{}, fmt.Errorf("decode %s: %w", rule.kind, err)
		}
		return update, nil
	}

	return Update{Kind: KindRaw, Raw: json.RawMessage(append([]byte(nil), raw...))}, nil
}

func decodePayload(kind UpdateKind, payload []byte) (Update, error) {
	u := Update{Kind: kind}

	switch kind {
	case KindNewMessage, KindMessageEdited:
		u.Message = new(Message)
		return u, json.Unmarshal(payload, u.Message)
	case KindMessageDeleted:
		u.Deletion = new(MessageDeletion)
		return u, json.Unmarshal(payload, u.Deletion)
	case KindCallbackQuery:
		u.Callback = new(CallbackQuery)
		return u, json.Unmarshal(payload, u.Callback)
	case KindInlineQuery:
		u.Inline = new(InlineQuery)
		return u, json.Unmarshal(payload, u.Inline)
	case KindInlineSend:
		u.InlineSend = new(InlineSend)
		return u, json.Unmarshal(payload, u.InlineSend)
	}

	return Update{}, ErrUnknownUpdate
}
