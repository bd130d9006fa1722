package ferogram

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// messageOf returns the message payload for message-kind updates.
func messageOf(update Update) *Message {
	switch update.Kind {
	case KindNewMessage, KindMessageEdited:
		return update.Message
	}
	return nil
}

// messagePredicate builds a Filter over message-kind updates; other kinds
// break.
func messagePredicate(fn func(m *Message) bool) Filter {
	return Predicate(func(_ context.Context, _ Client, update Update) bool {
		m := messageOf(update)
		return m != nil && fn(m)
	})
}

// Always passes every update.
func Always() Filter {
	return Predicate(func(context.Context, Client, Update) bool { return true })
}

// Never passes no update.
func Never() Filter {
	return Predicate(func(context.Context, Client, Update) bool { return false })
}

// Text passes messages whose text contains pat.
func Text(pat string) Filter {
	return messagePredicate(func(m *Message) bool {
		return strings.Contains(m.Text, pat)
	})
}

// Regex passes messages whose text matches pattern. A malformed pattern is a
// programmer error and panics at construction.
func Regex(pattern string) Filter {
	re := regexp.MustCompile(pattern)
	return messagePredicate(func(m *Message) bool {
		return re.MatchString(m.Text)
	})
}

// MediaOf passes messages carrying an attachment of the given kind.
func MediaOf(kind MediaKind) Filter {
	return messagePredicate(func(m *Message) bool {
		return m.HasMedia(kind)
	})
}

// Photo passes messages with a photo.
func Photo() Filter { return MediaOf(MediaPhoto) }

// Video passes messages with a video.
func Video() Filter { return MediaOf(MediaVideo) }

// Audio passes messages with an audio track.
func Audio() Filter { return MediaOf(MediaAudio) }

// Document passes messages with a document.
func Document() Filter { return MediaOf(MediaDocument) }

// Sticker passes messages with a sticker.
func Sticker() Filter { return MediaOf(MediaSticker) }

// AnimatedSticker passes messages with an animated sticker.
func AnimatedSticker() Filter { return MediaOf(MediaAnimatedSticker) }

// Dice passes messages with a dice roll.
func Dice() Filter { return MediaOf(MediaDice) }

// Poll passes messages with a poll.
func Poll() Filter { return MediaOf(MediaPoll) }

// ReplyMessage is the resolved target of a reply, injected by Reply and
// ReplyToMedia so endpoints can take it without shadowing the update's own
// message.
type ReplyMessage struct {
	*Message
}

// Reply passes messages that reply to another message. The replied-to
// message is loaded through the client and injected as ReplyMessage; a
// failed load breaks.
func Reply() Filter {
	return TryExtract(resolveReply)
}

// ReplyToMedia passes messages replying to a message that carries media of
// the given kind. The resolved message is injected as ReplyMessage.
func ReplyToMedia(kind MediaKind) Filter {
	return FilterFunc(func(ctx context.Context, client Client, update Update) Flow {
		r, err := resolveReply(ctx, client, update)
		if err != nil || !r.HasMedia(kind) {
			return Break()
		}
		return ContinueWith(r)
	})
}

// ReplyToPhoto passes messages replying to a photo.
func ReplyToPhoto() Filter { return ReplyToMedia(MediaPhoto) }

// ReplyToVideo passes messages replying to a video.
func ReplyToVideo() Filter { return ReplyToMedia(MediaVideo) }

// ReplyToDocument passes messages replying to a document.
func ReplyToDocument() Filter { return ReplyToMedia(MediaDocument) }

func resolveReply(ctx context.Context, client Client, update Update) (ReplyMessage, error) {
	m := messageOf(update)
	if m == nil || !m.IsReply() {
		return ReplyMessage{}, ErrNoReplyTarget
	}
	target, err := client.LoadMessage(ctx, m.Chat.ID, m.ReplyToID)
	if err != nil {
		return ReplyMessage{}, err
	}
	return ReplyMessage{target}, nil
}

// chatFilter passes messages in chats of type want and injects the resolved
// Chat.
func chatFilter(want ChatType) Filter {
	return Extract(func(_ context.Context, _ Client, update Update) (Chat, bool) {
		m := messageOf(update)
		if m == nil || m.Chat.Type != want {
			return Chat{}, false
		}
		return m.Chat, true
	})
}

// Private passes messages sent in a private chat and injects the Chat.
func Private() Filter { return chatFilter(ChatPrivate) }

// Group passes messages sent in a group and injects the Chat.
func Group() Filter { return chatFilter(ChatGroup) }

// Channel passes messages sent in a channel and injects the Chat.
func Channel() Filter { return chatFilter(ChatChannel) }

// ID passes updates whose sender has the given ID.
func ID(id int64) Filter {
	return Predicate(func(_ context.Context, _ Client, update Update) bool {
		sender := update.Sender()
		return sender != nil && sender.ID == id
	})
}

// Username passes updates whose sender has the given username. A leading "@"
// is ignored and the comparison is case-insensitive.
func Username(username string) Filter {
	return Usernames(username)
}

// Usernames passes updates whose sender matches any of the given usernames.
func Usernames(usernames ...string) Filter {
	want := make([]string, 0, len(usernames))
	for _, u := range usernames {
		want = append(want, strings.ToLower(strings.TrimPrefix(u, "@")))
	}
	return Predicate(func(_ context.Context, _ Client, update Update) bool {
		sender := update.Sender()
		if sender == nil || sender.Username == "" {
			return false
		}
		name := strings.ToLower(sender.Username)
		for _, u := range want {
			if u == name {
				return true
			}
		}
		return false
	})
}

var errNotAdministrator = errors.New("sender is not an administrator")

// Administrator passes messages whose sender is an admin or the creator of
// the chat, resolved through the client, and injects the Role.
func Administrator() Filter {
	return TryExtract(func(ctx context.Context, client Client, update Update) (Role, error) {
		m := messageOf(update)
		if m == nil || m.Sender == nil {
			return "", errNotAdministrator
		}
		role, err := client.ParticipantRole(ctx, m.Chat.ID, m.Sender.ID)
		if err != nil {
			return "", err
		}
		if role != RoleAdmin && role != RoleCreator {
			return "", errNotAdministrator
		}
		return role, nil
	})
}

// Forwarded passes messages forwarded from elsewhere.
func Forwarded() Filter {
	return messagePredicate(func(m *Message) bool {
		return m.Forward != nil
	})
}

// urlPattern is a deliberately loose scheme matcher for the HasURL heuristic.
var urlPattern = regexp.MustCompile(`(?i)\bhttps?://\S+`)

// HasURL passes messages referencing at least one URL through their entities
// and injects the URLs found. With scanText set, the message text is also
// scanned heuristically for bare links that carry no entity.
func HasURL(scanText bool) Filter {
	return Extract(func(_ context.Context, _ Client, update Update) ([]string, bool) {
		m := messageOf(update)
		if m == nil {
			return nil, false
		}
		urls := m.URLs()
		if scanText {
			for _, u := range urlPattern.FindAllString(m.Text, -1) {
				if !contains(urls, u) {
					urls = append(urls, u)
				}
			}
		}
		return urls, len(urls) > 0
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Me passes updates originating from the client's own account.
func Me() Filter {
	return Predicate(func(ctx context.Context, client Client, update Update) bool {
		sender := update.Sender()
		if sender == nil {
			return false
		}
		me, err := client.Me(ctx)
		return err == nil && me != nil && me.ID == sender.ID
	})
}
