package ferogram

import "context"

// Role is a participant's standing in a chat, as resolved by the client.
type Role string

const (
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
)

// Client is the capability handle the wrapped client library exposes to the
// dispatch pipeline. It is passed to every filter, middleware and endpoint,
// and must be cheap to copy and safe for concurrent use.
//
// The dispatch core only ever calls it; transport, sessions and
// authentication are the client library's concern.
type Client interface {
	// Me returns the account the client is logged in as. Implementations
	// should cache the result; filters call this on hot paths.
	Me(ctx context.Context) (*User, error)

	// SendMessage sends text to a chat, optionally as a reply.
	// replyTo is zero for a plain send.
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error)

	// LoadMessage loads a single message from a chat, e.g. the target of a
	// reply or the message a callback button is attached to.
	LoadMessage(ctx context.Context, chatID, messageID int64) (*Message, error)

	// ParticipantRole resolves a user's role in a chat.
	ParticipantRole(ctx context.Context, chatID, userID int64) (Role, error)
}
