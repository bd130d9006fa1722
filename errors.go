package ferogram

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrWaitTimeout is returned by Context.WaitForUpdate when no matching update
// arrives before the timeout expires.
var ErrWaitTimeout = errors.New("timed out waiting for update")

// ErrNoReplyTarget is returned by Context.Reply when the update carries no
// message to reply to (e.g. an inline query).
var ErrNoReplyTarget = errors.New("update has no reply target")

// ErrUnknownUpdate is returned by ParseUpdate when the raw payload matches no
// known update kind.
var ErrUnknownUpdate = errors.New("unknown update payload")

// ErrNoChat is returned by Context.Chat for updates not tied to a chat.
var ErrNoChat = errors.New("update has no chat")

// MissingDependencyError is returned when an endpoint declares a parameter
// type that is not present in the injector at call time.
type MissingDependencyError struct {
	// Type is the parameter type that could not be resolved.
	Type reflect.Type
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency: %s", e.Type)
}

// IsMissingDependency reports whether err is a MissingDependencyError.
func IsMissingDependency(err error) bool {
	var mde *MissingDependencyError
	return errors.As(err, &mde)
}
