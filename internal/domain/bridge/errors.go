package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIdentifier is matched (errors.Is) by every lookup failure.
var ErrUnknownIdentifier = errors.New("unknown identifier")

// UnknownIdentifierError reports a slug that is not in the index, along
// with the closest known slugs.
type UnknownIdentifierError struct {
	Slug        string
	Suggestions []string
}

func (e *UnknownIdentifierError) Error() string {
	msg := fmt.Sprintf("slug %q not in ratings index", e.Slug)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// Is makes errors.Is(err, ErrUnknownIdentifier) true.
func (e *UnknownIdentifierError) Is(target error) bool {
	return target == ErrUnknownIdentifier
}
