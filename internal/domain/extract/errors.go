package extract

import "errors"

// ErrSourceUnreadable is returned when the ratings source cannot be opened
// or read. Malformed lines never produce an error.
var ErrSourceUnreadable = errors.New("ratings source unreadable")
