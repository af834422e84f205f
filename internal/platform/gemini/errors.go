package gemini

import "errors"

// ErrEmptyEntryText is returned when an empty entry text is supplied to the
// analyzer.
var ErrEmptyEntryText = errors.New("entry text cannot be empty")
