package models

import "errors"

// ErrCorruptRecord is returned when a stored item does not match its schema.
var ErrCorruptRecord = errors.New("corrupt record")
