package repository

import "errors"

// ErrNotFound is returned when a requested message does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrCorruptStore is returned when the backing file does not hold a JSON array of messages.
var ErrCorruptStore = errors.New("message store is not a valid message list")
