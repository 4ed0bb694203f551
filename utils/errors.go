package utils

import (
	"github.com/pkg/errors"
)

// NewOutOfRangeError is used when an index does not address an element of a collection.
func NewOutOfRangeError(what string, index, length int) error {
	return errors.Errorf("%s index %d out of range [0, %d)", what, index, length)
}
