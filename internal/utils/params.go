// Package utils provides small helpers for parsing ids from paths and arguments.
// They are independent of domain or business logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by ParseID for anything but a positive integer.
var ErrInvalidID = errors.New("id must be a positive integer")

// ParseID parses a positive record id such as a path parameter.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ParseRemoteID parses a positive catalog id.
func ParseRemoteID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}
