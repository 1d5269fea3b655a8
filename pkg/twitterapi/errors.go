package twitterapi

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when the username lookup yields no account id.
var ErrUserNotFound = errors.New("twitterapi: user not found")

// StatusError reports a non-success HTTP status from the upstream gateway.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("twitterapi: upstream status %d", e.Code)
}
