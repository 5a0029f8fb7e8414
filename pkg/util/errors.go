package util

import (
	"github.com/pkg/errors"
)

// ErrStateViolation is the cause of every error a sequence returns. It
// marks a broken precondition on the caller's side; the sequence is left
// exactly as it was.
var ErrStateViolation = errors.New("state violation")

func StateViolation(msg string) error {
	return errors.Wrap(ErrStateViolation, msg)
}

func IsStateViolation(err error) bool {
	return err != nil && errors.Cause(err) == ErrStateViolation
}
