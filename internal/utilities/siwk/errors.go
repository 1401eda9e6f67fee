package siwk

import (
	"errors"
	"fmt"
)

// Static errors
var (
	ErrInvalidField             = errors.New("siwk: invalid field")
	ErrMessageTooShort          = errors.New("siwk: message needs at least 6 lines")
	ErrInvalidHeader            = errors.New("siwk: message first line does not end in \" wants you to sign in with your Kaspa account:\"")
	ErrInvalidDomain            = errors.New("siwk: domain in first line of message is empty")
	ErrThirdLineNotEmpty        = errors.New("siwk: third line must be empty")
	ErrInvalidIssuedAt          = errors.New("siwk: Issued At is not a valid ISO8601 timestamp")
	ErrInvalidExpirationTime    = errors.New("siwk: Expiration Time is not a valid ISO8601 timestamp")
	ErrInvalidNotBefore         = errors.New("siwk: Not Before is not a valid ISO8601 timestamp")
	ErrMissingURI               = errors.New("siwk: URI is not specified")
	ErrMissingNetworkID         = errors.New("siwk: Network ID is not specified")
	ErrMissingIssuedAt          = errors.New("siwk: Issued At is not specified")
	ErrIssuedAfterExpiration    = errors.New("siwk: Issued At is after Expiration Time")
	ErrNotBeforeAfterExpiration = errors.New("siwk: Not Before is after Expiration Time")
)

// Dynamic error constructors
func errUnparsableLine(index int) error {
	return fmt.Errorf("siwk: encountered unparsable line at index %d", index)
}

func errUnsupportedVersion(got string) error {
	return fmt.Errorf("siwk: Version value is not supported, expected 1 got %q", got)
}

func errInvalidResource(position int) error {
	return fmt.Errorf("siwk: Resource at position %d is empty", position)
}

// FieldError reports the first field of a MessageFields that failed
// validation. Value holds the provided value when it is relevant to the
// failure.
type FieldError struct {
	Field    string
	Reason   string
	Value    string
	HasValue bool
}

func (e *FieldError) Error() string {
	if e.HasValue {
		return fmt.Sprintf("siwk: invalid field %q: %s (got %q)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("siwk: invalid field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func errMissingField(field string) *FieldError {
	return &FieldError{Field: field, Reason: "must be provided"}
}

func errInvalidFieldValue(field, reason, value string) *FieldError {
	return &FieldError{Field: field, Reason: reason, Value: value, HasValue: true}
}
