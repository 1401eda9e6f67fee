package siwk

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"github.com/kaspa-auth/siwk/internal/utilities/kaspa"
)

const headerSuffix = " wants you to sign in with your Kaspa account:"

// TimestampLayout is ISO 8601 with millisecond precision, always in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SupportedVersion is the only Version value the builder accepts.
const SupportedVersion = "1"

// Builder renders sign-in messages. The clock is only read when
// MessageFields.IssuedAt is nil.
type Builder struct {
	clock clockwork.Clock
}

// NewBuilder returns a Builder reading time from clock, or from the system
// clock when clock is nil.
func NewBuilder(clock clockwork.Clock) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Builder{clock: clock}
}

var defaultBuilder = NewBuilder(nil)

// BuildMessage renders fields using the system clock.
func BuildMessage(fields MessageFields) (string, error) {
	return defaultBuilder.Build(fields)
}

// FormatTimestamp renders t the way it appears in a message.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ValidateFields checks fields in a fixed order and returns the first
// violation. Address failures are returned as *kaspa.AddressError, all
// others as *FieldError.
func ValidateFields(fields MessageFields) (kaspa.Address, error) {
	if fields.Domain == "" {
		return kaspa.Address{}, errMissingField("domain")
	}

	if fields.Nonce != "" && utf8.RuneCountInString(fields.Nonce) < MinNonceLength {
		return kaspa.Address{}, errInvalidFieldValue("nonce", fmt.Sprintf("must be at least %d characters", MinNonceLength), fields.Nonce)
	}

	if fields.URI == "" {
		return kaspa.Address{}, errMissingField("uri")
	}

	if fields.Version != SupportedVersion {
		return kaspa.Address{}, errInvalidFieldValue("version", fmt.Sprintf("must be '%s'", SupportedVersion), fields.Version)
	}

	if strings.Contains(fields.Statement, "\n") {
		return kaspa.Address{}, errInvalidFieldValue("statement", "must not include newline", fields.Statement)
	}

	address, err := kaspa.ClassifyAddress(fields.Address)
	if err != nil {
		return kaspa.Address{}, err
	}

	for _, resource := range fields.Resources {
		if !resource.Valid {
			return kaspa.Address{}, errInvalidFieldValue("resources", "must be a valid string", "null")
		}
		if resource.String == "" {
			return kaspa.Address{}, errInvalidFieldValue("resources", "must be a valid string", resource.String)
		}
	}

	return address, nil
}

// Build validates fields and renders the message text. The output has no
// trailing newline.
func (b *Builder) Build(fields MessageFields) (string, error) {
	message, _, err := b.BuildWithAddress(fields)
	return message, err
}

// BuildWithAddress is Build that also returns the classified address, so
// callers need not validate fields a second time.
func (b *Builder) BuildWithAddress(fields MessageFields) (string, kaspa.Address, error) {
	address, err := ValidateFields(fields)
	if err != nil {
		return "", kaspa.Address{}, err
	}

	origin := fields.Domain
	if fields.Scheme != "" {
		origin = fields.Scheme + "://" + fields.Domain
	}

	statementLine := ""
	if fields.Statement != "" {
		statementLine = fields.Statement + "\n"
	}

	issuedAt := b.clock.Now()
	if fields.IssuedAt != nil {
		issuedAt = *fields.IssuedAt
	}

	lines := []string{
		fmt.Sprintf("%s%s\n%s\n\n%s", origin, headerSuffix, address, statementLine),
		"URI: " + fields.URI,
		"Version: " + fields.Version,
		"Network ID: " + fields.NetworkID,
	}

	if fields.Nonce != "" {
		lines = append(lines, "Nonce: "+fields.Nonce)
	}

	lines = append(lines, "Issued At: "+FormatTimestamp(issuedAt))

	if fields.ExpirationTime != nil {
		lines = append(lines, "Expiration Time: "+FormatTimestamp(*fields.ExpirationTime))
	}
	if fields.NotBefore != nil {
		lines = append(lines, "Not Before: "+FormatTimestamp(*fields.NotBefore))
	}
	if fields.RequestID != "" {
		lines = append(lines, "Request ID: "+fields.RequestID)
	}

	if fields.Resources != nil {
		lines = append(lines, "Resources:")
		for _, resource := range fields.Resources {
			lines = append(lines, "- "+resource.String)
		}
	}

	return strings.Join(lines, "\n"), address, nil
}
