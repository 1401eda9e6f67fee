package siwk

import (
	"strings"
	"time"

	"github.com/kaspa-auth/siwk/internal/utilities/kaspa"
)

// Message is the structured form of a parsed SIWK message.
type Message struct {
	Raw string

	Scheme         string
	Domain         string
	Address        kaspa.Address
	Statement      string
	URI            string
	Version        string
	NetworkID      string
	Nonce          string
	IssuedAt       time.Time
	ExpirationTime *time.Time
	NotBefore      *time.Time
	RequestID      string
	// Resources is nil when the message has no Resources block.
	Resources []string
}

func parseTimestamp(value string) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		ts, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, false
		}
	}
	return ts, true
}

// ParseMessage reads a message laid out the way Builder renders it. Values
// are taken verbatim: only the separators the builder writes are stripped.
func ParseMessage(raw string) (*Message, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 6 {
		return nil, ErrMessageTooShort
	}

	header := lines[0]
	if !strings.HasSuffix(header, headerSuffix) {
		return nil, ErrInvalidHeader
	}

	msg := &Message{Raw: raw}

	origin := strings.TrimSuffix(header, headerSuffix)
	if scheme, domain, found := strings.Cut(origin, "://"); found && scheme != "" {
		msg.Scheme = scheme
		origin = domain
	}

	if origin == "" {
		return nil, ErrInvalidDomain
	}
	msg.Domain = origin

	address, err := kaspa.ClassifyAddress(lines[1])
	if err != nil {
		return nil, err
	}
	msg.Address = address

	if lines[2] != "" {
		return nil, ErrThirdLineNotEmpty
	}

	startIndex := 3
	if lines[3] != "" && lines[4] == "" {
		msg.Statement = lines[3]
		startIndex = 5
	}

	hasNetworkID := false
	inResources := false
	for i := startIndex; i < len(lines); i++ {
		line := lines[i]

		if inResources {
			if resource, ok := strings.CutPrefix(line, "- "); ok {
				if resource == "" {
					return nil, errInvalidResource(len(msg.Resources))
				}

				msg.Resources = append(msg.Resources, resource)
				continue
			}
			inResources = false
		}

		if line == "Resources:" {
			inResources = true
			msg.Resources = []string{}
			continue
		}

		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, errUnparsableLine(i)
		}

		switch key {
		case "URI":
			msg.URI = value

		case "Version":
			msg.Version = value

		case "Network ID":
			msg.NetworkID = value
			hasNetworkID = true

		case "Nonce":
			msg.Nonce = value

		case "Issued At":
			ts, ok := parseTimestamp(value)
			if !ok {
				return nil, ErrInvalidIssuedAt
			}
			msg.IssuedAt = ts

		case "Expiration Time":
			ts, ok := parseTimestamp(value)
			if !ok {
				return nil, ErrInvalidExpirationTime
			}
			msg.ExpirationTime = &ts

		case "Not Before":
			ts, ok := parseTimestamp(value)
			if !ok {
				return nil, ErrInvalidNotBefore
			}
			msg.NotBefore = &ts

		case "Request ID":
			msg.RequestID = value

		default:
			return nil, errUnparsableLine(i)
		}
	}

	if msg.Version != SupportedVersion {
		return nil, errUnsupportedVersion(msg.Version)
	}

	if msg.IssuedAt.IsZero() {
		return nil, ErrMissingIssuedAt
	}

	if msg.URI == "" {
		return nil, ErrMissingURI
	}

	if !hasNetworkID {
		return nil, ErrMissingNetworkID
	}

	if msg.ExpirationTime != nil {
		if msg.IssuedAt.After(*msg.ExpirationTime) {
			return nil, ErrIssuedAfterExpiration
		}

		if msg.NotBefore != nil && msg.NotBefore.After(*msg.ExpirationTime) {
			return nil, ErrNotBeforeAfterExpiration
		}
	}

	return msg, nil
}

// Fields returns the field record that renders back to m.Raw when the
// message was produced by a Builder from fields free of newline characters.
func (m *Message) Fields() MessageFields {
	issuedAt := m.IssuedAt

	fields := MessageFields{
		Address:        m.Address.String(),
		NetworkID:      m.NetworkID,
		Domain:         m.Domain,
		URI:            m.URI,
		Version:        m.Version,
		Statement:      m.Statement,
		Nonce:          m.Nonce,
		ExpirationTime: m.ExpirationTime,
		IssuedAt:       &issuedAt,
		NotBefore:      m.NotBefore,
		RequestID:      m.RequestID,
		Scheme:         m.Scheme,
	}

	if m.Resources != nil {
		fields.Resources = StringResources(m.Resources...)
	}

	return fields
}
