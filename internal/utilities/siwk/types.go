package siwk

import (
	"time"

	"github.com/gobuffalo/nulls"
)

// MessageFields describes one sign-in request. Empty optional strings and
// nil timestamps are treated as absent. A nil Resources slice omits the
// Resources block entirely while an empty, non-nil slice renders the
// header with no entries.
type MessageFields struct {
	Address   string `json:"address"`
	NetworkID string `json:"networkId"`
	Domain    string `json:"domain"`
	URI       string `json:"uri"`
	Version   string `json:"version"`

	Statement      string         `json:"statement,omitempty"`
	Nonce          string         `json:"nonce,omitempty"`
	ExpirationTime *time.Time     `json:"expirationTime,omitempty"`
	IssuedAt       *time.Time     `json:"issuedAt,omitempty"`
	NotBefore      *time.Time     `json:"notBefore,omitempty"`
	RequestID      string         `json:"requestId,omitempty"`
	Resources      []nulls.String `json:"resources"`
	Scheme         string         `json:"scheme,omitempty"`
}

// StringResources converts plain strings into resource entries.
func StringResources(resources ...string) []nulls.String {
	out := make([]nulls.String, 0, len(resources))
	for _, r := range resources {
		out = append(out, nulls.NewString(r))
	}
	return out
}
