package siwk

import (
	"github.com/gofrs/uuid"
	"github.com/sethvargo/go-password/password"
)

// MinNonceLength is the shortest nonce accepted by the builder.
const MinNonceLength = 8

// GenerateNonce returns a random alphanumeric nonce. Lengths below
// MinNonceLength are raised to it.
func GenerateNonce(length int) (string, error) {
	if length < MinNonceLength {
		length = MinNonceLength
	}

	return password.Generate(length, length/4, 0, false, true)
}

// GenerateRequestID returns a random UUIDv4 suitable for the Request ID line.
func GenerateRequestID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
