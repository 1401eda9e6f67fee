package siwk

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/kaspa-auth/siwk/internal/utilities/kaspa"
)

func TestParseMessage(t *testing.T) {
	negativeExamples := []struct {
		example string
		error   error
	}{
		{
			example: "",
			error:   ErrMessageTooShort,
		},
		{
			example: "\n\n\n\n",
			error:   ErrMessageTooShort,
		},
		{
			example: "domain.com whatever\n\n\n\n\n\n",
			error:   ErrInvalidHeader,
		},
		{
			example: " wants you to sign in with your Kaspa account:\n\n\n\n\n\n",
			error:   ErrInvalidDomain,
		},
		{
			example: "https:// wants you to sign in with your Kaspa account:\n\n\n\n\n\n",
			error:   ErrInvalidDomain,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\n kaspa:qqabc\n\n\n\n\n",
			error:   &kaspa.AddressError{Address: " kaspa:qqabc"},
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nKASPA:qqabc\n\n\n\n\n",
			error:   &kaspa.AddressError{Address: "KASPA:qqabc"},
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\nURI: https://google.com\n\n\n",
			error:   ErrThirdLineNotEmpty,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nNot Parsable\n",
			error:   errUnparsableLine(5),
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\n\nChain ID: 1\n",
			error:   errUnparsableLine(4),
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion:1\nURI: https://google.com\nIssued At: 2025-01-01T00:00:00Z",
			error:   errUnparsableLine(5),
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://google.com\nIssued At: not-a-timestamp",
			error:   ErrInvalidIssuedAt,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://google.com\nIssued At: 2025-01-01T00:00:00Z\nExpiration Time: not-a-timestamp",
			error:   ErrInvalidExpirationTime,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://google.com\nIssued At: 2025-01-01T00:00:00Z\nNot Before: not-a-timestamp",
			error:   ErrInvalidNotBefore,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 0\nIssued At: 2025-01-01T00:00:00Z\nURI: https://google.com\n",
			error:   errUnsupportedVersion("0"),
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nNetwork ID: mainnet\nURI: https://domain.com\nResources:\n- https://google.com\n",
			error:   ErrMissingIssuedAt,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nNetwork ID: mainnet\nIssued At: 2025-01-01T00:00:00Z\n\n",
			error:   ErrMissingURI,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://domain.com\nIssued At: 2025-01-01T00:00:00Z\n",
			error:   ErrMissingNetworkID,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://domain.com\nNetwork ID: mainnet\nIssued At: 2025-01-02T00:00:00Z\nExpiration Time: 2025-01-01T00:00:00Z\n",
			error:   ErrIssuedAfterExpiration,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://domain.com\nNetwork ID: mainnet\nIssued At: 2025-01-01T00:00:00Z\nExpiration Time: 2025-01-02T00:00:00Z\nNot Before: 2025-01-03T00:00:00Z\n",
			error:   ErrNotBeforeAfterExpiration,
		},
		{
			example: "domain.com wants you to sign in with your Kaspa account:\nkaspa:qqabc\n\nStatement\n\nVersion: 1\nURI: https://domain.com\nNetwork ID: mainnet\nIssued At: 2025-01-01T00:00:00Z\nResources:\n- https://google.com\n- \n",
			error:   errInvalidResource(1),
		},
	}

	for i, example := range negativeExamples {
		t.Run(fmt.Sprintf("negative example %d", i), func(t *testing.T) {
			_, err := ParseMessage(example.example)

			require.NotNil(t, err)
			require.Equal(t, example.error.Error(), err.Error())
		})
	}

	positiveExamples := []string{
		"https://example.com wants you to sign in with your Kaspa account:\nkaspatest:qqabc\n\nSign in to Example App\n\nURI: https://example.com/login\nVersion: 1\nNetwork ID: testnet-10\nNonce: 12345678abc\nIssued At: 2025-01-01T00:00:00.000Z\nRequest ID: abcdef\nResources:\n- https://example.com/a",
		"example.com wants you to sign in with your Kaspa account:\nkaspatest:qqabc\n\n\nURI: https://example.com/login\nVersion: 1\nNetwork ID: testnet-10\nNonce: 12345678abc\nIssued At: 2025-01-01T00:00:00.000Z\nRequest ID: abcdef",
	}

	for i, example := range positiveExamples {
		t.Run(fmt.Sprintf("positive example %d", i), func(t *testing.T) {
			parsed, err := ParseMessage(example)

			require.Nil(t, err)
			require.Equal(t, "example.com", parsed.Domain)
			require.Equal(t, "kaspatest:qqabc", parsed.Address.String())
			require.Equal(t, kaspa.Testnet, parsed.Address.Network())

			if i == 0 {
				require.Equal(t, "https", parsed.Scheme)
				require.Equal(t, "Sign in to Example App", parsed.Statement)
				require.Equal(t, []string{"https://example.com/a"}, parsed.Resources)
			} else {
				require.Equal(t, "", parsed.Scheme)
				require.Equal(t, "", parsed.Statement)
				require.Nil(t, parsed.Resources)
			}

			require.Equal(t, "2025-01-01 00:00:00 +0000 UTC", parsed.IssuedAt.String())
			require.Equal(t, "https://example.com/login", parsed.URI)
			require.Equal(t, "testnet-10", parsed.NetworkID)
			require.Equal(t, "12345678abc", parsed.Nonce)
			require.Equal(t, "abcdef", parsed.RequestID)
			require.Nil(t, parsed.ExpirationTime)
			require.Nil(t, parsed.NotBefore)
		})
	}
}

func TestParseMessageRoundTrip(t *testing.T) {
	builder := NewBuilder(clockwork.NewFakeClockAt(fixedNow))

	examples := []MessageFields{
		minimalFields(),
		{
			Scheme:         "https",
			Domain:         "example.com",
			Address:        "kaspadev:qqabc",
			Statement:      "Sign in to Example App",
			URI:            "https://example.com/login",
			Version:        "1",
			NetworkID:      "devnet",
			Nonce:          "abcdefgh1234",
			ExpirationTime: timePtr(fixedNow.Add(10 * time.Minute)),
			NotBefore:      timePtr(fixedNow),
			RequestID:      "8c1b1c29-2a4e-4e0e-9f8a-0b6b8d5a5a4b",
			Resources:      StringResources("https://example.com/a", "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"),
		},
	}
	examples[0].Resources = StringResources()

	plainResources := minimalFields()
	plainResources.Resources = StringResources("a", "b")

	ipDomain := minimalFields()
	ipDomain.Scheme = "http"
	ipDomain.Domain = "127.0.0.1:8080"
	ipDomain.URI = "http://127.0.0.1:8080/login"

	paddedValues := minimalFields()
	paddedValues.Nonce = "abcdefgh  "
	paddedValues.RequestID = " request "
	paddedValues.Statement = "  Sign in  "

	emptyNetworkID := minimalFields()
	emptyNetworkID.NetworkID = ""

	examples = append(examples, plainResources, ipDomain, paddedValues, emptyNetworkID)

	for i, fields := range examples {
		t.Run(fmt.Sprintf("example %d", i), func(t *testing.T) {
			message, err := builder.Build(fields)
			require.NoError(t, err)

			parsed, err := ParseMessage(message)
			require.NoError(t, err)
			require.Equal(t, message, parsed.Raw)

			rebuilt, err := builder.Build(parsed.Fields())
			require.NoError(t, err)
			require.Equal(t, message, rebuilt)

			require.Equal(t, fields.Domain, parsed.Domain)
			require.Equal(t, fields.Nonce, parsed.Nonce)
			require.Equal(t, fields.NetworkID, parsed.NetworkID)
			require.Equal(t, fields.RequestID, parsed.RequestID)
			require.Equal(t, fields.Statement, parsed.Statement)
			require.Equal(t, len(fields.Resources), len(parsed.Resources))
		})
	}
}

func TestParseMessageAddressError(t *testing.T) {
	_, err := ParseMessage("example.com wants you to sign in with your Kaspa account:\nbitcoin:abc\n\n\nURI: https://example.com\nVersion: 1")
	require.True(t, errors.Is(err, kaspa.ErrInvalidAddressFormat))
}
