package kaspa

import (
	"errors"
	"fmt"
	"strings"
)

// Network identifies which Kaspa network an address belongs to.
type Network int

const (
	Mainnet Network = iota + 1
	Testnet
	Devnet
	Simnet
)

// networks is ordered by classification precedence.
var networks = []Network{Mainnet, Testnet, Devnet, Simnet}

func (n Network) Prefix() string {
	switch n {
	case Mainnet:
		return "kaspa:"
	case Testnet:
		return "kaspatest:"
	case Devnet:
		return "kaspadev:"
	case Simnet:
		return "kaspasim:"
	default:
		return ""
	}
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Devnet:
		return "devnet"
	case Simnet:
		return "simnet"
	default:
		return fmt.Sprintf("Network(%d)", int(n))
	}
}

// ParseNetwork maps a network name such as "testnet" to its Network.
func ParseNetwork(name string) (Network, error) {
	for _, n := range networks {
		if n.String() == name {
			return n, nil
		}
	}

	return 0, fmt.Errorf("kaspa: unknown network %q", name)
}

var ErrInvalidAddressFormat = errors.New("kaspa: invalid address format")

// AddressError is returned when an address carries none of the known
// network prefixes.
type AddressError struct {
	Address string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("kaspa: invalid address format: %q", e.Address)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrInvalidAddressFormat
}

// Address is a raw address string tagged with its network. Only the
// prefix is checked, the remainder is kept verbatim.
type Address struct {
	network Network
	raw     string
}

func (a Address) Network() Network {
	return a.network
}

func (a Address) String() string {
	return a.raw
}

// ClassifyAddress tags raw with the network named by its prefix. Matching
// is case-sensitive and the input is returned unchanged.
func ClassifyAddress(raw string) (Address, error) {
	for _, n := range networks {
		if strings.HasPrefix(raw, n.Prefix()) {
			return Address{network: n, raw: raw}, nil
		}
	}

	return Address{}, &AddressError{Address: raw}
}
