package entities

import (
	"github.com/ethereum/go-ethereum/common"
	domainerrors "tripcover.backend/internal/domain/errors"
)

// Network represents a supported payout network
type Network string

const (
	NetworkEthereum  Network = "ethereum"
	NetworkBSC       Network = "bsc"
	NetworkPolygon   Network = "polygon"
	NetworkArbitrum  Network = "arbitrum"
	NetworkAvalanche Network = "avalanche"
)

// evmNetworks are the networks using 0x-prefixed 20-byte hex addresses
var evmNetworks = map[Network]bool{
	NetworkEthereum:  true,
	NetworkBSC:       true,
	NetworkPolygon:   true,
	NetworkArbitrum:  true,
	NetworkAvalanche: true,
}

// ValidateAddress checks an address against the format rules of the given
// network. Unknown networks fail closed.
func ValidateAddress(network Network, address string) error {
	if !evmNetworks[network] {
		return domainerrors.ErrUnsupportedNetwork
	}
	if !common.IsHexAddress(address) {
		return domainerrors.ErrInvalidAddress
	}
	return nil
}
