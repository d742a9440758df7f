package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name.
	ModuleName = "pool"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key.
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key.
	QuerierRoute = ModuleName

	// MemStoreKey defines the in-memory store key.
	MemStoreKey = "mem_pool"
)

// Store key prefixes.
var (
	// ParamsKey stores the module-wide Params (admin, treasury, IRParams, paused flag).
	ParamsKey = []byte{0x01}

	// ReserveListKey stores the ordered sequence of reserve asset identities.
	ReserveListKey = []byte{0x02}

	// ReserveCounterKey stores the next byte-wide reserve id to assign.
	ReserveCounterKey = []byte{0x03}

	// ReservePrefix stores ReserveData, keyed by asset identity.
	ReservePrefix = []byte{0x04}

	// PriceFeedPrefix stores the price-feed identity assigned to an asset.
	PriceFeedPrefix = []byte{0x05}

	// UserConfigPrefix stores a user's UserConfiguration bitmask pair.
	UserConfigPrefix = []byte{0x06}

	// MirroredBalancePrefix stores the pool's authoritative mirror of
	// underlying held by each reserve's s-token, independent of the
	// s-token's self-reported balance.
	MirroredBalancePrefix = []byte{0x07}

	// Per-user s-token and debt-token balances have no key here: the pool
	// core reads them only through types.STokenKeeper /
	// types.DebtTokenKeeper.
)

// GetReserveKey returns the store key for a reserve's data.
func GetReserveKey(asset string) []byte {
	return append(append([]byte{}, ReservePrefix...), []byte(asset)...)
}

// GetPriceFeedKey returns the store key for an asset's price-feed identity.
func GetPriceFeedKey(asset string) []byte {
	return append(append([]byte{}, PriceFeedPrefix...), []byte(asset)...)
}

// GetUserConfigKey returns the store key for a user's configuration.
func GetUserConfigKey(user sdk.AccAddress) []byte {
	return append(append([]byte{}, UserConfigPrefix...), user.Bytes()...)
}

// GetMirroredBalanceKey returns the store key for a reserve's mirrored
// underlying balance.
func GetMirroredBalanceKey(asset string) []byte {
	return append(append([]byte{}, MirroredBalancePrefix...), []byte(asset)...)
}
