package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// Addr turns a stored collaborator identity (an s-token contract, a
// debt-token contract, a treasury, an admin) into an sdk.AccAddress for use
// with the expected-keeper interfaces. Treasury/admin are ordinary bech32
// accounts; s-token/debt-token identities are opaque module identities that
// never parse as bech32, so this falls back to wrapping the raw bytes.
func Addr(identity string) sdk.AccAddress {
	if addr, err := sdk.AccAddressFromBech32(identity); err == nil {
		return addr
	}
	return sdk.AccAddress(identity)
}
