package types

// GenesisState is the exported/imported state of the pool module: the
// global Params plus every initialized reserve. User configurations and
// mirrored balances are not part of genesis — they accumulate from
// operations and are irrelevant to a chain's initial state, the same way
// x/lending's genesis only seeds loans and pools, not per-user indices.
type GenesisState struct {
	Params   Params        `json:"params"`
	Reserves []ReserveData `json:"reserves"`
	// PriceFeeds maps asset identity to price-feed identity.
	PriceFeeds map[string]string `json:"price_feeds"`
}

// DefaultGenesisState returns an uninitialized pool: no admin, default
// IRParams, no reserves.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: Params{
			IRParams: DefaultIRParams(),
		},
		Reserves:   []ReserveData{},
		PriceFeeds: map[string]string{},
	}
}

// Validate checks internal consistency of a genesis state: params must be
// well-formed and reserve ids must be unique.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[uint8]bool, len(gs.Reserves))
	for _, r := range gs.Reserves {
		if seen[r.Id] {
			return ErrReserveAlreadyInitialized
		}
		seen[r.Id] = true
	}
	return nil
}
