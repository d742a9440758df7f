package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"gopkg.in/yaml.v2"
)

// Params bundles the module's global singletons: admin, treasury,
// IRParams and the paused flag. Persisted as a single JSON blob under
// ParamsKey, the same shape as the sibling x/lending module's Params.
type Params struct {
	Admin    string   `json:"admin" yaml:"admin"`
	Treasury string   `json:"treasury" yaml:"treasury"`
	IRParams IRParams `json:"ir_params" yaml:"ir_params"`
	Paused   bool     `json:"paused" yaml:"paused"`
}

// Validate checks structural well-formedness of Params. Admin/Treasury are
// allowed to be empty only before Initialize has run; once both are set
// they must parse as bech32 addresses.
func (p Params) Validate() error {
	if p.Admin != "" {
		if _, err := sdk.AccAddressFromBech32(p.Admin); err != nil {
			return fmt.Errorf("invalid admin address: %w", err)
		}
	}
	if p.Treasury != "" {
		if _, err := sdk.AccAddressFromBech32(p.Treasury); err != nil {
			return fmt.Errorf("invalid treasury address: %w", err)
		}
	}
	return p.IRParams.Validate()
}

// String implements the Stringer interface, matching the sibling
// modules' Params.String() convention.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}
