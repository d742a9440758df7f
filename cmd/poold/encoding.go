package main

import (
	"cosmossdk.io/x/tx/signing"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/x/auth/tx"
	"github.com/cosmos/gogoproto/proto"

	poolmodule "github.com/sharehodl/lending-pool/x/pool"
)

// encodingConfig bundles the codecs the query CLI needs: amino for the
// legacy query endpoints, proto for everything else.
type encodingConfig struct {
	InterfaceRegistry types.InterfaceRegistry
	Codec             codec.Codec
	TxConfig          client.TxConfig
	Amino             *codec.LegacyAmino
}

// makeEncodingConfig builds the codecs this CLI needs to talk to a node,
// registering only the pool module's (non-proto, JSON) types plus the SDK's
// standard interfaces.
func makeEncodingConfig() encodingConfig {
	addressCodec := address.NewBech32Codec(bech32PrefixAccAddr)
	validatorAddressCodec := address.NewBech32Codec(bech32PrefixValAddr)

	signingOptions := signing.Options{
		FileResolver:          proto.HybridResolver,
		AddressCodec:          addressCodec,
		ValidatorAddressCodec: validatorAddressCodec,
	}
	interfaceRegistry, err := types.NewInterfaceRegistryWithOptions(types.InterfaceRegistryOptions{
		ProtoFiles:     proto.HybridResolver,
		SigningOptions: signingOptions,
	})
	if err != nil {
		panic(err)
	}

	protoCodec := codec.NewProtoCodec(interfaceRegistry)
	legacyAmino := codec.NewLegacyAmino()

	signingContext, err := signing.NewContext(signingOptions)
	if err != nil {
		panic(err)
	}

	txConfig, err := tx.NewTxConfigWithOptions(protoCodec, tx.ConfigOptions{
		EnabledSignModes: tx.DefaultSignModes,
		SigningContext:   signingContext,
	})
	if err != nil {
		panic(err)
	}

	std.RegisterLegacyAminoCodec(legacyAmino)
	std.RegisterInterfaces(interfaceRegistry)

	basic := poolmodule.AppModuleBasic{}
	basic.RegisterLegacyAminoCodec(legacyAmino)
	basic.RegisterInterfaces(interfaceRegistry)

	return encodingConfig{
		InterfaceRegistry: interfaceRegistry,
		Codec:             protoCodec,
		TxConfig:          txConfig,
		Amino:             legacyAmino,
	}
}
