package pool

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/sharehodl/lending-pool/x/pool/keeper"
	"github.com/sharehodl/lending-pool/x/pool/types"
)

var _ module.AppModuleBasic = AppModuleBasic{}

// AppModuleBasic implements the AppModuleBasic interface for the pool module.
type AppModuleBasic struct{}

// Name returns the pool module's name.
func (AppModuleBasic) Name() string {
	return types.ModuleName
}

// RegisterLegacyAminoCodec registers the pool module's types on the LegacyAmino codec.
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {}

// RegisterInterfaces registers the module's interface types.
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module.
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {}

// DefaultGenesis returns default genesis state as raw bytes for the pool module.
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesisState())
	if err != nil {
		panic(err)
	}
	return bz
}

// ValidateGenesis performs genesis state validation for the pool module.
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return err
	}
	return gs.Validate()
}

// AppModule implements the AppModule interface for the pool module.
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object.
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the pool module's name.
func (am AppModule) Name() string {
	return types.ModuleName
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface.
func (am AppModule) IsAppModule() {}

// BeginBlock executes all ABCI BeginBlock logic for the pool module.
func (am AppModule) BeginBlock(ctx sdk.Context) error {
	return nil
}

// EndBlock refreshes every reserve's accrued indices and rates once per
// block, so a reserve nobody touches in a given block still reflects
// elapsed time the next time it is read.
func (am AppModule) EndBlock(ctx sdk.Context) error {
	for _, asset := range am.keeper.GetReserveList(ctx) {
		if err := am.keeper.Recalculate(ctx, asset); err != nil {
			am.keeper.Logger(ctx).Error("recalculate failed", "asset", asset, "error", err)
		}
	}
	return nil
}

// InitGenesis initializes the pool module's state from a provided genesis state.
func (am AppModule) InitGenesis(ctx sdk.Context, cdc codec.JSONCodec, data json.RawMessage) {
	var gs types.GenesisState
	if err := json.Unmarshal(data, &gs); err != nil {
		panic(err)
	}
	if err := gs.Validate(); err != nil {
		panic(err)
	}

	if err := am.keeper.SetParams(ctx, gs.Params); err != nil {
		panic(err)
	}
	for _, r := range gs.Reserves {
		am.keeper.SetReserve(ctx, r.Asset, r)
	}
	for asset, feed := range gs.PriceFeeds {
		am.keeper.SetPriceFeed(ctx, asset, feed)
	}
}

// ExportGenesis returns the pool module's exported genesis state.
func (am AppModule) ExportGenesis(ctx sdk.Context, cdc codec.JSONCodec) json.RawMessage {
	reserves := make([]types.ReserveData, 0)
	feeds := make(map[string]string)
	for _, asset := range am.keeper.GetReserveList(ctx) {
		if r, ok := am.keeper.GetReserve(ctx, asset); ok {
			reserves = append(reserves, r)
		}
		if feed, ok := am.keeper.GetPriceFeed(ctx, asset); ok {
			feeds[asset] = feed
		}
	}
	gs := types.GenesisState{
		Params:     am.keeper.GetParams(ctx),
		Reserves:   reserves,
		PriceFeeds: feeds,
	}
	bz, err := json.Marshal(gs)
	if err != nil {
		panic(err)
	}
	return bz
}

// ConsensusVersion returns the pool module's consensus version.
func (am AppModule) ConsensusVersion() uint64 {
	return 1
}
