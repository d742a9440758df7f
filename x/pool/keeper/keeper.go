package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// Keeper holds the pool core's storage handle and its collaborator
// capability endpoints. It never owns the token/s-token/debt-token/oracle
// contracts — it only holds their stored identities and reaches them
// through the narrow interfaces in types/expected_keepers.go, so there is
// no cyclic ownership between the pool and its collaborators.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey

	token  types.TokenKeeper
	sToken types.STokenKeeper
	debt   types.DebtTokenKeeper
	oracle types.PriceOracleKeeper
}

// NewKeeper constructs a pool Keeper.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	token types.TokenKeeper,
	sToken types.STokenKeeper,
	debt types.DebtTokenKeeper,
	oracle types.PriceOracleKeeper,
) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		token:    token,
		sToken:   sToken,
		debt:     debt,
		oracle:   oracle,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// -----------------------------------------------------------------------
// Params (admin, treasury, IRParams, paused flag)
// -----------------------------------------------------------------------

// GetParams returns the current module params, or an uninitialized default
// if Initialize has never been called.
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.Params{IRParams: types.DefaultIRParams()}
	}
	var p types.Params
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.Params{IRParams: types.DefaultIRParams()}
	}
	return p
}

// SetParams validates and persists params.
func (k Keeper) SetParams(ctx sdk.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(p)
	if err != nil {
		return err
	}
	store.Set(types.ParamsKey, bz)
	return nil
}

// IsInitialized reports whether Initialize has already run.
func (k Keeper) IsInitialized(ctx sdk.Context) bool {
	return ctx.KVStore(k.storeKey).Get(types.ParamsKey) != nil
}

// IsPaused returns the global paused flag.
func (k Keeper) IsPaused(ctx sdk.Context) bool {
	return k.GetParams(ctx).Paused
}

// -----------------------------------------------------------------------
// Reserve list & reserve data
// -----------------------------------------------------------------------

// GetReserveList returns the ordered sequence of asset identities.
func (k Keeper) GetReserveList(ctx sdk.Context) []string {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.ReserveListKey)
	if bz == nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(bz, &list); err != nil {
		return nil
	}
	return list
}

func (k Keeper) setReserveList(ctx sdk.Context, list []string) {
	store := ctx.KVStore(k.storeKey)
	bz, _ := json.Marshal(list)
	store.Set(types.ReserveListKey, bz)
}

// NextReserveId allocates the next byte-wide reserve id and advances the
// counter; ids are unique and stable for a reserve's lifetime.
func (k Keeper) NextReserveId(ctx sdk.Context) (uint8, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.ReserveCounterKey)
	var next uint16
	if bz != nil {
		next = uint16(bz[0])
		if len(bz) > 1 {
			next |= uint16(bz[1]) << 8
		}
	}
	if next > 255 {
		return 0, types.ErrMathOverflow
	}
	store.Set(types.ReserveCounterKey, []byte{byte(next + 1), byte((next + 1) >> 8)})
	return uint8(next), nil
}

// GetReserve loads a reserve's data, or false if no reserve exists for the asset.
func (k Keeper) GetReserve(ctx sdk.Context, asset string) (types.ReserveData, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetReserveKey(asset))
	if bz == nil {
		return types.ReserveData{}, false
	}
	var r storedReserve
	if err := json.Unmarshal(bz, &r); err != nil {
		return types.ReserveData{}, false
	}
	return r.toDomain(), true
}

// SetReserve persists a reserve's data and, if this is the first time the
// asset is seen, appends it to the ordered reserve list.
func (k Keeper) SetReserve(ctx sdk.Context, asset string, r types.ReserveData) {
	store := ctx.KVStore(k.storeKey)
	bz, _ := json.Marshal(newStoredReserve(r))
	key := types.GetReserveKey(asset)
	isNew := store.Get(key) == nil
	store.Set(key, bz)
	if isNew {
		list := k.GetReserveList(ctx)
		list = append(list, asset)
		k.setReserveList(ctx, list)
	}
}

// storedReserve is the JSON shape of ReserveData in the store: math.Int and
// Scaled values are written as decimal strings and Percent values as raw
// int64 integers.
type storedReserve struct {
	Id                  uint8
	Asset               string
	SToken              string
	DebtToken           string
	LenderAccruedRate   string
	BorrowerAccruedRate string
	LenderIr            string
	BorrowerIr          string
	LastUpdateTimestamp int64
	Configuration       storedReserveConfig
}

type storedReserveConfig struct {
	Decimals         uint8
	IsActive         bool
	IsFrozen         bool
	BorrowingEnabled bool
	Discount         int64
	LiqBonus         int64
	LiqCap           string
	UtilCap          int64
}

func newStoredReserve(r types.ReserveData) storedReserve {
	return storedReserve{
		Id:                  r.Id,
		Asset:               r.Asset,
		SToken:              r.SToken,
		DebtToken:           r.DebtToken,
		LenderAccruedRate:   r.LenderAccruedRate.Int().String(),
		BorrowerAccruedRate: r.BorrowerAccruedRate.Int().String(),
		LenderIr:            r.LenderIr.Int().String(),
		BorrowerIr:          r.BorrowerIr.Int().String(),
		LastUpdateTimestamp: r.LastUpdateTimestamp,
		Configuration: storedReserveConfig{
			Decimals:         r.Configuration.Decimals,
			IsActive:         r.Configuration.IsActive,
			IsFrozen:         r.Configuration.IsFrozen,
			BorrowingEnabled: r.Configuration.BorrowingEnabled,
			Discount:         r.Configuration.Discount.Int().Int64(),
			LiqBonus:         r.Configuration.LiqBonus.Int().Int64(),
			LiqCap:           r.Configuration.LiqCap.String(),
			UtilCap:          r.Configuration.UtilCap.Int().Int64(),
		},
	}
}

func (s storedReserve) toDomain() types.ReserveData {
	lar, _ := types.NewScaledFromInt(mustInt(s.LenderAccruedRate))
	bar, _ := types.NewScaledFromInt(mustInt(s.BorrowerAccruedRate))
	lir, _ := types.NewScaledFromInt(mustInt(s.LenderIr))
	bir, _ := types.NewScaledFromInt(mustInt(s.BorrowerIr))
	liqCap, ok := math.NewIntFromString(s.Configuration.LiqCap)
	if !ok {
		liqCap = math.ZeroInt()
	}
	return types.ReserveData{
		Id:                  s.Id,
		Asset:               s.Asset,
		SToken:              s.SToken,
		DebtToken:           s.DebtToken,
		LenderAccruedRate:   lar,
		BorrowerAccruedRate: bar,
		LenderIr:            lir,
		BorrowerIr:          bir,
		LastUpdateTimestamp: s.LastUpdateTimestamp,
		Configuration: types.ReserveConfiguration{
			Decimals:         s.Configuration.Decimals,
			IsActive:         s.Configuration.IsActive,
			IsFrozen:         s.Configuration.IsFrozen,
			BorrowingEnabled: s.Configuration.BorrowingEnabled,
			Discount:         types.NewPercentRaw(s.Configuration.Discount),
			LiqBonus:         types.NewPercentRaw(s.Configuration.LiqBonus),
			LiqCap:           liqCap,
			UtilCap:          types.NewPercentRaw(s.Configuration.UtilCap),
		},
	}
}

func mustInt(s string) math.Int {
	v, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt()
	}
	return v
}

// -----------------------------------------------------------------------
// Price feeds
// -----------------------------------------------------------------------

// GetPriceFeed returns the price-feed identity assigned to asset.
func (k Keeper) GetPriceFeed(ctx sdk.Context, asset string) (string, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetPriceFeedKey(asset))
	if bz == nil {
		return "", false
	}
	return string(bz), true
}

// SetPriceFeed assigns a price-feed identity to asset.
func (k Keeper) SetPriceFeed(ctx sdk.Context, asset, feed string) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetPriceFeedKey(asset), []byte(feed))
}

// -----------------------------------------------------------------------
// User configuration
// -----------------------------------------------------------------------

// GetUserConfiguration loads a user's bitmask pair (zero value if untouched).
func (k Keeper) GetUserConfiguration(ctx sdk.Context, user sdk.AccAddress) types.UserConfiguration {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetUserConfigKey(user))
	if bz == nil {
		return types.UserConfiguration{}
	}
	var uc types.UserConfiguration
	_ = json.Unmarshal(bz, &uc)
	return uc
}

// SetUserConfiguration persists a user's bitmask pair.
func (k Keeper) SetUserConfiguration(ctx sdk.Context, user sdk.AccAddress, uc types.UserConfiguration) error {
	store := ctx.KVStore(k.storeKey)
	bz, err := json.Marshal(uc)
	if err != nil {
		return err
	}
	store.Set(types.GetUserConfigKey(user), bz)
	return nil
}

// Configurator returns a buffered Configurator for user, wired to flush
// back into this keeper's store.
func (k Keeper) Configurator(ctx sdk.Context, user sdk.AccAddress) *types.Configurator {
	current := k.GetUserConfiguration(ctx, user)
	return types.NewConfigurator(current, func(uc types.UserConfiguration) error {
		return k.SetUserConfiguration(ctx, user, uc)
	})
}

// -----------------------------------------------------------------------
// Mirrored underlying balance
// -----------------------------------------------------------------------

// GetMirroredBalance returns the pool's authoritative mirror of underlying
// held by a reserve's s-token, independent of the token's self-reported
// balance.
func (k Keeper) GetMirroredBalance(ctx sdk.Context, asset string) math.Int {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetMirroredBalanceKey(asset))
	if bz == nil {
		return math.ZeroInt()
	}
	v, ok := math.NewIntFromString(string(bz))
	if !ok {
		return math.ZeroInt()
	}
	return v
}

// SetMirroredBalance writes the mirror for asset.
func (k Keeper) SetMirroredBalance(ctx sdk.Context, asset string, v math.Int) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetMirroredBalanceKey(asset), []byte(v.String()))
}
