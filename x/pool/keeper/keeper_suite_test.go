package keeper_test

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cometbfttypes "github.com/cometbft/cometbft/api/cometbft/types/v2"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/suite"

	"github.com/sharehodl/lending-pool/x/pool/keeper"
	"github.com/sharehodl/lending-pool/x/pool/types"
)

// mockTokenKeeper is a minimal in-memory TokenKeeper.
type mockTokenKeeper struct {
	balances map[string]math.Int
}

func newMockTokenKeeper() *mockTokenKeeper {
	return &mockTokenKeeper{balances: make(map[string]math.Int)}
}

func (m *mockTokenKeeper) key(asset string, addr sdk.AccAddress) string {
	return asset + ":" + addr.String()
}

func (m *mockTokenKeeper) Credit(asset string, addr sdk.AccAddress, amount math.Int) {
	k := m.key(asset, addr)
	cur, ok := m.balances[k]
	if !ok {
		cur = math.ZeroInt()
	}
	m.balances[k] = cur.Add(amount)
}

func (m *mockTokenKeeper) Transfer(ctx sdk.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	fromKey := m.key(asset, from)
	bal, ok := m.balances[fromKey]
	if !ok || bal.LT(amount) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[fromKey] = bal.Sub(amount)
	m.Credit(asset, to, amount)
	return nil
}

func (m *mockTokenKeeper) Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int {
	bal, ok := m.balances[m.key(asset, addr)]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

// mockSTokenKeeper is a minimal in-memory STokenKeeper.
type mockSTokenKeeper struct {
	supply   map[string]math.Int
	balances map[string]math.Int
	token    *mockTokenKeeper
}

func newMockSTokenKeeper(token *mockTokenKeeper) *mockSTokenKeeper {
	return &mockSTokenKeeper{
		supply:   make(map[string]math.Int),
		balances: make(map[string]math.Int),
		token:    token,
	}
}

func (m *mockSTokenKeeper) key(asset string, addr sdk.AccAddress) string {
	return asset + ":" + addr.String()
}

func (m *mockSTokenKeeper) Mint(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error {
	k := m.key(asset, to)
	bal, ok := m.balances[k]
	if !ok {
		bal = math.ZeroInt()
	}
	m.balances[k] = bal.Add(amount)
	sup, ok := m.supply[asset]
	if !ok {
		sup = math.ZeroInt()
	}
	m.supply[asset] = sup.Add(amount)
	return nil
}

func (m *mockSTokenKeeper) Burn(ctx sdk.Context, asset string, from, to sdk.AccAddress, amountSToken, amountUnderlying math.Int) error {
	k := m.key(asset, from)
	bal, ok := m.balances[k]
	if !ok || bal.LT(amountSToken) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[k] = bal.Sub(amountSToken)
	m.supply[asset] = m.supply[asset].Sub(amountSToken)
	return m.token.Transfer(ctx, asset, types.Addr(asset+":stoken"), to, amountUnderlying)
}

func (m *mockSTokenKeeper) TransferUnderlyingTo(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error {
	return m.token.Transfer(ctx, asset, types.Addr(asset+":stoken"), to, amount)
}

func (m *mockSTokenKeeper) Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int {
	bal, ok := m.balances[m.key(asset, addr)]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func (m *mockSTokenKeeper) TotalSupply(ctx sdk.Context, asset string) math.Int {
	sup, ok := m.supply[asset]
	if !ok {
		return math.ZeroInt()
	}
	return sup
}

func (m *mockSTokenKeeper) Decimals(ctx sdk.Context, asset string) uint8 { return 6 }

func (m *mockSTokenKeeper) Transfer(ctx sdk.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	fromKey := m.key(asset, from)
	bal, ok := m.balances[fromKey]
	if !ok || bal.LT(amount) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[fromKey] = bal.Sub(amount)
	toKey := m.key(asset, to)
	toBal, ok := m.balances[toKey]
	if !ok {
		toBal = math.ZeroInt()
	}
	m.balances[toKey] = toBal.Add(amount)
	return nil
}

// mockDebtTokenKeeper is a minimal in-memory DebtTokenKeeper.
type mockDebtTokenKeeper struct {
	supply   map[string]math.Int
	balances map[string]math.Int
}

func newMockDebtTokenKeeper() *mockDebtTokenKeeper {
	return &mockDebtTokenKeeper{
		supply:   make(map[string]math.Int),
		balances: make(map[string]math.Int),
	}
}

func (m *mockDebtTokenKeeper) key(asset string, addr sdk.AccAddress) string {
	return asset + ":" + addr.String()
}

func (m *mockDebtTokenKeeper) Mint(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error {
	k := m.key(asset, to)
	bal, ok := m.balances[k]
	if !ok {
		bal = math.ZeroInt()
	}
	m.balances[k] = bal.Add(amount)
	sup, ok := m.supply[asset]
	if !ok {
		sup = math.ZeroInt()
	}
	m.supply[asset] = sup.Add(amount)
	return nil
}

func (m *mockDebtTokenKeeper) Burn(ctx sdk.Context, asset string, from sdk.AccAddress, amount math.Int) error {
	k := m.key(asset, from)
	bal, ok := m.balances[k]
	if !ok || bal.LT(amount) {
		return sdkerrors.ErrInsufficientFunds
	}
	m.balances[k] = bal.Sub(amount)
	m.supply[asset] = m.supply[asset].Sub(amount)
	return nil
}

func (m *mockDebtTokenKeeper) Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int {
	bal, ok := m.balances[m.key(asset, addr)]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func (m *mockDebtTokenKeeper) TotalSupply(ctx sdk.Context, asset string) math.Int {
	sup, ok := m.supply[asset]
	if !ok {
		return math.ZeroInt()
	}
	return sup
}

// mockOracleKeeper is a minimal in-memory PriceOracleKeeper: a flat price
// per asset, independent of the feed identity passed in.
type mockOracleKeeper struct {
	prices map[string]math.Int
}

func newMockOracleKeeper() *mockOracleKeeper {
	return &mockOracleKeeper{prices: make(map[string]math.Int)}
}

func (m *mockOracleKeeper) SetPrice(asset string, price math.Int) {
	m.prices[asset] = price
}

func (m *mockOracleKeeper) GetPrice(ctx sdk.Context, feed, asset string) (math.Int, error) {
	p, ok := m.prices[asset]
	if !ok {
		return math.ZeroInt(), types.ErrNoActiveReserve
	}
	return p, nil
}

// KeeperTestSuite wires a pool Keeper against an in-memory store and the
// mock collaborators above, the same shape x/inheritance's own suite uses.
type KeeperTestSuite struct {
	suite.Suite
	keeper *keeper.Keeper
	ctx    sdk.Context

	token  *mockTokenKeeper
	sToken *mockSTokenKeeper
	debt   *mockDebtTokenKeeper
	oracle *mockOracleKeeper

	admin    sdk.AccAddress
	treasury sdk.AccAddress
}

func (suite *KeeperTestSuite) SetupTest() {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	suite.Require().NoError(stateStore.LoadLatestVersion())

	header := cometbfttypes.Header{Height: 1, Time: time.Now()}
	suite.ctx = sdk.NewContext(stateStore, header, false, log.NewNopLogger())

	suite.token = newMockTokenKeeper()
	suite.sToken = newMockSTokenKeeper(suite.token)
	suite.debt = newMockDebtTokenKeeper()
	suite.oracle = newMockOracleKeeper()

	suite.keeper = keeper.NewKeeper(nil, storeKey, suite.token, suite.sToken, suite.debt, suite.oracle)

	suite.admin = sdk.AccAddress([]byte("pool-test-admin-addr"))
	suite.treasury = sdk.AccAddress([]byte("pool-test-treasury-a"))

	suite.Require().NoError(suite.keeper.Initialize(suite.ctx, suite.admin.String(), suite.treasury.String(), types.DefaultIRParams()))
}

// initReserve registers an asset reserve with the given collateral/util
// configuration and a flat oracle price. It credits no balances; underlying
// reaches the s-token custody address only through deposits.
func (suite *KeeperTestSuite) initReserve(asset string, cfg types.ReserveConfiguration, price int64) {
	suite.Require().NoError(suite.keeper.InitReserve(
		suite.ctx, suite.admin, asset, asset+":stoken", asset+":debttoken", asset+":feed", cfg,
	))
	suite.oracle.SetPrice(asset, math.NewInt(price))
}

func newAddr(seed string) sdk.AccAddress {
	b := make([]byte, 20)
	copy(b, []byte(seed))
	return sdk.AccAddress(b)
}
