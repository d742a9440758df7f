package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/suite"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) defaultCollateralConfig() types.ReserveConfiguration {
	return types.ReserveConfiguration{
		Decimals:         6,
		IsActive:         true,
		IsFrozen:         false,
		BorrowingEnabled: true,
		Discount:         types.NewPercentRaw(8_000), // 80%
		LiqBonus:         types.NewPercentRaw(11_000),
		LiqCap:           math.NewInt(1_000_000_000),
		UtilCap:          types.NewPercentRaw(9_000), // 90%
	}
}

func (suite *KeeperTestSuite) TestDepositMintsSTokensAndMarksCollateral() {
	asset := "uusdc"
	suite.initReserve(asset, suite.defaultCollateralConfig(), 1)

	who := newAddr("alice")
	suite.token.Credit(asset, who, math.NewInt(1_000))

	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, who, asset, math.NewInt(1_000)))

	suite.Require().True(suite.sToken.Balance(suite.ctx, asset, who).Equal(math.NewInt(1_000)))

	r, ok := suite.keeper.GetReserve(suite.ctx, asset)
	suite.Require().True(ok)
	uc := suite.keeper.GetUserConfiguration(suite.ctx, who)
	suite.Require().True(uc.IsUsingAsCollateral(r.Id))
}

func (suite *KeeperTestSuite) TestDepositRejectsZeroAmount() {
	asset := "uusdc"
	suite.initReserve(asset, suite.defaultCollateralConfig(), 1)
	who := newAddr("bob")

	err := suite.keeper.Deposit(suite.ctx, who, asset, math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)
}

func (suite *KeeperTestSuite) TestDepositRejectsOverLiqCap() {
	asset := "uusdc"
	cfg := suite.defaultCollateralConfig()
	cfg.LiqCap = math.NewInt(500)
	suite.initReserve(asset, cfg, 1)

	who := newAddr("carol")
	suite.token.Credit(asset, who, math.NewInt(1_000))

	err := suite.keeper.Deposit(suite.ctx, who, asset, math.NewInt(1_000))
	suite.Require().ErrorIs(err, types.ErrLiqCapExceeded)
}

func (suite *KeeperTestSuite) TestWithdrawReturnsUnderlyingAndClearsFlag() {
	asset := "uusdc"
	suite.initReserve(asset, suite.defaultCollateralConfig(), 1)

	who := newAddr("dave")
	suite.token.Credit(asset, who, math.NewInt(1_000))
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, who, asset, math.NewInt(1_000)))

	suite.Require().NoError(suite.keeper.Withdraw(suite.ctx, who, asset, types.MaxInt128(), who))

	suite.Require().True(suite.sToken.Balance(suite.ctx, asset, who).IsZero())
	suite.Require().True(suite.token.Balance(suite.ctx, asset, who).Equal(math.NewInt(1_000)))

	r, _ := suite.keeper.GetReserve(suite.ctx, asset)
	uc := suite.keeper.GetUserConfiguration(suite.ctx, who)
	suite.Require().False(uc.IsUsingAsCollateral(r.Id))
}

func (suite *KeeperTestSuite) TestBorrowRequiresCollateral() {
	collateralAsset := "uusdc"
	borrowAsset := "uatom"
	suite.initReserve(collateralAsset, suite.defaultCollateralConfig(), 1)
	suite.initReserve(borrowAsset, suite.defaultCollateralConfig(), 1)

	who := newAddr("erin")
	err := suite.keeper.Borrow(suite.ctx, who, borrowAsset, math.NewInt(100))
	suite.Require().ErrorIs(err, types.ErrUserConfigNotExists)
}

func (suite *KeeperTestSuite) TestBorrowAgainstDeposit() {
	collateralAsset := "uusdc"
	borrowAsset := "uatom"
	suite.initReserve(collateralAsset, suite.defaultCollateralConfig(), 1_000_000) // 1.0 at 6 decimals
	suite.initReserve(borrowAsset, suite.defaultCollateralConfig(), 1_000_000)

	who := newAddr("frank")
	suite.token.Credit(collateralAsset, who, math.NewInt(1_000))
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, who, collateralAsset, math.NewInt(1_000)))

	// seed borrowable liquidity in the borrow-asset reserve from a second depositor
	lender := newAddr("grace")
	suite.token.Credit(borrowAsset, lender, math.NewInt(1_000))
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, lender, borrowAsset, math.NewInt(1_000)))

	suite.Require().NoError(suite.keeper.Borrow(suite.ctx, who, borrowAsset, math.NewInt(100)))

	suite.Require().True(suite.debt.Balance(suite.ctx, borrowAsset, who).Equal(math.NewInt(100)))
	suite.Require().True(suite.token.Balance(suite.ctx, borrowAsset, who).Equal(math.NewInt(100)))

	r, _ := suite.keeper.GetReserve(suite.ctx, borrowAsset)
	uc := suite.keeper.GetUserConfiguration(suite.ctx, who)
	suite.Require().True(uc.IsBorrowing(r.Id))
}

func (suite *KeeperTestSuite) TestRepayFullClearsBorrowingFlag() {
	collateralAsset := "uusdc"
	borrowAsset := "uatom"
	suite.initReserve(collateralAsset, suite.defaultCollateralConfig(), 1_000_000) // 1.0 at 6 decimals
	suite.initReserve(borrowAsset, suite.defaultCollateralConfig(), 1_000_000)

	who := newAddr("heidi")
	suite.token.Credit(collateralAsset, who, math.NewInt(1_000))
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, who, collateralAsset, math.NewInt(1_000)))

	lender := newAddr("ivan")
	suite.token.Credit(borrowAsset, lender, math.NewInt(1_000))
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, lender, borrowAsset, math.NewInt(1_000)))

	suite.Require().NoError(suite.keeper.Borrow(suite.ctx, who, borrowAsset, math.NewInt(100)))

	// who already holds the 100 borrowed underlying from Borrow; repay needs
	// it transferred back out of their own balance.
	suite.Require().NoError(suite.keeper.Repay(suite.ctx, who, borrowAsset, types.MaxInt128()))

	suite.Require().True(suite.debt.Balance(suite.ctx, borrowAsset, who).IsZero())

	r, _ := suite.keeper.GetReserve(suite.ctx, borrowAsset)
	uc := suite.keeper.GetUserConfiguration(suite.ctx, who)
	suite.Require().False(uc.IsBorrowing(r.Id))
}
