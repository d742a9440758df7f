package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// TestLiquidateAtNPVZeroSeizesDiscountedCollateral reproduces the
// liquidation walkthrough in original_source/pool/src/tests/pool_test.rs's
// test_liquidate: a borrower opens a position exactly at NPV=0, the debt
// reserve's price doubles to push NPV negative, and liquidation must zero
// the debt while seizing debt·liq_bonus of collateral — not a
// price-converted debt value.
func (suite *KeeperTestSuite) TestLiquidateAtNPVZeroSeizesDiscountedCollateral() {
	collateralAsset := "ucollat"
	debtAsset := "udebt"

	collCfg := suite.defaultCollateralConfig()
	collCfg.Decimals = 0
	collCfg.Discount = types.NewPercentRaw(6_000) // 60%
	collCfg.LiqBonus = types.NewPercentRaw(11_000)
	suite.initReserve(collateralAsset, collCfg, 1)

	debtCfg := suite.defaultCollateralConfig()
	debtCfg.Decimals = 0
	debtCfg.LiqBonus = types.NewPercentRaw(11_000)
	suite.initReserve(debtAsset, debtCfg, 1)

	borrower := newAddr("borrower")
	lender := newAddr("lender")
	liquidator := newAddr("liquidator")

	deposit := math.NewInt(1_000_000_000)
	suite.token.Credit(collateralAsset, borrower, deposit)
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, borrower, collateralAsset, deposit))

	suite.token.Credit(debtAsset, lender, deposit)
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, lender, debtAsset, deposit))

	debt := math.NewInt(600_000_000) // discount(60%) of the 1e9 deposit
	suite.Require().NoError(suite.keeper.Borrow(suite.ctx, borrower, debtAsset, debt))

	position, err := suite.keeper.AccountPosition(suite.ctx, borrower)
	suite.Require().NoError(err)
	suite.Require().True(position.NPV.IsZero(), "test configuration: NPV must start at exactly zero")

	suite.oracle.SetPrice(debtAsset, math.NewInt(2))

	// the liquidator repays the borrower's debt out of their own balance
	suite.token.Credit(debtAsset, liquidator, debt)
	suite.Require().NoError(suite.keeper.Liquidate(suite.ctx, liquidator, borrower, false))

	suite.Require().True(suite.debt.Balance(suite.ctx, debtAsset, borrower).IsZero())
	suite.Require().True(suite.token.Balance(suite.ctx, collateralAsset, liquidator).Equal(math.NewInt(660_000_000)))
	suite.Require().True(suite.sToken.Balance(suite.ctx, collateralAsset, borrower).Equal(math.NewInt(340_000_000)))

	r, _ := suite.keeper.GetReserve(suite.ctx, debtAsset)
	uc := suite.keeper.GetUserConfiguration(suite.ctx, borrower)
	suite.Require().False(uc.IsBorrowing(r.Id))
}

// TestLiquidateRejectsHealthyPosition ensures liquidation refuses to touch
// a borrower whose position is still solvent.
func (suite *KeeperTestSuite) TestLiquidateRejectsHealthyPosition() {
	collateralAsset := "ucollat2"
	debtAsset := "udebt2"
	suite.initReserve(collateralAsset, suite.defaultCollateralConfig(), 1)
	suite.initReserve(debtAsset, suite.defaultCollateralConfig(), 1)

	borrower := newAddr("healthy-borrower")
	lender := newAddr("healthy-lender")
	liquidator := newAddr("healthy-liquidator")

	deposit := math.NewInt(1_000_000_000)
	suite.token.Credit(collateralAsset, borrower, deposit)
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, borrower, collateralAsset, deposit))

	suite.token.Credit(debtAsset, lender, deposit)
	suite.Require().NoError(suite.keeper.Deposit(suite.ctx, lender, debtAsset, deposit))

	suite.Require().NoError(suite.keeper.Borrow(suite.ctx, borrower, debtAsset, math.NewInt(100_000_000)))

	err := suite.keeper.Liquidate(suite.ctx, liquidator, borrower, false)
	suite.Require().ErrorIs(err, types.ErrGoodPosition)
}
