package types

import (
	"cosmossdk.io/errors"
)

// x/pool module sentinel errors. The keeper's own failure modes are all
// in this list; errors returned by collaborator keepers and by Params
// address validation are passed through unchanged.
var (
	ErrAlreadyInitialized = errors.Register(ModuleName, 1, "pool already initialized")
	ErrUninitialized      = errors.Register(ModuleName, 2, "pool not initialized")

	ErrNoReserveExistForAsset    = errors.Register(ModuleName, 10, "no reserve exists for asset")
	ErrReserveAlreadyInitialized = errors.Register(ModuleName, 11, "reserve already initialized")
	ErrNoActiveReserve           = errors.Register(ModuleName, 12, "reserve is not active")
	ErrReserveFrozen             = errors.Register(ModuleName, 13, "reserve is frozen")

	ErrInvalidAmount                 = errors.Register(ModuleName, 20, "amount must be positive")
	ErrNotEnoughAvailableUserBalance = errors.Register(ModuleName, 21, "not enough available user balance")
	ErrUserConfigNotExists           = errors.Register(ModuleName, 22, "user configuration does not exist")

	ErrCollateralIsZero                  = errors.Register(ModuleName, 30, "user has no collateral")
	ErrHealthFactorLowerThanLiqThreshold = errors.Register(ModuleName, 31, "health factor below liquidation threshold")
	ErrCollateralNotCoverNewBorrow       = errors.Register(ModuleName, 32, "collateral does not cover new borrow")
	ErrCollateralSameAsBorrow            = errors.Register(ModuleName, 33, "cannot borrow asset pledged as self-collateral")

	ErrBorrowingNotEnabled    = errors.Register(ModuleName, 40, "borrowing not enabled for reserve")
	ErrLiqCapExceeded         = errors.Register(ModuleName, 41, "liquidity cap exceeded")
	ErrUtilizationCapExceeded = errors.Register(ModuleName, 42, "utilization cap exceeded")

	ErrGoodPosition        = errors.Register(ModuleName, 50, "account position is healthy")
	ErrNotEnoughCollateral = errors.Register(ModuleName, 51, "not enough collateral to cover liquidation")

	ErrMathOverflow = errors.Register(ModuleName, 60, "math overflow")

	ErrPaused       = errors.Register(ModuleName, 70, "pool is paused")
	ErrUnauthorized = errors.Register(ModuleName, 71, "caller is not authorized")
)
