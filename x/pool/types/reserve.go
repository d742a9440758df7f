package types

import "cosmossdk.io/math"

// ReserveConfiguration holds the admin-writable, per-asset policy knobs
// that gate what an operation is allowed to do against a reserve.
type ReserveConfiguration struct {
	Decimals         uint8
	IsActive         bool
	IsFrozen         bool
	BorrowingEnabled bool
	// Discount is the percent factor applied to collateral when computing
	// solvency.
	Discount Percent
	// LiqBonus is the percent factor (>= 10_000, i.e. >= 100%) applied to
	// collateral seized per unit of debt repaid during liquidation.
	LiqBonus Percent
	// LiqCap bounds the reserve's mirrored underlying balance.
	LiqCap math.Int
	// UtilCap is the percent ceiling on borrow-side utilization.
	UtilCap Percent
}

// HasLiqThreshold reports whether the reserve counts at all toward
// collateral valuation. This ReserveConfiguration has no separate
// liq_threshold field, so a zero Discount is treated as the disabled case:
// the asset is configured but never contributes to collateral value.
func (c ReserveConfiguration) HasLiqThreshold() bool {
	return !c.Discount.Int().IsZero()
}

// ReserveData is the full per-asset state.
type ReserveData struct {
	// Id is the byte-wide ordinal assigned at InitReserve; stable and
	// unique for the reserve's lifetime.
	Id uint8

	Asset     string // underlying asset identity, also the store key
	SToken    string // s-token collaborator identity
	DebtToken string // debt-token collaborator identity

	LenderAccruedRate   Scaled // monotone, >= 1.0
	BorrowerAccruedRate Scaled // monotone, >= 1.0, >= LenderAccruedRate

	LenderIr   Scaled // rate-scaled per-second nominal rate, from last update
	BorrowerIr Scaled

	LastUpdateTimestamp int64 // seconds since epoch

	Configuration ReserveConfiguration
}

// NewReserveData constructs a freshly initialized reserve: both accrued
// rates start at 1.0, rates at zero until the first Recalculate.
func NewReserveData(id uint8, asset, sToken, debtToken string, cfg ReserveConfiguration, now int64) ReserveData {
	return ReserveData{
		Id:                  id,
		Asset:               asset,
		SToken:              sToken,
		DebtToken:           debtToken,
		LenderAccruedRate:   ScaledOne(),
		BorrowerAccruedRate: ScaledOne(),
		LenderIr:            ScaledZero(),
		BorrowerIr:          ScaledZero(),
		LastUpdateTimestamp: now,
		Configuration:       cfg,
	}
}
