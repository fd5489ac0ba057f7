package valueobjects

import "fmt"

// BaseUnitsPerToken is the STEP token scaling factor: 1 STEP equals
// 1,000,000 base units (6 decimals).
const BaseUnitsPerToken = 1_000_000

// TokenAmount is a STEP token quantity held in base units. Rewards are
// computed and stored in base units; conversion to display units happens
// only at the ledger boundary and in summaries.
type TokenAmount struct {
	baseUnits int64
}

func NewTokenAmount(baseUnits int64) TokenAmount {
	return TokenAmount{baseUnits: baseUnits}
}

// TokenAmountFromSteps computes the reward for a step count at the given
// per-step rate. Both operands are integers, so there is no rounding.
func TokenAmountFromSteps(steps int64, perStep int64) TokenAmount {
	return TokenAmount{baseUnits: steps * perStep}
}

func (a TokenAmount) BaseUnits() int64 {
	return a.baseUnits
}

// Display returns the amount in whole STEP tokens.
func (a TokenAmount) Display() float64 {
	return float64(a.baseUnits) / float64(BaseUnitsPerToken)
}

func (a TokenAmount) IsPositive() bool {
	return a.baseUnits > 0
}

func (a TokenAmount) Add(other TokenAmount) TokenAmount {
	return TokenAmount{baseUnits: a.baseUnits + other.baseUnits}
}

func (a TokenAmount) Equals(other TokenAmount) bool {
	return a.baseUnits == other.baseUnits
}

func (a TokenAmount) String() string {
	return fmt.Sprintf("%g STEP", a.Display())
}
