package internal

import (
	"fmt"

	"fundrebalance/internal/domain"
)

// Convert turns sourceAmount into the target currency at the given rate.
// rate is denominated in target-currency units per source-currency unit,
// so converted = sourceAmount * rate. The rate itself comes from whatever
// quote source the caller trusts - this does no I/O.
func Convert(sourceAmount, rate float64) (float64, error) {
	if sourceAmount < 0 {
		return 0, domain.NewInvalidInputError(fmt.Sprintf("source amount must be >= 0, got %f", sourceAmount))
	}
	if rate <= 0 {
		return 0, domain.NewInvalidInputError(fmt.Sprintf("rate must be > 0, got %f", rate))
	}
	return sourceAmount * rate, nil
}
