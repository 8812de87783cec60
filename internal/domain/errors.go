package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable kind attached to every allocation
// failure. The API layer maps each code to a distinct HTTP status.
type ErrorCode string

const (
	ErrorCodeInvalidInput        ErrorCode = "invalid_input"
	ErrorCodeInfeasible          ErrorCode = "infeasible"
	ErrorCodePriceUnavailable    ErrorCode = "price_unavailable"
	ErrorCodeTimeout             ErrorCode = "timeout"
	ErrorCodeDivisionByZeroPrice ErrorCode = "division_by_zero_price"
)

type AllocationError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e AllocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e AllocationError) Unwrap() error {
	return e.Err
}

func NewInvalidInputError(constraint string) error {
	return AllocationError{
		Code:    ErrorCodeInvalidInput,
		Message: constraint,
	}
}

func NewInfeasibleError(assetCap float64, numAssets int) error {
	return AllocationError{
		Code:    ErrorCodeInfeasible,
		Message: fmt.Sprintf("asset cap %f across %d asset(s) cannot sum to 1 - raise the cap or reduce the asset count", assetCap, numAssets),
	}
}

func NewPriceUnavailableError(symbol string, err error) error {
	return AllocationError{
		Code:    ErrorCodePriceUnavailable,
		Message: fmt.Sprintf("no price for %s", symbol),
		Err:     err,
	}
}

func NewTimeoutError(symbol string, err error) error {
	return AllocationError{
		Code:    ErrorCodeTimeout,
		Message: fmt.Sprintf("price lookup for %s did not complete in time", symbol),
		Err:     err,
	}
}

func NewDivisionByZeroPriceError(symbol string) error {
	return AllocationError{
		Code:    ErrorCodeDivisionByZeroPrice,
		Message: fmt.Sprintf("oracle returned a non-positive price for %s", symbol),
	}
}

// ErrorCodeOf pulls the allocation error code out of a wrapped error
// chain. ok is false for errors that did not originate from allocation.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	allocationErr := AllocationError{}
	if errors.As(err, &allocationErr) {
		return allocationErr.Code, true
	}
	return "", false
}
