package pricing

import (
	"errors"
	"fmt"
)

// Виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому errors.Is работает и по виду, и по конкретной причине.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrExpired       = errors.New("expired")
	ErrLimitExceeded = errors.New("limit exceeded")
)

var (
	ErrNegativeValue       = fmt.Errorf("%w: value must not be negative", ErrValidation)
	ErrInvalidTierBounds   = fmt.Errorf("%w: invalid tier bounds", ErrValidation)
	ErrTiersNotSorted      = fmt.Errorf("%w: tiers must be sorted by min bound", ErrValidation)
	ErrTiersOverlap        = fmt.Errorf("%w: tiers must not overlap", ErrValidation)
	ErrInvalidTierPrice    = fmt.Errorf("%w: tier price must not be negative", ErrValidation)
	ErrInvalidItem         = fmt.Errorf("%w: invalid item", ErrValidation)
	ErrInvalidDimensions   = fmt.Errorf("%w: invalid dimensions", ErrValidation)
	ErrInvalidService      = fmt.Errorf("%w: invalid special service", ErrValidation)
	ErrInvalidDiscount     = fmt.Errorf("%w: invalid discount", ErrValidation)
	ErrInvalidRate         = fmt.Errorf("%w: rate must be between 0 and 100", ErrValidation)
	ErrMinOrderValueNotMet = fmt.Errorf("%w: order value below discount minimum", ErrValidation)

	ErrFreeServiceNotSelected = fmt.Errorf("%w: free service discount requires the service to be selected", ErrValidation)

	ErrTierNotFound = fmt.Errorf("%w: no tier matches value", ErrNotFound)

	ErrDiscountExpired    = fmt.Errorf("%w: discount outside validity window", ErrExpired)
	ErrDiscountInactive   = fmt.Errorf("%w: discount is inactive", ErrExpired)
	ErrDiscountUsageLimit = fmt.Errorf("%w: discount usage limit reached", ErrLimitExceeded)
)
