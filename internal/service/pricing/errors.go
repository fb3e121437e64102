package pricing

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidServiceType    = errors.New("invalid service type")
	ErrInvalidPricingRule    = errors.New("invalid pricing rule")
	ErrUnknownSpecialService = errors.New("unknown special service")

	ErrPricingRuleNotFound  = errors.New("pricing rule not found")
	ErrDiscountNotFound     = errors.New("discount not found")
	ErrConflict             = errors.New("pricing rule already exists")
	ErrRuleCacheMiss        = errors.New("pricing rule cache miss")
	ErrForwarderUnavailable = errors.New("forwarder rate unavailable")
)
