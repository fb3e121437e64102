package shipment

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidServiceType    = errors.New("invalid service type")
	ErrInvalidStatus         = errors.New("invalid shipment status")
	ErrInvalidName           = errors.New("invalid name")

	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrConflict          = errors.New("shipment waybill already exists")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrVersionConflict   = errors.New("shipment was modified concurrently")
)
