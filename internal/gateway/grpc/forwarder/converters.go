package forwarder

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"
	"samudra/internal/entities"
)

var errInvalidResponse = errors.New("invalid forwarder response")

func toProto(req entities.ForwarderRateRequest) (*structpb.Struct, error) {
	fields := map[string]any{
		"forwarder_code":   req.ForwarderCode,
		"origin_area":      req.OriginArea,
		"destination_area": req.DestinationArea,
		"service_type":     req.ServiceType.String(),
		"weight":           req.Weight,
	}
	if req.DistanceKm != nil {
		fields["distance_km"] = *req.DistanceKm
	}
	return structpb.NewStruct(fields)
}

func toDomain(resp *structpb.Struct, forwarderCode string) (*entities.ForwarderRate, error) {
	fields := resp.GetFields()

	baseRate, err := decimalField(fields["base_rate"])
	if err != nil {
		return nil, fmt.Errorf("%w: base_rate: %v", errInvalidResponse, err)
	}
	if baseRate.IsNegative() {
		return nil, fmt.Errorf("%w: negative base_rate", errInvalidResponse)
	}

	rate := &entities.ForwarderRate{
		ForwarderCode: forwarderCode,
		BaseRate:      baseRate.Round(2),
		EstimatedDays: int(fields["estimated_days"].GetNumberValue()),
	}
	if code := fields["forwarder_code"].GetStringValue(); code != "" {
		rate.ForwarderCode = code
	}
	return rate, nil
}

// decimalField принимает сумму строкой ("15000.50") или числом.
func decimalField(v *structpb.Value) (decimal.Decimal, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return decimal.NewFromString(kind.StringValue)
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(kind.NumberValue), nil
	default:
		return decimal.Zero, errors.New("missing or not a number")
	}
}
