package fare

import (
	"context"
	"strings"

	"github.com/JuniaFaith/duffel-backend/pkg/duffel"
	"github.com/JuniaFaith/duffel-backend/pkg/logger"
)

// PassengerDefaults fills passenger attributes the caller left out so
// order creation is never blocked solely by an optional-field omission.
// It is the single place the defaulting policy lives.
type PassengerDefaults struct {
	Title       string
	GivenName   string
	FamilyName  string
	Gender      string
	BornOn      string
	Email       string
	PhoneNumber string
}

// DefaultPassenger returns the fixed defaults used when nothing is
// configured.
func DefaultPassenger() PassengerDefaults {
	return PassengerDefaults{
		Title:       "mr",
		GivenName:   "Guest",
		FamilyName:  "Traveler",
		Gender:      "m",
		BornOn:      "1990-01-01",
		Email:       "guest@example.com",
		PhoneNumber: "+66800000000",
	}
}

// HoldOffer reserves the selected offer without submitting a payment
// instruction. Provider rejections are returned with the original
// upstream payload attached, not paraphrased.
func (s *Service) HoldOffer(ctx context.Context, req HoldRequest) (*HoldReceipt, error) {
	if req.OfferID == "" {
		return nil, newValidationError("offer_id is required")
	}

	passengerID := req.PassengerID
	if passengerID == "" {
		offer, err := s.client.GetOffer(ctx, req.OfferID)
		if err != nil {
			return nil, err
		}
		if len(offer.Passengers) > 0 {
			passengerID = offer.Passengers[0].ID
		}
		if passengerID == "" {
			return nil, newMissingPassengerError(req.OfferID)
		}
	}

	passenger := s.buildPassenger(passengerID, req)

	order, err := s.client.CreateOrder(ctx, duffel.OrderParams{
		OfferID:    req.OfferID,
		Passengers: []duffel.Passenger{passenger},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("hold order created",
		logger.Field{Key: "order_id", Value: order.ID},
		logger.Field{Key: "offer_id", Value: req.OfferID},
	)

	return &HoldReceipt{
		OrderID:           order.ID,
		BookingReference:  order.BookingReference,
		TotalAmount:       order.TotalAmount,
		TotalCurrency:     order.TotalCurrency,
		PaymentRequiredBy: order.PaymentStatus.PaymentRequiredBy,
	}, nil
}

func (s *Service) buildPassenger(passengerID string, req HoldRequest) duffel.Passenger {
	given, family := splitFullName(req.Name, s.defaults)

	return duffel.Passenger{
		ID:          passengerID,
		Title:       orDefault(req.Title, s.defaults.Title),
		GivenName:   given,
		FamilyName:  family,
		Gender:      orDefault(req.Gender, s.defaults.Gender),
		BornOn:      orDefault(req.BornOn, s.defaults.BornOn),
		Email:       orDefault(req.Email, s.defaults.Email),
		PhoneNumber: orDefault(req.PhoneNumber, s.defaults.PhoneNumber),
	}
}

// splitFullName takes the first whitespace-delimited token as the given
// name and joins the rest as the family name. Missing parts fall back
// to the configured placeholders.
func splitFullName(name string, defaults PassengerDefaults) (string, string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return defaults.GivenName, defaults.FamilyName
	case 1:
		return tokens[0], defaults.FamilyName
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
