package duffel

// Passenger is a passenger record as the provider represents it. On
// offers the provider returns stubs carrying only an id and type; on
// order creation the remaining identity fields are required.
type Passenger struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BornOn      string `json:"born_on,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// PaymentRequirements describes whether an offer can be held without
// paying and until when.
type PaymentRequirements struct {
	RequiresInstantPayment  bool    `json:"requires_instant_payment"`
	PaymentRequiredBy       *string `json:"payment_required_by"`
	PriceGuaranteeExpiresAt *string `json:"price_guarantee_expires_at"`
}

type Airline struct {
	Name     string `json:"name"`
	IATACode string `json:"iata_code"`
}

// Offer is a priced, bookable itinerary for one origin/destination/date.
// TotalAmount is a decimal string and is never re-serialized from a
// parsed float anywhere in this codebase.
type Offer struct {
	ID                  string              `json:"id"`
	TotalAmount         string              `json:"total_amount"`
	TotalCurrency       string              `json:"total_currency"`
	Owner               Airline             `json:"owner"`
	Passengers          []Passenger         `json:"passengers"`
	PaymentRequirements PaymentRequirements `json:"payment_requirements"`
	ExpiresAt           *string             `json:"expires_at"`
}

// OfferRequest is the provider object representing one search criteria
// set. Offers is nil when the provider did not inline offers in the
// create response; the caller then lists them by ID.
type OfferRequest struct {
	ID     string  `json:"id"`
	Offers []Offer `json:"offers"`
}

// Payment is a provider-side payment instruction. Omitting it from an
// order creation request entirely is the provider's contract for a hold.
type Payment struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentStatus struct {
	AwaitingPayment   bool    `json:"awaiting_payment"`
	PaymentRequiredBy *string `json:"payment_required_by"`
}

// Order is the provider's record of a created reservation.
type Order struct {
	ID               string        `json:"id"`
	BookingReference *string       `json:"booking_reference"`
	TotalAmount      *string       `json:"total_amount"`
	TotalCurrency    *string       `json:"total_currency"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
}

// OrderParams are the inputs to CreateOrder. A nil Payment means the
// request body carries no payments block at all.
type OrderParams struct {
	OfferID    string
	Passengers []Passenger
	Payment    *Payment
}

// OfferQuery is one origin/destination/date triple to search.
type OfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	CabinClass    string
}
