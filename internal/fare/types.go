package fare

// SearchRequest is the caller's input to the fare search. Destinations
// overrides the configured destination pool when provided.
type SearchRequest struct {
	TravelerName  string   `json:"name"`
	Origin        string   `json:"origin"`
	DepartureDate string   `json:"date"`
	Destinations  []string `json:"destinations,omitempty"`
}

// BestQuote is the single cheapest eligible offer across all searched
// destinations. TotalAmount is the provider's decimal string verbatim.
type BestQuote struct {
	SearchID      string  `json:"search_id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	OfferID       string  `json:"offer_id"`
	PassengerID   *string `json:"passenger_id"`
	TotalAmount   string  `json:"total_amount"`
	TotalCurrency string  `json:"total_currency"`
	HoldEligible  bool    `json:"hold_eligible"`
}

// Diagnostic records a single failed per-destination provider step.
type Diagnostic struct {
	Destination string `json:"destination"`
	Stage       string `json:"stage"`
	Cause       string `json:"cause"`

	poolIndex int
}

const (
	stageCreateOfferRequest = "create_offer_request"
	stageListOffers         = "list_offers"
)

// HoldRequest selects an offer to reserve without payment. PassengerID
// is resolved by fetching the offer when absent; the remaining fields
// override the default passenger attributes.
type HoldRequest struct {
	OfferID     string `json:"offer_id"`
	PassengerID string `json:"passenger_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	BornOn      string `json:"born_on,omitempty"`
	Title       string `json:"title,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// HoldReceipt is the normalized order-creation result. Fields the
// provider omits stay nil, never guessed.
type HoldReceipt struct {
	OrderID           string  `json:"order_id"`
	BookingReference  *string `json:"booking_reference"`
	TotalAmount       *string `json:"total_amount"`
	TotalCurrency     *string `json:"total_currency"`
	PaymentRequiredBy *string `json:"payment_required_by"`
}
