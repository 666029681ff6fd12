package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

type Passenger struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

type PaymentRequirements struct {
	RequiresInstantPayment bool    `json:"requires_instant_payment"`
	PaymentRequiredBy      *string `json:"payment_required_by"`
}

type Offer struct {
	ID                  string              `json:"id"`
	TotalAmount         string              `json:"total_amount"`
	TotalCurrency       string              `json:"total_currency"`
	Passengers          []Passenger         `json:"passengers"`
	PaymentRequirements PaymentRequirements `json:"payment_requirements"`
}

type offerRequestBody struct {
	Data struct {
		Slices []struct {
			Origin        string `json:"origin"`
			Destination   string `json:"destination"`
			DepartureDate string `json:"departure_date"`
		} `json:"slices"`
		CabinClass string `json:"cabin_class"`
	} `json:"data"`
}

type orderBody struct {
	Data struct {
		SelectedOffers []string          `json:"selected_offers"`
		Passengers     []json.RawMessage `json:"passengers"`
		Payments       []json.RawMessage `json:"payments"`
	} `json:"data"`
}

// fares per destination; everything else returns no offers.
var fixtures = map[string]struct {
	amount   string
	currency string
	instant  bool
}{
	"PNH": {"50.00", "USD", false},
	"KUL": {"45.00", "USD", false},
	"SGN": {"38.00", "USD", true},
	"SIN": {"72.00", "USD", false},
}

type store struct {
	mu       sync.Mutex
	seq      int
	requests map[string][]Offer // offer request id -> offers
	offers   map[string]Offer
}

func newStore() *store {
	return &store{
		requests: map[string][]Offer{},
		offers:   map[string]Offer{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s_%06d", prefix, s.seq)
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, title string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"type": "api_error", "code": code, "title": title, "message": title}},
		"meta":   map[string]string{"request_id": "req_mock"},
	})
}

func (s *store) CreateOfferRequestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	var body offerRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Data.Slices) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "Malformed offer request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.nextID("orq")
	offers := []Offer{}

	slice := body.Data.Slices[0]
	if fixture, ok := fixtures[strings.ToUpper(slice.Destination)]; ok {
		offer := Offer{
			ID:            s.nextID("off"),
			TotalAmount:   fixture.amount,
			TotalCurrency: fixture.currency,
			Passengers:    []Passenger{{ID: s.nextID("pas"), Type: "adult"}},
			PaymentRequirements: PaymentRequirements{
				RequiresInstantPayment: fixture.instant,
			},
		}
		offers = append(offers, offer)
		s.offers[offer.ID] = offer
	}
	s.requests[requestID] = offers

	// Half the requests exercise the follow-up list call instead of
	// inlining offers, matching both upstream response shapes.
	if r.URL.Query().Get("return_offers") == "true" && s.seq%2 == 1 {
		writeData(w, http.StatusCreated, map[string]any{"id": requestID, "offers": offers})
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"id": requestID})
}

func (s *store) ListOffersHandler(w http.ResponseWriter, r *http.Request) {
	requestID := r.URL.Query().Get("offer_request_id")

	s.mu.Lock()
	offers, ok := s.requests[requestID]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Offer request not found")
		return
	}
	writeData(w, http.StatusOK, offers)
}

func (s *store) GetOfferHandler(w http.ResponseWriter, r *http.Request) {
	offerID := strings.TrimPrefix(r.URL.Path, "/air/offers/")

	s.mu.Lock()
	offer, ok := s.offers[offerID]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "offer_no_longer_available", "Offer not found or expired")
		return
	}
	writeData(w, http.StatusOK, offer)
}

func (s *store) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	var body orderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Data.SelectedOffers) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "Malformed order request")
		return
	}

	s.mu.Lock()
	offer, ok := s.offers[body.Data.SelectedOffers[0]]
	orderID := s.nextID("ord")
	bookingRef := s.nextID("REF")
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "offer_no_longer_available", "The selected offer is no longer available")
		return
	}

	order := map[string]any{
		"id":                orderID,
		"booking_reference": bookingRef,
		"total_amount":      offer.TotalAmount,
		"total_currency":    offer.TotalCurrency,
	}
	if len(body.Data.Payments) == 0 {
		// No payment instruction: a hold with a payment deadline.
		order["payment_status"] = map[string]any{
			"awaiting_payment":    true,
			"payment_required_by": "2026-12-31T23:59:59Z",
		}
	} else {
		order["payment_status"] = map[string]any{"awaiting_payment": false}
	}

	writeData(w, http.StatusCreated, order)
}
