package fare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuniaFaith/duffel-backend/pkg/duffel"
)

func TestSplitFullName(t *testing.T) {
	defaults := DefaultPassenger()

	tests := []struct {
		name       string
		input      string
		wantGiven  string
		wantFamily string
	}{
		{"given and family", "Jane Doe", "Jane", "Doe"},
		{"multi-part family", "Mary Jane Watson", "Mary", "Jane Watson"},
		{"single name gets placeholder family", "Madonna", "Madonna", defaults.FamilyName},
		{"empty name gets both placeholders", "", defaults.GivenName, defaults.FamilyName},
		{"whitespace only", "   ", defaults.GivenName, defaults.FamilyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			given, family := splitFullName(tt.input, defaults)
			assert.Equal(t, tt.wantGiven, given)
			assert.Equal(t, tt.wantFamily, family)
		})
	}
}

func TestHoldOffer_ResolvesPassengerFromOffer(t *testing.T) {
	client := newStubClient()
	client.offerByID["off_1"] = &duffel.Offer{
		ID:         "off_1",
		Passengers: []duffel.Passenger{{ID: "pas_1", Type: "adult"}},
	}

	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{OfferID: "off_1", Name: "Jane Doe"})
	require.NoError(t, err)

	require.Len(t, client.orderParams, 1)
	params := client.orderParams[0]
	assert.Equal(t, "off_1", params.OfferID)
	require.Len(t, params.Passengers, 1)
	assert.Equal(t, "pas_1", params.Passengers[0].ID)
}

func TestHoldOffer_SuppliedPassengerSkipsLookup(t *testing.T) {
	client := newStubClient()
	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_given",
		Name:        "Jane Doe",
	})
	require.NoError(t, err)

	require.Len(t, client.orderParams, 1)
	assert.Equal(t, "pas_given", client.orderParams[0].Passengers[0].ID)
}

func TestHoldOffer_MissingPassenger(t *testing.T) {
	client := newStubClient()
	client.offerByID["off_1"] = &duffel.Offer{ID: "off_1"} // no passenger stubs

	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{OfferID: "off_1"})

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrorCodeMissingPassenger, appErr.Code)
	assert.Empty(t, client.orderParams, "no order attempt without a passenger id")
}

func TestHoldOffer_RequiresOfferID(t *testing.T) {
	client := newStubClient()
	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{})

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrorCodeValidation, appErr.Code)
}

func TestHoldOffer_NoPaymentInstruction(t *testing.T) {
	client := newStubClient()
	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_1",
	})
	require.NoError(t, err)

	require.Len(t, client.orderParams, 1)
	assert.Nil(t, client.orderParams[0].Payment)
}

func TestHoldOffer_DefaultsFillOmittedFields(t *testing.T) {
	client := newStubClient()
	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_1",
		Name:        "Jane Doe",
		Email:       "jane@example.org",
	})
	require.NoError(t, err)

	defaults := DefaultPassenger()
	passenger := client.orderParams[0].Passengers[0]
	assert.Equal(t, "Jane", passenger.GivenName)
	assert.Equal(t, "Doe", passenger.FamilyName)
	assert.Equal(t, "jane@example.org", passenger.Email, "explicit value wins over default")
	assert.Equal(t, defaults.Title, passenger.Title)
	assert.Equal(t, defaults.Gender, passenger.Gender)
	assert.Equal(t, defaults.BornOn, passenger.BornOn)
	assert.Equal(t, defaults.PhoneNumber, passenger.PhoneNumber)
}

func TestHoldOffer_ProviderRejectionPassedThrough(t *testing.T) {
	providerErr := &duffel.APIError{
		StatusCode: 422,
		Errors:     []duffel.APIErrorDetail{{Code: "offer_no_longer_available", Title: "Offer expired"}},
	}

	client := newStubClient()
	client.orderErr = providerErr

	svc := newTestService(client, Policy{})

	_, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_1",
	})

	var apiErr *duffel.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Same(t, providerErr, apiErr, "upstream payload must not be paraphrased")
}

func TestHoldOffer_ReceiptKeepsProviderOmissionsNil(t *testing.T) {
	client := newStubClient()
	client.order = &duffel.Order{ID: "ord_1"} // provider omitted everything else

	svc := newTestService(client, Policy{})

	receipt, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_1", receipt.OrderID)
	assert.Nil(t, receipt.BookingReference)
	assert.Nil(t, receipt.TotalAmount)
	assert.Nil(t, receipt.TotalCurrency)
	assert.Nil(t, receipt.PaymentRequiredBy)
}

func TestHoldOffer_FullReceipt(t *testing.T) {
	ref := "ABC123"
	amount := "45.00"
	currency := "USD"
	deadline := "2026-09-03T12:00:00Z"

	client := newStubClient()
	client.order = &duffel.Order{
		ID:               "ord_2",
		BookingReference: &ref,
		TotalAmount:      &amount,
		TotalCurrency:    &currency,
		PaymentStatus:    duffel.PaymentStatus{AwaitingPayment: true, PaymentRequiredBy: &deadline},
	}

	svc := newTestService(client, Policy{})

	receipt, err := svc.HoldOffer(context.Background(), HoldRequest{
		OfferID:     "off_1",
		PassengerID: "pas_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_2", receipt.OrderID)
	assert.Equal(t, &ref, receipt.BookingReference)
	assert.Equal(t, &deadline, receipt.PaymentRequiredBy)
}
