package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// A small Duffel stand-in for local runs. Point DUFFEL_API_BASE_URL at
// this server; any bearer token is accepted.
func main() {
	port := "8081"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	store := newStore()

	http.HandleFunc("/air/offer_requests", store.CreateOfferRequestHandler)
	http.HandleFunc("/air/offers", store.ListOffersHandler)
	http.HandleFunc("/air/offers/", store.GetOfferHandler)
	http.HandleFunc("/air/orders", store.CreateOrderHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock Duffel server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
