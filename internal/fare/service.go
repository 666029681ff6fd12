package fare

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/JuniaFaith/duffel-backend/pkg/duffel"
	"github.com/JuniaFaith/duffel-backend/pkg/idgen"
	"github.com/JuniaFaith/duffel-backend/pkg/logger"
)

// ProviderClient is the slice of the upstream offer API the service
// depends on.
type ProviderClient interface {
	CreateOfferRequest(ctx context.Context, q duffel.OfferQuery) (*duffel.OfferRequest, error)
	ListOffers(ctx context.Context, offerRequestID string) ([]duffel.Offer, error)
	GetOffer(ctx context.Context, offerID string) (*duffel.Offer, error)
	CreateOrder(ctx context.Context, params duffel.OrderParams) (*duffel.Order, error)
}

const (
	defaultFanoutLimit = 3
	maxDiagnostics     = 5
)

type Service struct {
	client      ProviderClient
	policy      Policy
	defaults    PassengerDefaults
	fanoutLimit int
	idgen       idgen.Generator
	logger      logger.Client
}

func NewService(client ProviderClient, policy Policy, defaults PassengerDefaults,
	fanoutLimit int, gen idgen.Generator, logger logger.Client) *Service {
	if fanoutLimit <= 0 {
		fanoutLimit = defaultFanoutLimit
	}
	return &Service{
		client:      client,
		policy:      policy,
		defaults:    defaults,
		fanoutLimit: fanoutLimit,
		idgen:       gen,
		logger:      logger,
	}
}

// candidate is one destination's cheapest ceiling-eligible offer.
type candidate struct {
	destination string
	poolIndex   int
	offer       duffel.Offer
	price       float64
}

// SearchBest fans out one offer request per candidate destination and
// returns the globally cheapest eligible offer. Per-destination provider
// failures are recorded as diagnostics and skipped; only exhausting
// every destination fails the search.
func (s *Service) SearchBest(ctx context.Context, req SearchRequest) (*BestQuote, error) {
	origin := strings.ToUpper(strings.TrimSpace(req.Origin))
	if origin == "" {
		return nil, newValidationError("origin is required")
	}
	if req.DepartureDate == "" {
		return nil, newValidationError("date is required")
	}

	if !s.policy.originAllowed(origin) {
		return nil, newOriginNotAllowedError(origin)
	}

	pool := req.Destinations
	if len(pool) == 0 {
		pool = s.policy.DestinationPool
	}

	destinations := make([]string, 0, len(pool))
	for _, raw := range pool {
		dest := strings.ToUpper(strings.TrimSpace(raw))
		if dest == "" || dest == origin {
			continue
		}
		destinations = append(destinations, dest)
	}

	searchID := s.idgen.SearchID()
	s.logger.Info("starting fare search",
		logger.Field{Key: "search_id", Value: searchID},
		logger.Field{Key: "origin", Value: origin},
		logger.Field{Key: "destinations", Value: len(destinations)},
	)

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		candidates  []candidate
		diagnostics []Diagnostic
	)
	sem := make(chan struct{}, s.fanoutLimit)

	for i, dest := range destinations {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			cand, diag := s.searchDestination(ctx, origin, dest, req.DepartureDate)

			mu.Lock()
			defer mu.Unlock()
			if diag != nil {
				diag.poolIndex = i
				diagnostics = append(diagnostics, *diag)
				return
			}
			if cand != nil {
				cand.poolIndex = i
				candidates = append(candidates, *cand)
			}
		})
	}

	// Selection must only run once every destination has settled.
	wg.Wait()

	best := s.selectBest(candidates)
	if best == nil {
		// Fan-out order is nondeterministic; report diagnostics in pool order.
		sort.Slice(diagnostics, func(i, j int) bool {
			return diagnostics[i].poolIndex < diagnostics[j].poolIndex
		})
		if len(diagnostics) > maxDiagnostics {
			diagnostics = diagnostics[:maxDiagnostics]
		}
		s.logger.Warn("fare search exhausted all destinations",
			logger.Field{Key: "search_id", Value: searchID},
			logger.Field{Key: "diagnostics", Value: len(diagnostics)},
		)
		return nil, newNoEligibleOffersError(diagnostics)
	}

	var passengerID *string
	if len(best.offer.Passengers) > 0 && best.offer.Passengers[0].ID != "" {
		passengerID = &best.offer.Passengers[0].ID
	}

	s.logger.Info("fare search selected winner",
		logger.Field{Key: "search_id", Value: searchID},
		logger.Field{Key: "destination", Value: best.destination},
		logger.Field{Key: "offer_id", Value: best.offer.ID},
		logger.Field{Key: "total_amount", Value: best.offer.TotalAmount},
	)

	return &BestQuote{
		SearchID:      searchID,
		Origin:        origin,
		Destination:   best.destination,
		DepartureDate: req.DepartureDate,
		OfferID:       best.offer.ID,
		PassengerID:   passengerID,
		TotalAmount:   best.offer.TotalAmount,
		TotalCurrency: best.offer.TotalCurrency,
		HoldEligible:  !best.offer.PaymentRequirements.RequiresInstantPayment,
	}, nil
}

// searchDestination runs one destination's create/list/filter steps and
// returns its cheapest eligible offer. A nil, nil return means the
// route produced no offers, which is expected and not diagnosed.
func (s *Service) searchDestination(ctx context.Context, origin, dest, date string) (*candidate, *Diagnostic) {
	offerReq, err := s.client.CreateOfferRequest(ctx, duffel.OfferQuery{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: date,
	})
	if err != nil {
		s.logger.Warn("offer request failed",
			logger.Field{Key: "destination", Value: dest},
			logger.Field{Key: "err", Value: err},
		)
		return nil, &Diagnostic{Destination: dest, Stage: stageCreateOfferRequest, Cause: err.Error()}
	}

	offers := offerReq.Offers
	if offers == nil {
		offers, err = s.client.ListOffers(ctx, offerReq.ID)
		if err != nil {
			s.logger.Warn("listing offers failed",
				logger.Field{Key: "destination", Value: dest},
				logger.Field{Key: "err", Value: err},
			)
			return nil, &Diagnostic{Destination: dest, Stage: stageListOffers, Cause: err.Error()}
		}
	}

	var best *candidate
	for _, offer := range offers {
		price, err := strconv.ParseFloat(offer.TotalAmount, 64)
		if err != nil {
			s.logger.Warn("skipping offer with unparseable amount",
				logger.Field{Key: "offer_id", Value: offer.ID},
				logger.Field{Key: "total_amount", Value: offer.TotalAmount},
			)
			continue
		}
		if s.policy.exceedsCeiling(price, offer.TotalCurrency) {
			continue
		}
		// Strict less-than keeps the provider's first occurrence on ties.
		if best == nil || price < best.price {
			best = &candidate{destination: dest, offer: offer, price: price}
		}
	}
	return best, nil
}

// selectBest picks the global minimum by price, preferring hold-eligible
// candidates when configured, with ties broken by destination-pool
// position. Hold preference never eliminates every result.
func (s *Service) selectBest(candidates []candidate) *candidate {
	pool := candidates
	if s.policy.PreferHoldEligible {
		held := make([]candidate, 0, len(candidates))
		for _, c := range candidates {
			if !c.offer.PaymentRequirements.RequiresInstantPayment {
				held = append(held, c)
			}
		}
		if len(held) > 0 {
			pool = held
		}
	}

	var best *candidate
	for i := range pool {
		c := &pool[i]
		if best == nil || c.price < best.price ||
			(c.price == best.price && c.poolIndex < best.poolIndex) {
			best = c
		}
	}
	return best
}
