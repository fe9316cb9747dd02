// Package market owns every shared marketplace collection: listings, trips,
// orders and live reference prices. No other component mutates them. Each
// collection is an observable cell that replays the latest snapshot to late
// subscribers; commands simulate backend latency, then mutate with a
// read-snapshot, compute, publish-atomically sequence.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mandi-core/internal/domain"
	"mandi-core/internal/watch"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Hub is the market data hub.
type Hub struct {
	DB      *gorm.DB      // optional; enables the mutation journal
	Delay   time.Duration // simulated backend round trip
	Timeout time.Duration // bound on each command; zero disables

	listings *watch.Cell[[]domain.Listing]
	trips    *watch.Cell[[]domain.Trip]
	prices   *watch.Cell[[]domain.Crop]
	orders   *watch.Cell[[]domain.Order]
}

// NewHub builds a hub seeded with the demo collections.
func NewHub(db *gorm.DB, delay, timeout time.Duration) *Hub {
	now := time.Now()
	return &Hub{
		DB:       db,
		Delay:    delay,
		Timeout:  timeout,
		listings: watch.NewCell(seedListings(now)),
		trips:    watch.NewCell(seedTrips()),
		prices:   watch.NewCell(seedLivePrices()),
		orders:   watch.NewCell(seedOrders(now)),
	}
}

// ObserveListings returns a replay-latest stream of all listings.
func (h *Hub) ObserveListings(ctx context.Context) <-chan []domain.Listing {
	return h.listings.Subscribe(ctx)
}

// ObserveTrips returns a replay-latest stream of all trips.
func (h *Hub) ObserveTrips(ctx context.Context) <-chan []domain.Trip {
	return h.trips.Subscribe(ctx)
}

// ObserveLivePrices returns a replay-latest stream of market reference prices.
func (h *Hub) ObserveLivePrices(ctx context.Context) <-chan []domain.Crop {
	return h.prices.Subscribe(ctx)
}

// ObserveOrdersForFarmer returns the orders placed against farmerID's produce.
func (h *Hub) ObserveOrdersForFarmer(ctx context.Context, farmerID string) <-chan []domain.Order {
	owned := h.listingIDsOwnedBy(farmerID)
	return h.derive(ctx, func(o domain.Order) bool { return owned[o.ListingID] })
}

// ObserveOrdersForBuyer returns buyerID's own orders.
func (h *Hub) ObserveOrdersForBuyer(ctx context.Context, buyerID string) <-chan []domain.Order {
	return h.derive(ctx, func(o domain.Order) bool { return o.BuyerID == buyerID })
}

// Listings returns the current listings snapshot without subscribing.
func (h *Hub) Listings() []domain.Listing { return h.listings.Get() }

// Trips returns the current trips snapshot without subscribing.
func (h *Hub) Trips() []domain.Trip { return h.trips.Get() }

// LivePrices returns the current reference prices without subscribing.
func (h *Hub) LivePrices() []domain.Crop { return h.prices.Get() }

// Orders returns the current orders snapshot without subscribing.
func (h *Hub) Orders() []domain.Order { return h.orders.Get() }

// CreateListing appends a listing and re-broadcasts the full collection.
// Missing fields are defaulted the way the demo app does (ACTIVE status,
// baseline trust score, stock photo by crop name).
func (h *Hub) CreateListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if l.QuantityKg <= 0 {
		return nil, ErrInvalidQuantity
	}
	if l.PricePerKg <= 0 {
		return nil, ErrInvalidPrice
	}
	ctx, cancel := h.bound(ctx)
	defer cancel()
	if err := h.roundTrip(ctx); err != nil {
		return nil, err
	}

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Status == "" {
		l.Status = domain.ListingActive
	}
	if l.TrustScore == 0 {
		l.TrustScore = 4.5
	}
	if l.HarvestDate.IsZero() {
		l.HarvestDate = time.Now()
	}
	if len(l.Images) == 0 {
		if img, ok := stockImages[strings.ToLower(strings.TrimSpace(l.CropName))]; ok {
			l.Images = []string{img}
		}
	}

	h.listings.Update(func(cur []domain.Listing) []domain.Listing {
		next := make([]domain.Listing, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, l)
	})
	h.journal(ctx, "LISTING_CREATED", l.ID, &l.FarmerID, map[string]interface{}{
		"crop_name":    l.CropName,
		"quantity_kg":  l.QuantityKg,
		"price_per_kg": l.PricePerKg,
	})
	log.Info().Str("listing_id", l.ID).Str("crop", l.CropName).Msg("Listing created")
	return &l, nil
}

// PlaceOrder simulates the backend round trip for an order. Orders are served
// from the fixed demo set, so the collection is not mutated; the command must
// still not block other operations while pending.
func (h *Hub) PlaceOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if o.QuantityKg <= 0 {
		return nil, ErrInvalidQuantity
	}
	ctx, cancel := h.bound(ctx)
	defer cancel()
	if err := h.roundTrip(ctx); err != nil {
		return nil, err
	}

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = domain.OrderListed
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now()
	}
	h.journal(ctx, "ORDER_PLACED", o.ID, &o.BuyerID, map[string]interface{}{
		"listing_id":  o.ListingID,
		"quantity_kg": o.QuantityKg,
		"total_price": o.TotalPrice,
	})
	log.Info().Str("order_id", o.ID).Str("listing_id", o.ListingID).Msg("Order placed")
	return &o, nil
}

// UpdateTripStatus advances the matching trip's status. Statuses only move
// forward; concurrent accept calls on one available trip are serialized so
// exactly one caller observes the AVAILABLE→ACCEPTED transition and the other
// gets the trip already ACCEPTED.
func (h *Hub) UpdateTripStatus(ctx context.Context, tripID string, status domain.TripStatus) (*domain.Trip, error) {
	if _, ok := domain.ParseTripStatus(string(status)); !ok {
		return nil, ErrInvalidStatus
	}
	ctx, cancel := h.bound(ctx)
	defer cancel()
	if err := h.roundTrip(ctx); err != nil {
		return nil, err
	}

	var result *domain.Trip
	h.trips.UpdateIf(func(cur []domain.Trip) ([]domain.Trip, bool) {
		for i := range cur {
			if cur[i].ID != tripID {
				continue
			}
			if !cur[i].Status.Advances(status) {
				t := cur[i]
				result = &t
				return cur, false
			}
			next := make([]domain.Trip, len(cur))
			copy(next, cur)
			next[i].Status = status
			t := next[i]
			result = &t
			return next, true
		}
		return cur, false
	})
	if result == nil {
		return nil, ErrNotFound
	}
	h.journal(ctx, "TRIP_STATUS", tripID, nil, map[string]interface{}{
		"status": string(result.Status),
	})
	return result, nil
}

// UpdateListingPrice replaces only the price of the matching listing, leaving
// every other field and the listing's position unchanged. An unknown id fails
// with ErrNotFound and leaves the collection untouched.
func (h *Hub) UpdateListingPrice(ctx context.Context, listingID string, newPrice float64) (*domain.Listing, error) {
	if newPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	ctx, cancel := h.bound(ctx)
	defer cancel()
	if err := h.roundTrip(ctx); err != nil {
		return nil, err
	}

	var result *domain.Listing
	h.listings.UpdateIf(func(cur []domain.Listing) ([]domain.Listing, bool) {
		for i := range cur {
			if cur[i].ID != listingID {
				continue
			}
			next := make([]domain.Listing, len(cur))
			copy(next, cur)
			next[i].PricePerKg = newPrice
			l := next[i]
			result = &l
			return next, true
		}
		return cur, false
	})
	if result == nil {
		return nil, ErrNotFound
	}
	h.journal(ctx, "PRICE_UPDATED", listingID, nil, map[string]interface{}{
		"price_per_kg": newPrice,
	})
	return result, nil
}

// RefreshLivePrices replaces the reference price collection wholesale.
func (h *Hub) RefreshLivePrices(ctx context.Context, crops []domain.Crop) error {
	ctx, cancel := h.bound(ctx)
	defer cancel()
	if err := h.roundTrip(ctx); err != nil {
		return err
	}
	snapshot := make([]domain.Crop, len(crops))
	copy(snapshot, crops)
	h.prices.Set(snapshot)
	h.journal(ctx, "PRICES_REFRESHED", "live-prices", nil, map[string]interface{}{
		"count": len(snapshot),
	})
	return nil
}

// derive fans a filtered view of the orders cell out to its own stream.
// The stream closes when ctx is cancelled.
func (h *Hub) derive(ctx context.Context, keep func(domain.Order) bool) <-chan []domain.Order {
	src := h.orders.Subscribe(ctx)
	out := make(chan []domain.Order, 16)
	go func() {
		defer close(out)
		for snap := range src {
			filtered := make([]domain.Order, 0, len(snap))
			for _, o := range snap {
				if keep(o) {
					filtered = append(filtered, o)
				}
			}
			select {
			case out <- filtered:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (h *Hub) listingIDsOwnedBy(farmerID string) map[string]bool {
	owned := make(map[string]bool)
	for _, l := range h.listings.Get() {
		if l.FarmerID == farmerID {
			owned[l.ID] = true
		}
	}
	return owned
}

// roundTrip simulates backend latency, honouring cancellation.
func (h *Hub) roundTrip(ctx context.Context) error {
	if h.Delay <= 0 {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		}
		return nil
	}
	t := time.NewTimer(h.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
}

func (h *Hub) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.Timeout)
}
