package domain

import "time"

// ListingStatus tracks a listing through its lifecycle. Listings are never
// deleted, only status-transitioned.
type ListingStatus string

const (
	ListingActive  ListingStatus = "ACTIVE"
	ListingSold    ListingStatus = "SOLD"
	ListingExpired ListingStatus = "EXPIRED"
)

// Listing is a farmer's offer of a crop quantity at a price.
type Listing struct {
	ID          string        `json:"id"`
	FarmerID    string        `json:"farmer_id"`
	CropName    string        `json:"crop_name"`
	QuantityKg  float64       `json:"quantity_kg"`
	PricePerKg  float64       `json:"price_per_kg"`
	HarvestDate time.Time     `json:"harvest_date"`
	Images      []string      `json:"images"`
	Status      ListingStatus `json:"status"`
	TrustScore  float64       `json:"trust_score"`
}

// OrderStatus is strictly forward-moving: LISTED → ORDER_RECEIVED →
// TRANSPORT_BOOKED → PICKED_UP → DELIVERED.
type OrderStatus string

const (
	OrderListed          OrderStatus = "LISTED"
	OrderReceived        OrderStatus = "ORDER_RECEIVED"
	OrderTransportBooked OrderStatus = "TRANSPORT_BOOKED"
	OrderPickedUp        OrderStatus = "PICKED_UP"
	OrderDelivered       OrderStatus = "DELIVERED"
)

// orderRank orders statuses for the forward-only check.
var orderRank = map[OrderStatus]int{
	OrderListed:          0,
	OrderReceived:        1,
	OrderTransportBooked: 2,
	OrderPickedUp:        3,
	OrderDelivered:       4,
}

// Advances reports whether moving from s to next goes strictly forward.
func (s OrderStatus) Advances(next OrderStatus) bool {
	from, ok := orderRank[s]
	to, ok2 := orderRank[next]
	return ok && ok2 && to > from
}

// Order is a buyer's commitment against a listing.
type Order struct {
	ID         string      `json:"id"`
	ListingID  string      `json:"listing_id"`
	BuyerID    string      `json:"buyer_id"`
	DriverID   *string     `json:"driver_id"`
	Status     OrderStatus `json:"status"`
	QuantityKg float64     `json:"quantity_kg"`
	TotalPrice float64     `json:"total_price"`
	Timestamp  time.Time   `json:"timestamp"`
}

// TripStatus is forward-only: AVAILABLE → ACCEPTED → ON_THE_WAY → DELIVERED.
type TripStatus string

const (
	TripAvailable TripStatus = "AVAILABLE"
	TripAccepted  TripStatus = "ACCEPTED"
	TripOnTheWay  TripStatus = "ON_THE_WAY"
	TripDelivered TripStatus = "DELIVERED"
)

var tripRank = map[TripStatus]int{
	TripAvailable: 0,
	TripAccepted:  1,
	TripOnTheWay:  2,
	TripDelivered: 3,
}

// Advances reports whether moving from s to next goes strictly forward.
func (s TripStatus) Advances(next TripStatus) bool {
	from, ok := tripRank[s]
	to, ok2 := tripRank[next]
	return ok && ok2 && to > from
}

// ParseTripStatus validates a wire status string.
func ParseTripStatus(s string) (TripStatus, bool) {
	st := TripStatus(s)
	_, ok := tripRank[st]
	return st, ok
}

// Trip is a transport job offered to drivers, claimed at most once.
type Trip struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driver_id"`
	PickupLocation string     `json:"pickup_location"`
	DropLocation   string     `json:"drop_location"`
	WeightKg       float64    `json:"weight_kg"`
	DistanceKm     float64    `json:"distance_km"`
	Earnings       float64    `json:"earnings"`
	Status         TripStatus `json:"status"`
}

// Crop is a live market reference price row. The collection is read-only for
// consumers and refreshed wholesale, never patched.
type Crop struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentPrice float64 `json:"current_price"`
	PriceTrend   float64 `json:"price_trend"` // percentage
}

// PriceAdvice is a transient pricing recommendation; recomputed per request,
// never persisted.
type PriceAdvice struct {
	CurrentPrice   float64 `json:"current_price"`
	Predicted24h   float64 `json:"predicted_24h"`
	Predicted48h   float64 `json:"predicted_48h"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
	ReasonText     string  `json:"reason_text"`
}
