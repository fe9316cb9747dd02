package market

import (
	"errors"

	"mandi-core/internal/domain"
	"mandi-core/internal/middleware"
	marketsvc "mandi-core/internal/market"
	"mandi-core/internal/pkg/constants"
	"mandi-core/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the market data hub to the presentation layer.
type Handlers struct {
	Hub *marketsvc.Hub
}

// CreateListingRequest body.
type CreateListingRequest struct {
	CropName   string   `json:"crop_name"`
	QuantityKg float64  `json:"quantity_kg"`
	PricePerKg float64  `json:"price_per_kg"`
	Images     []string `json:"images"`
}

// PlaceOrderRequest body.
type PlaceOrderRequest struct {
	ListingID  string  `json:"listing_id"`
	QuantityKg float64 `json:"quantity_kg"`
	TotalPrice float64 `json:"total_price"`
}

// UpdateTripStatusRequest body.
type UpdateTripStatusRequest struct {
	TripID string `json:"trip_id"`
	Status string `json:"status"`
}

// UpdateListingPriceRequest body.
type UpdateListingPriceRequest struct {
	ListingID  string  `json:"listing_id"`
	PricePerKg float64 `json:"price_per_kg"`
}

// GetListings GET /api/v1/market/listings.
func (h *Handlers) GetListings(c *fiber.Ctx) error {
	return response.Success(c, "Listings fetched successfully", fiber.Map{"listings": h.Hub.Listings()}, nil)
}

// GetTrips GET /api/v1/market/trips.
func (h *Handlers) GetTrips(c *fiber.Ctx) error {
	return response.Success(c, "Trips fetched successfully", fiber.Map{"trips": h.Hub.Trips()}, nil)
}

// GetLivePrices GET /api/v1/market/live-prices.
func (h *Handlers) GetLivePrices(c *fiber.Ctx) error {
	return response.Success(c, "Live prices fetched successfully", fiber.Map{"prices": h.Hub.LivePrices()}, nil)
}

// GetOrders GET /api/v1/market/orders — the session role picks the view:
// farmers see orders against their produce, everyone else their own orders.
func (h *Handlers) GetOrders(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	role := middleware.GetUserRole(c)

	orders := h.Hub.Orders()
	filtered := make([]domain.Order, 0, len(orders))
	if role == constants.Farmer {
		owned := make(map[string]bool)
		for _, l := range h.Hub.Listings() {
			if l.FarmerID == userID {
				owned[l.ID] = true
			}
		}
		for _, o := range orders {
			if owned[o.ListingID] {
				filtered = append(filtered, o)
			}
		}
	} else {
		for _, o := range orders {
			if o.BuyerID == userID {
				filtered = append(filtered, o)
			}
		}
	}
	return response.Success(c, "Orders fetched successfully", fiber.Map{"orders": filtered}, nil)
}

// CreateListing POST /api/v1/market/create-listing.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.CropName == "" {
		return response.Error(c, "Missing required field: crop_name", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Hub.CreateListing(c.UserContext(), domain.Listing{
		FarmerID:   middleware.GetUserID(c),
		CropName:   req.CropName,
		QuantityKg: req.QuantityKg,
		PricePerKg: req.PricePerKg,
		Images:     req.Images,
	})
	if err != nil {
		return errorStatus(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", fiber.Map{"listing": listing}, nil)
}

// PlaceOrder POST /api/v1/market/place-order.
func (h *Handlers) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.ListingID == "" {
		return response.Error(c, "Missing required field: listing_id", fiber.StatusBadRequest, nil)
	}

	order, err := h.Hub.PlaceOrder(c.UserContext(), domain.Order{
		ListingID:  req.ListingID,
		BuyerID:    middleware.GetUserID(c),
		Status:     domain.OrderReceived,
		QuantityKg: req.QuantityKg,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return errorStatus(c, err)
	}
	return response.SuccessCreated(c, "Order placed successfully", fiber.Map{"order": order}, nil)
}

// UpdateTripStatus POST /api/v1/market/update-trip-status.
func (h *Handlers) UpdateTripStatus(c *fiber.Ctx) error {
	var req UpdateTripStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.TripID == "" {
		return response.Error(c, "Missing required field: trip_id", fiber.StatusBadRequest, nil)
	}

	trip, err := h.Hub.UpdateTripStatus(c.UserContext(), req.TripID, domain.TripStatus(req.Status))
	if err != nil {
		return errorStatus(c, err)
	}
	return response.Success(c, "Trip status updated", fiber.Map{"trip": trip}, nil)
}

// UpdateListingPrice POST /api/v1/market/update-listing-price.
func (h *Handlers) UpdateListingPrice(c *fiber.Ctx) error {
	var req UpdateListingPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.ListingID == "" {
		return response.Error(c, "Missing required field: listing_id", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Hub.UpdateListingPrice(c.UserContext(), req.ListingID, req.PricePerKg)
	if err != nil {
		return errorStatus(c, err)
	}
	return response.Success(c, "Listing price updated", fiber.Map{"listing": listing}, nil)
}

// errorStatus maps the hub error taxonomy onto HTTP statuses.
func errorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, marketsvc.ErrNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, marketsvc.ErrInvalidQuantity),
		errors.Is(err, marketsvc.ErrInvalidPrice),
		errors.Is(err, marketsvc.ErrInvalidStatus):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, marketsvc.ErrTransport):
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
