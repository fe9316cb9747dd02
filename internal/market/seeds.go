package market

import (
	"time"

	"mandi-core/internal/domain"
)

// Demo seed data. Listings and trips are mutable collections; live prices are
// replaced wholesale; orders are served from this fixed set.

func seedListings(now time.Time) []domain.Listing {
	return []domain.Listing{
		{ID: "1", FarmerID: "f1", CropName: "Tomato", QuantityKg: 500, PricePerKg: 25,
			HarvestDate: now, Images: []string{"https://cdn.pixabay.com/photo/2011/03/16/16/01/tomatoes-5356_1280.jpg"},
			Status: domain.ListingActive, TrustScore: 4.5},
		{ID: "2", FarmerID: "f2", CropName: "Onion", QuantityKg: 1200, PricePerKg: 35,
			HarvestDate: now, Images: []string{"https://cdn.pixabay.com/photo/2016/05/04/13/46/onion-1371434_1280.jpg"},
			Status: domain.ListingActive, TrustScore: 4.5},
		{ID: "3", FarmerID: "f3", CropName: "Potato", QuantityKg: 800, PricePerKg: 18,
			HarvestDate: now, Images: []string{"https://cdn.pixabay.com/photo/2016/08/11/08/04/potatoes-1585060_1280.jpg"},
			Status: domain.ListingActive, TrustScore: 4.5},
	}
}

func seedTrips() []domain.Trip {
	return []domain.Trip{
		{ID: "t1", DriverID: "d1", PickupLocation: "Mandya", DropLocation: "Mysuru", WeightKg: 500, DistanceKm: 45, Earnings: 1200, Status: domain.TripAvailable},
		{ID: "t2", DriverID: "d1", PickupLocation: "Tumakuru", DropLocation: "Bengaluru", WeightKg: 1200, DistanceKm: 70, Earnings: 2500, Status: domain.TripAvailable},
		{ID: "t3", DriverID: "d1", PickupLocation: "Hassan", DropLocation: "Mangaluru", WeightKg: 800, DistanceKm: 170, Earnings: 4500, Status: domain.TripAvailable},
		{ID: "t4", DriverID: "d1", PickupLocation: "Chamarajanagar", DropLocation: "Mysuru", WeightKg: 600, DistanceKm: 60, Earnings: 1500, Status: domain.TripAvailable},
		{ID: "t5", DriverID: "d1", PickupLocation: "Kolar", DropLocation: "Chennai", WeightKg: 1500, DistanceKm: 250, Earnings: 8000, Status: domain.TripAvailable},
	}
}

func seedLivePrices() []domain.Crop {
	return []domain.Crop{
		{ID: "c1", Name: "Tomato", Category: "Vegetable", CurrentPrice: 28, PriceTrend: 5.2},
		{ID: "c2", Name: "Onion", Category: "Vegetable", CurrentPrice: 42, PriceTrend: -2.1},
		{ID: "c3", Name: "Potato", Category: "Vegetable", CurrentPrice: 20, PriceTrend: 1.5},
		{ID: "c4", Name: "Green Chili", Category: "Vegetable", CurrentPrice: 65, PriceTrend: 8.4},
	}
}

func seedOrders(now time.Time) []domain.Order {
	d1 := "d1"
	return []domain.Order{
		{ID: "o1", ListingID: "1", BuyerID: "b1", DriverID: &d1, Status: domain.OrderReceived, QuantityKg: 200, TotalPrice: 5000, Timestamp: now},
		{ID: "o2", ListingID: "2", BuyerID: "b2", DriverID: &d1, Status: domain.OrderPickedUp, QuantityKg: 500, TotalPrice: 17500, Timestamp: now},
	}
}

// stockImages fills in a placeholder photo for common crops when a listing is
// created without images.
var stockImages = map[string]string{
	"tomato": "https://cdn.pixabay.com/photo/2011/03/16/16/01/tomatoes-5356_1280.jpg",
	"onion":  "https://cdn.pixabay.com/photo/2016/05/04/13/46/onion-1371434_1280.jpg",
	"potato": "https://cdn.pixabay.com/photo/2016/08/11/08/04/potatoes-1585060_1280.jpg",
}
