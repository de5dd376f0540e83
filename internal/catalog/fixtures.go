package catalog

import "rental-search/internal/model"

// NewFixtureSource serves the built-in demo catalog. It is used by the
// "fixture" driver and by tests that need a realistic pool.
func NewFixtureSource() *StaticSource {
	return NewStaticSource(FixtureListings())
}

// FixtureListings returns a fresh copy of the demo catalog.
func FixtureListings() []model.Listing {
	out := make([]model.Listing, 0, 30)
	for _, v := range fixtureVehicles {
		out = append(out, v.listing())
	}
	for _, a := range fixtureStays {
		out = append(out, a.listing())
	}
	for _, i := range fixtureItems {
		out = append(out, i.listing())
	}
	return out
}

type fixtureVehicle struct {
	id, title, location, vehicleType, make, model, transmission string
	price, rating                                               float64
	year, seats                                                 int
}

func (f fixtureVehicle) listing() model.Listing {
	return model.Listing{
		ID:          f.id,
		Category:    model.CategoryTransport,
		Title:       f.title,
		Description: f.title + " available for daily rental.",
		BasePrice:   f.price,
		Address:     f.location,
		Images:      []string{"https://images.example.com/" + f.id + ".jpg"},
		Status:      "AVAILABLE",
		Rating:      model.FloatPtr(f.rating),
		Brand:       f.make,
		Model:       f.model,
		Transport: &model.TransportAttrs{
			VehicleType:  f.vehicleType,
			Year:         model.IntPtr(f.year),
			Transmission: f.transmission,
			Seats:        model.IntPtr(f.seats),
		},
	}
}

var fixtureVehicles = []fixtureVehicle{
	{"T001", "Toyota Camry 2018", "Kuala Lumpur", "car", "Toyota", "Camry", "Automatic", 80, 4.7, 2018, 5},
	{"T002", "Honda City 2019", "Kuala Lumpur", "car", "Honda", "City", "Automatic", 70, 4.5, 2019, 5},
	{"T003", "Perodua Myvi 2022", "Kuala Lumpur", "car", "Perodua", "Myvi", "Manual", 50, 4.6, 2022, 5},
	{"T004", "BMW 3 Series 2023", "Kuala Lumpur", "car", "BMW", "3 Series", "Automatic", 200, 4.9, 2023, 5},
	{"T005", "Toyota Vios 2020", "Penang", "car", "Toyota", "Vios", "Automatic", 65, 4.4, 2020, 5},
	{"T006", "Honda PCX 160 2022", "Penang", "motorcycle", "Honda", "PCX 160", "Automatic", 35, 4.7, 2022, 2},
	{"T007", "Toyota Hiace 2021", "Johor Bahru", "van", "Toyota", "Hiace", "Manual", 150, 4.6, 2021, 12},
	{"T008", "Yamaha Y15ZR 2023", "Johor Bahru", "motorcycle", "Yamaha", "Y15ZR", "Manual", 40, 4.8, 2023, 2},
}

type fixtureStay struct {
	id, title, location, propertyType, tier string
	price, rating                           float64
	guests                                  int
}

func (f fixtureStay) listing() model.Listing {
	return model.Listing{
		ID:          f.id,
		Category:    model.CategoryAccommodation,
		Title:       f.title,
		Description: f.title + ".",
		BasePrice:   f.price,
		Address:     f.location,
		Images:      []string{"https://images.example.com/" + f.id + ".jpg"},
		Status:      "AVAILABLE",
		Rating:      model.FloatPtr(f.rating),
		Accommodation: &model.AccommodationAttrs{
			PropertyType: f.propertyType,
			MaxGuests:    model.IntPtr(f.guests),
			Tier:         f.tier,
		},
	}
}

var fixtureStays = []fixtureStay{
	{"A001", "Cozy Apartment in KL", "Kuala Lumpur", "Apartment", "normal", 150, 4.6, 2},
	{"A005", "Budget Hostel in KL Central", "Kuala Lumpur", "Hostel", "low", 40, 4.2, 1},
	{"A006", "Luxury Suite at KLCC", "Kuala Lumpur", "Apartment", "premium", 500, 4.9, 4},
	{"A007", "Family Condo in Bangsar", "Kuala Lumpur", "Apartment", "normal", 280, 4.7, 6},
	{"A002", "Family Home in Penang 1", "Penang", "House", "normal", 150, 4.8, 6},
	{"A003", "Family Home in Penang 2", "Penang", "House", "premium", 300, 4.8, 6},
	{"A004", "Luxury Villa in Penang", "Penang", "Villa", "premium", 450, 5.0, 8},
	{"A008", "Budget Homestay in Georgetown", "Penang", "Homestay", "low", 60, 4.3, 3},
	{"A009", "Modern Studio near Legoland", "Johor Bahru", "Apartment", "normal", 120, 4.5, 2},
	{"A010", "Family House in JB", "Johor Bahru", "House", "normal", 180, 4.6, 5},
}

type fixtureItem struct {
	id, title, description, location, category, condition, brand string
	price, rating                                                float64
}

func (f fixtureItem) listing() model.Listing {
	return model.Listing{
		ID:          f.id,
		Category:    model.CategoryItem,
		Title:       f.title,
		Description: f.description,
		BasePrice:   f.price,
		Address:     f.location,
		Images:      []string{"https://images.example.com/" + f.id + ".jpg"},
		Status:      "AVAILABLE",
		Rating:      model.FloatPtr(f.rating),
		Brand:       f.brand,
		Item: &model.ItemAttrs{
			ItemCategory: f.category,
			Condition:    f.condition,
		},
	}
}

var fixtureItems = []fixtureItem{
	{"I001", "Canon DSLR Camera", "A professional DSLR camera for rent, perfect for events.", "Kuala Lumpur", "Electronics", "Excellent", "Canon", 60, 4.8},
	{"I003", "Sony A7 III Mirrorless Camera", "High-end mirrorless camera for professional photography.", "Kuala Lumpur", "Electronics", "Like New", "Sony", 120, 4.9},
	{"I004", "DJI Mavic 3 Drone", "Professional drone for aerial photography and videography.", "Kuala Lumpur", "Electronics", "Good", "DJI", 150, 4.7},
	{"I005", "MacBook Pro 16-inch", "Powerful laptop for video editing and design work.", "Kuala Lumpur", "Electronics", "Excellent", "Apple", 80, 4.8},
	{"I002", "Power Drill", "Heavy duty power drill for DIY projects.", "Kuala Lumpur", "Tools", "Good", "Bosch", 20, 4.3},
	{"I006", "Complete Tool Set", "Comprehensive tool set with 200+ pieces for any project.", "Kuala Lumpur", "Tools", "New", "", 45, 4.6},
	{"I007", "Pressure Washer", "High-pressure washer for car and home cleaning.", "Penang", "Tools", "Good", "Karcher", 35, 4.4},
	{"I008", "Camping Tent (4-Person)", "Waterproof tent suitable for 4 people, perfect for camping.", "Kuala Lumpur", "Sports", "Good", "", 30, 4.5},
	{"I009", "Mountain Bike", "Quality mountain bike for trail riding and adventures.", "Penang", "Sports", "Excellent", "Giant", 40, 4.6},
	{"I010", "Snorkeling Set", "Complete snorkeling gear including mask, fins, and snorkel.", "Penang", "Sports", "New", "", 25, 4.7},
	{"I011", "PA System with Speakers", "Professional sound system for events and parties.", "Kuala Lumpur", "Events", "Good", "JBL", 100, 4.5},
	{"I012", "Projector and Screen", "HD projector with portable screen for presentations.", "Johor Bahru", "Electronics", "Good", "Epson", 50, 4.4},
}
