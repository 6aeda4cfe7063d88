package fakestore

import "storedesk/internal/domain"

// FixtureProducts returns the seed catalog used by the simulator in
// development mode. The shape mirrors what the demo API serves.
func FixtureProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Title:       "Fjallraven Foldsack Backpack",
			Price:       109.95,
			Description: "Your everyday pack, fits 15 inch laptops in the padded sleeve.",
			Category:    "men's clothing",
			Image:       "https://img.example.com/backpack.jpg",
			Rating:      domain.Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Slim Fit T-Shirt",
			Price:       22.3,
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			Category:    "men's clothing",
			Image:       "https://img.example.com/tshirt.jpg",
			Rating:      domain.Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          3,
			Title:       "Smartphone case",
			Price:       12.99,
			Description: "Shock-absorbing case for most phone models.",
			Category:    "electronics",
			Image:       "https://img.example.com/case.jpg",
			Rating:      domain.Rating{Rate: 4.7, Count: 500},
		},
		{
			ID:          4,
			Title:       "Gold Plated Princess Ring",
			Price:       9.99,
			Description: "Classic created wedding engagement solitaire ring.",
			Category:    "jewelery",
			Image:       "https://img.example.com/ring.jpg",
			Rating:      domain.Rating{Rate: 3.0, Count: 400},
		},
		{
			ID:          5,
			Title:       "1TB Portable External Hard Drive",
			Price:       64.0,
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers.",
			Category:    "electronics",
			Image:       "https://img.example.com/drive.jpg",
			Rating:      domain.Rating{Rate: 4.4, Count: 203},
		},
		{
			ID:          6,
			Title:       "Rain Jacket Windbreaker",
			Price:       39.99,
			Description: "Lightweight perfect for trip or casual wear, hooded.",
			Category:    "women's clothing",
			Image:       "https://img.example.com/jacket.jpg",
			Rating:      domain.Rating{Rate: 3.8, Count: 679},
		},
	}
}

// FixtureUsers returns the seed directory used by the simulator.
func FixtureUsers() []domain.User {
	return []domain.User{
		{
			ID: 1, Email: "john@gmail.com", Username: "johnd", Phone: "1-570-236-7033",
			Name:    domain.Name{First: "John", Last: "Doe"},
			Address: domain.Address{City: "Kilcoole", Street: "New Road", Number: 7682, Zipcode: "12926-3874", Geo: domain.Geolocation{Lat: "-37.3159", Long: "81.1496"}},
		},
		{
			ID: 2, Email: "morrison@gmail.com", Username: "mor_2314", Phone: "1-570-236-7034",
			Name:    domain.Name{First: "David", Last: "Morrison"},
			Address: domain.Address{City: "Kilcoole", Street: "Lovers Ln", Number: 7267, Zipcode: "12926-3874", Geo: domain.Geolocation{Lat: "-37.3159", Long: "81.1496"}},
		},
		{
			ID: 3, Email: "kevin@gmail.com", Username: "kevinryan", Phone: "1-567-094-1345",
			Name:    domain.Name{First: "Kevin", Last: "Ryan"},
			Address: domain.Address{City: "Cullman", Street: "Frances Ct", Number: 86, Zipcode: "29567-1452", Geo: domain.Geolocation{Lat: "40.3467", Long: "-30.1310"}},
		},
		{
			ID: 4, Email: "don@gmail.com", Username: "donero", Phone: "1-765-789-6734",
			Name:    domain.Name{First: "Don", Last: "Romer"},
			Address: domain.Address{City: "San Antonio", Street: "Hunters Creek Dr", Number: 6454, Zipcode: "98234-1734", Geo: domain.Geolocation{Lat: "50.3467", Long: "-20.1310"}},
		},
		{
			ID: 5, Email: "derek@gmail.com", Username: "derek", Phone: "1-956-001-1945",
			Name:    domain.Name{First: "Derek", Last: "Powell"},
			Address: domain.Address{City: "San Antonio", Street: "Adams St", Number: 245, Zipcode: "80796-1234", Geo: domain.Geolocation{Lat: "40.3467", Long: "-40.1310"}},
		},
	}
}
