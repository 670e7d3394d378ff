package models

// Restaurant is a single catalog entry. CuisineID and IsOpen are filled in
// by the client from the position of the entry in the cuisines payload.
type Restaurant struct {
	ID             string  `json:"id"`
	RestaurantName string  `json:"restaurantName"`
	ShortDesc      string  `json:"shortDesc"`
	Currency       string  `json:"currency"`
	DeliveryCost   float64 `json:"deliveryCost"`
	Rating         float64 `json:"rating"`
	MinOrder       float64 `json:"minOrder"`
	DeliveryTime   string  `json:"deliveryTime"`
	Speciality     string  `json:"speciality,omitempty"`
	ImageURL       string  `json:"imageUrl"`
	CuisineID      string  `json:"cuisineId,omitempty"`
	IsOpen         bool    `json:"isOpen"`
}

// CuisineData groups the restaurants of one cuisine by opening status.
type CuisineData struct {
	Open  []Restaurant `json:"open"`
	Close []Restaurant `json:"close"`
}

// CuisinesPayload is the body of GET /cuisines, keyed by cuisine id.
type CuisinesPayload map[string]CuisineData

// Cuisine is the normalized entry shown in the cuisine list.
type Cuisine struct {
	ID          string
	Name        string
	ImageURL    string
	Description string
}

// Page selects a 1-based slice of a list.
type Page struct {
	Number int
	Limit  int
}
