package models

// Service is a bookable offering in a business's catalogue.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceMinorUnits int    `json:"priceMinorUnits"`
	Category        string `json:"category,omitempty"`
}

// Staff is a bookable staff member. Selection is optional in the flow.
type Staff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}
