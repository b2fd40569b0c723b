package catalog

// Provider is an immutable practitioner record.
type Provider struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Specialization string             `json:"specialization"`
	Bio            string             `json:"bio"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	Availability   []AvailabilitySlot `json:"availability"`
	Rating         float64            `json:"rating"`
}

// AvailabilitySlot is carried on providers for display only. Bookable times
// come from the appointment slot template instead.
type AvailabilitySlot struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	IsBooked   bool   `json:"isBooked"`
}

// Service is an immutable bookable offering.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"` // minutes
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}
