package catalog

// DefaultProviders returns the demo provider roster.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:             "provider-1",
			Name:           "Dr. Sarah Johnson",
			Specialization: "Dermatologist",
			Bio:            "Board certified dermatologist with 10+ years of experience in medical and cosmetic dermatology.",
			ImageURL:       "https://images.pexels.com/photos/5452201/pexels-photo-5452201.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Availability:   []AvailabilitySlot{},
			Rating:         4.9,
		},
		{
			ID:             "provider-2",
			Name:           "Dr. Michael Chen",
			Specialization: "Cardiologist",
			Bio:            "Experienced cardiologist focused on preventive care and treatment of heart conditions.",
			ImageURL:       "https://images.pexels.com/photos/5452293/pexels-photo-5452293.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Availability:   []AvailabilitySlot{},
			Rating:         4.8,
		},
		{
			ID:             "provider-3",
			Name:           "Dr. Emma Wilson",
			Specialization: "Therapist",
			Bio:            "Licensed therapist specializing in anxiety, depression, and relationship counseling.",
			ImageURL:       "https://images.pexels.com/photos/5207104/pexels-photo-5207104.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Availability:   []AvailabilitySlot{},
			Rating:         4.7,
		},
	}
}

// DefaultServices returns the demo service menu.
func DefaultServices() []Service {
	return []Service{
		{
			ID:          "service-1",
			Name:        "Initial Consultation",
			Description: "First-time appointment to discuss your health concerns and create a treatment plan.",
			Duration:    60,
			Price:       150,
			Category:    "consultation",
		},
		{
			ID:          "service-2",
			Name:        "Follow-up Visit",
			Description: "Check on your progress and adjust treatment as needed.",
			Duration:    30,
			Price:       100,
			Category:    "follow-up",
		},
		{
			ID:          "service-3",
			Name:        "Urgent Care",
			Description: "Same-day appointment for urgent health concerns.",
			Duration:    45,
			Price:       200,
			Category:    "urgent",
		},
	}
}
