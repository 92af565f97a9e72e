package domain

import "time"

// View types returned by the analytics facade. Event ids are the opaque
// boundary encoding, never raw database ids.

// EventSummary is the sidebar listing entry for one event.
type EventSummary struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	CreatedAt           time.Time `json:"created_at"`
	StartDate           time.Time `json:"start_date"`
	TargetRegistrations int       `json:"target_inscriptions"`
}

// EventRegistrationView carries the registration chart and its KPIs.
type EventRegistrationView struct {
	ID            string             `json:"id"`
	Series        RegistrationSeries `json:"chartDataInscriptions"`
	CurrentCount  int                `json:"currentInscriptions"`
	AveragePerDay float64            `json:"averageInscriptions"`
	Target        int                `json:"targetInscriptions"`
	DaysRemaining int                `json:"daysRemaining"`
	DailyGoal     float64            `json:"dailyInscriptionsGoal"`
	IsActive      bool               `json:"isActive"`
}

// EventRevenueView carries the revenue chart and its KPIs.
type EventRevenueView struct {
	ID           string        `json:"id"`
	Series       RevenueSeries `json:"chartDataRevenue"`
	TicketPrice  float64       `json:"ticketPrice"`
	TotalRevenue float64       `json:"totalRevenue"`
}

// FieldDistributionView maps field labels to answer-frequency counts.
// Labels lists every field defined for the event; Distribution holds only
// fields that are worth charting (more than one and at most twenty
// distinct answers, counting the synthetic "undefined" bucket).
type FieldDistributionView struct {
	Labels       []string                  `json:"labels"`
	Distribution map[string]map[string]int `json:"distribution"`
}
