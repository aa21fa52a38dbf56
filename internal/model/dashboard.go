package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactSummary aggregates contact counts by status for the dashboard.
type ContactSummary struct {
	TotalContacts      int `json:"totalContacts"`
	NewContacts        int `json:"newContacts"`
	InProgressContacts int `json:"inProgressContacts"`
	ResolvedContacts   int `json:"resolvedContacts"`
	ClosedContacts     int `json:"closedContacts"`
}

// DemoSummary aggregates demo counts by status for the dashboard.
type DemoSummary struct {
	TotalDemos           int             `json:"totalDemos"`
	PendingDemos         int             `json:"pendingDemos"`
	ScheduledDemos       int             `json:"scheduledDemos"`
	CompletedDemos       int             `json:"completedDemos"`
	AcceptedDemos        int             `json:"acceptedDemos"`
	ConvertedDemos       int             `json:"convertedDemos"`
	TotalConversionValue decimal.Decimal `json:"totalConversionValue"`
}

// RecentContact is one row of the dashboard's recent-contacts list.
type RecentContact struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentDemo is one row of the dashboard's recent-demos list.
type RecentDemo struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Business  string    `json:"business"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BusinessTypeStat is one slice of the business-type distribution chart.
type BusinessTypeStat struct {
	BusinessType string `json:"_id"`
	Count        int    `json:"count"`
}

// DashboardStats is the aggregate payload behind the dashboard screen.
type DashboardStats struct {
	Contacts         ContactSummary `json:"contacts"`
	Demos            DemoSummary    `json:"demos"`
	RecentActivities struct {
		Contacts []RecentContact `json:"contacts"`
		Demos    []RecentDemo    `json:"demos"`
	} `json:"recentActivities"`
	BusinessTypeStats []BusinessTypeStat `json:"businessTypeStats"`
}
