package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DemoStatusPending   = "pending"
	DemoStatusScheduled = "demo_scheduled"
	DemoStatusCompleted = "demo_completed"
	DemoStatusAccepted  = "demo_accepted"
	DemoStatusOnProceed = "on_proceed"
	DemoStatusConverted = "converted"
	DemoStatusRejected  = "rejected"

	DemoCustomerResponseOkay    = "okay"
	DemoCustomerResponseNotOkay = "not_okay"
)

// Demo is one demo request mirrored from the backend.
type Demo struct {
	ID               string           `json:"_id"`
	Name             string           `json:"name"`
	Business         string           `json:"business"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	BusinessType     string           `json:"businessType"`
	CurrentSoftware  string           `json:"currentSoftware"`
	PreferredTime    string           `json:"preferredTime"`
	Status           string           `json:"status"`
	Priority         string           `json:"priority"`
	DemoDate         *time.Time       `json:"demoDate,omitempty"`
	DemoNotes        string           `json:"demoNotes,omitempty"`
	AssignedTo       *UserRef         `json:"assignedTo,omitempty"`
	CustomerResponse string           `json:"customerResponse"`
	CustomerFeedback string           `json:"customerFeedback,omitempty"`
	ConversionValue  *decimal.Decimal `json:"conversionValue,omitempty"`
	FollowUpDate     *time.Time       `json:"followUpDate,omitempty"`
	AdminNotes       []AdminNote      `json:"adminNotes"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// DemoPage is one page of demo requests plus the aggregate badge counts.
type DemoPage struct {
	Demos              []Demo         `json:"demos"`
	Pagination         Pagination     `json:"pagination"`
	StatusCounts       map[string]int `json:"statusCounts"`
	BusinessTypeCounts map[string]int `json:"businessTypeCounts"`
}

// DemoListQuery extends the shared list parameters with demo-specific filters.
type DemoListQuery struct {
	ListQuery
	BusinessType string
	Priority     string
}
