package model

import "time"

const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	CustomerResponsePending      = "pending"
	CustomerResponseSatisfied    = "satisfied"
	CustomerResponseNotSatisfied = "not_satisfied"
)

// Contact is one inbound inquiry mirrored from the backend.
type Contact struct {
	ID               string      `json:"_id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Subject          string      `json:"subject"`
	Message          string      `json:"message"`
	Status           string      `json:"status"`
	Priority         string      `json:"priority"`
	AssignedTo       *UserRef    `json:"assignedTo,omitempty"`
	CustomerResponse string      `json:"customerResponse"`
	CustomerFeedback string      `json:"customerFeedback,omitempty"`
	IssueSolved      bool        `json:"issueSolved"`
	AdminNotes       []AdminNote `json:"adminNotes"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// ContactPage is one page of contacts plus the aggregate badge counts.
type ContactPage struct {
	Contacts     []Contact      `json:"contacts"`
	Pagination   Pagination     `json:"pagination"`
	StatusCounts map[string]int `json:"statusCounts"`
}
