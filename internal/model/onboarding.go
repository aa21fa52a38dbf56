package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OnboardingStatusDraft       = "Draft"
	OnboardingStatusSubmitted   = "Submitted"
	OnboardingStatusUnderReview = "Under Review"
	OnboardingStatusApproved    = "Approved"
	OnboardingStatusRejected    = "Rejected"

	// OnboardingStepCount is the number of wizard steps: personal details,
	// business details, plan, payment, notes.
	OnboardingStepCount = 5
)

// PersonalDetails is step one of the onboarding wizard.
type PersonalDetails struct {
	Name         string `json:"name" binding:"required"`
	FatherName   string `json:"fatherName" binding:"required"`
	Address      string `json:"address" binding:"required"`
	State        string `json:"state" binding:"required"`
	District     string `json:"district" binding:"required"`
	PhoneNumber1 string `json:"phoneNumber1" binding:"required"`
	PhoneNumber2 string `json:"phoneNumber2,omitempty"`
	NomineeName  string `json:"nomineeName" binding:"required"`
}

// BusinessDetails is step two of the onboarding wizard.
type BusinessDetails struct {
	BusinessName        string `json:"businessName" binding:"required"`
	Address             string `json:"address" binding:"required"`
	State               string `json:"state" binding:"required"`
	District            string `json:"district" binding:"required"`
	PhoneNumber         string `json:"phoneNumber" binding:"required"`
	GSTNumber           string `json:"gstNumber,omitempty"`
	BusinessDescription string `json:"businessDescription" binding:"required"`
	BusinessSize        string `json:"businessSize" binding:"required,oneof=Small Medium Large Enterprise"`
	YearsOfBusiness     int    `json:"yearsOfBusiness" binding:"min=0"`
}

// PlanDetails is step three of the onboarding wizard.
type PlanDetails struct {
	AccessType           string         `json:"accessType" binding:"required"`
	MaintenanceFrequency string         `json:"maintenanceFrequency" binding:"required"`
	CustomPricing        bool           `json:"customPricing"`
	PricingData          map[string]any `json:"pricingData,omitempty"`
}

// AdditionalCosts itemizes the one-time and recurring extras on a payment.
type AdditionalCosts struct {
	Constant    decimal.Decimal `json:"constant"`
	Hosting     decimal.Decimal `json:"hosting"`
	Domain      decimal.Decimal `json:"domain"`
	Storage     decimal.Decimal `json:"storage"`
	Maintenance decimal.Decimal `json:"maintenance"`
	WebsiteCost decimal.Decimal `json:"websiteCost"`
}

// Sum totals every itemized additional cost.
func (costs AdditionalCosts) Sum() decimal.Decimal {
	return costs.Constant.
		Add(costs.Hosting).
		Add(costs.Domain).
		Add(costs.Storage).
		Add(costs.Maintenance).
		Add(costs.WebsiteCost)
}

// PaymentDetails is step four of the onboarding wizard.
type PaymentDetails struct {
	PlanPrice          decimal.Decimal `json:"planPrice"`
	ProjectPrice       decimal.Decimal `json:"projectPrice"`
	HostingYearlyPrice decimal.Decimal `json:"hostingYearlyPrice"`
	AdditionalCosts    AdditionalCosts `json:"additionalCosts"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}

// ComputeTotal derives the payable total from the plan, project, and hosting
// prices plus every additional cost.
func (payment PaymentDetails) ComputeTotal() decimal.Decimal {
	return payment.PlanPrice.
		Add(payment.ProjectPrice).
		Add(payment.HostingYearlyPrice).
		Add(payment.AdditionalCosts.Sum())
}

// Onboarding is one client-onboarding draft or submission mirrored from the
// backend.
type Onboarding struct {
	ID              string          `json:"_id"`
	PersonalDetails PersonalDetails `json:"personalDetails"`
	BusinessDetails BusinessDetails `json:"businessDetails"`
	PlanDetails     PlanDetails     `json:"planDetails"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	CurrentStep     int             `json:"currentStep"`
	CompletedSteps  []int           `json:"completedSteps"`
	SubmittedAt     *time.Time      `json:"submittedAt,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	ReviewedBy      *UserRef        `json:"reviewedBy,omitempty"`
	AdminNotes      []AdminNote     `json:"adminNotes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OnboardingPage is one page of onboardings plus the aggregate badge counts.
type OnboardingPage struct {
	Onboardings  []Onboarding   `json:"onboardings"`
	Pagination   Pagination     `json:"pagination"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// OnboardingStats is the onboarding summary block.
type OnboardingStats struct {
	TotalOnboardings  int            `json:"totalOnboardings"`
	StatusCounts      map[string]int `json:"statusCounts"`
	RecentOnboardings []struct {
		ID              string `json:"_id"`
		PersonalDetails struct {
			Name string `json:"name"`
		} `json:"personalDetails"`
		BusinessDetails struct {
			BusinessName string `json:"businessName"`
		} `json:"businessDetails"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"recentOnboardings"`
}
