package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ClientStatusActive     = "active"
	ClientStatusInactive   = "inactive"
	ClientStatusSuspended  = "suspended"
	ClientStatusTerminated = "terminated"

	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// BusinessAddress is the postal address block on a client record.
type BusinessAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

// DomainHosting covers the client's domain and hosting section.
type DomainHosting struct {
	Subdomain               string `json:"subdomain"`
	DNSStatus               string `json:"dnsStatus"`
	FrontendHostingPlatform string `json:"frontendHostingPlatform,omitempty"`
	BackendHostingPlatform  string `json:"backendHostingPlatform,omitempty"`
	SSLCertificateStatus    string `json:"sslCertificateStatus,omitempty"`
	WebsiteTheme            string `json:"websiteTheme,omitempty"`
}

// DatabaseSystem covers the client's database and system section.
type DatabaseSystem struct {
	DatabaseName      string     `json:"databaseName"`
	ConnectionURI     string     `json:"connectionUri"`
	BackupFrequency   string     `json:"backupFrequency,omitempty"`
	LastBackupDate    *time.Time `json:"lastBackupDate,omitempty"`
	ServerEnvironment string     `json:"serverEnvironment,omitempty"`
	StorageUsage      string     `json:"storageUsage,omitempty"`
	BackendRepoLink   string     `json:"backendRepoLink,omitempty"`
}

// SetupCost records whether the one-time setup fee was paid.
type SetupCost struct {
	Paid   bool             `json:"paid"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// MaintenanceFee is the recurring fee on a client's billing section.
type MaintenanceFee struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// PendingDues records outstanding amounts on a client account.
type PendingDues struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Billing covers the client's billing and payment section.
type Billing struct {
	SetupCost       SetupCost      `json:"setupCost"`
	MaintenanceFee  MaintenanceFee `json:"maintenanceFee"`
	BillingCycle    string         `json:"billingCycle"`
	LastPaymentDate *time.Time     `json:"lastPaymentDate,omitempty"`
	NextPaymentDate time.Time      `json:"nextPaymentDate"`
	PaymentMethod   string         `json:"paymentMethod"`
	PendingDues     PendingDues    `json:"pendingDues"`
}

// CustomFeature is one client-requested feature and its delivery status.
type CustomFeature struct {
	Feature       string     `json:"feature"`
	Status        string     `json:"status"`
	RequestedDate time.Time  `json:"requestedDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// IssueRecord is one resolved or historical support issue.
type IssueRecord struct {
	Issue        string     `json:"issue"`
	Fix          string     `json:"fix,omitempty"`
	ReportedDate time.Time  `json:"reportedDate"`
	ResolvedDate *time.Time `json:"resolvedDate,omitempty"`
	Status       string     `json:"status"`
}

// OngoingIssue is one open support issue on a client account.
type OngoingIssue struct {
	Issue        string    `json:"issue"`
	Priority     string    `json:"priority"`
	ReportedDate time.Time `json:"reportedDate"`
	AssignedTo   *UserRef  `json:"assignedTo,omitempty"`
}

// SupportTickets summarizes tickets raised through the external ticket system.
type SupportTickets struct {
	Count            int    `json:"count"`
	TicketSystemLink string `json:"ticketSystemLink,omitempty"`
}

// ServiceSupport covers the client's service and support section.
type ServiceSupport struct {
	SupportTicketsRaised    SupportTickets  `json:"supportTicketsRaised"`
	LastSupportRequestDate  *time.Time      `json:"lastSupportRequestDate,omitempty"`
	ServiceLevel            string          `json:"serviceLevel"`
	CustomFeaturesRequested []CustomFeature `json:"customFeaturesRequested"`
	IssuesHistory           []IssueRecord   `json:"issuesHistory"`
	OngoingIssues           []OngoingIssue  `json:"ongoingIssues"`
}

// AutomationNotifications covers the client's alerting toggles.
type AutomationNotifications struct {
	AutoEmailAlerts    bool `json:"autoEmailAlerts"`
	BackupCompleted    bool `json:"backupCompleted"`
	PaymentReminder    bool `json:"paymentReminder"`
	SSLExpiry          bool `json:"sslExpiry"`
	DomainRenewal      bool `json:"domainRenewal"`
	SupportSLAReminder bool `json:"supportSlaReminder"`
}

// AttachedFile is one uploaded design or contract file reference.
type AttachedFile struct {
	Filename     string     `json:"filename"`
	URL          string     `json:"url"`
	FileType     string     `json:"fileType,omitempty"`
	UploadedDate *time.Time `json:"uploadedDate,omitempty"`
}

// InternalNote is one staff-only note on a client record.
type InternalNote struct {
	Note      string    `json:"note"`
	AddedBy   UserRef   `json:"addedBy"`
	AddedDate time.Time `json:"addedDate"`
	IsPrivate bool      `json:"isPrivate"`
}

// AttachmentsNotes covers the client's attachments and notes section.
type AttachmentsNotes struct {
	ContractPDF                *AttachedFile  `json:"contractPdf,omitempty"`
	CustomDesignFiles          []AttachedFile `json:"customDesignFiles"`
	ClientSpecificInstructions string         `json:"clientSpecificInstructions,omitempty"`
	InternalNotes              []InternalNote `json:"internalNotes"`
}

// Client is one managed client account mirrored from the backend. Its eight
// sections correspond to the steps of the client-creation wizard.
type Client struct {
	ID               string          `json:"_id"`
	ClientID         string          `json:"clientId"`
	BusinessName     string          `json:"businessName"`
	OwnerContactName string          `json:"ownerContactName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	BusinessAddress  BusinessAddress `json:"businessAddress"`
	OnboardingDate   time.Time       `json:"onboardingDate"`
	AssignedSalesRep *UserRef        `json:"assignedSalesRep,omitempty"`

	BusinessType        string `json:"businessType"`
	BusinessCategory    string `json:"businessCategory,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`

	DomainHosting           DomainHosting           `json:"domainHosting"`
	DatabaseSystem          DatabaseSystem          `json:"databaseSystem"`
	Billing                 Billing                 `json:"billing"`
	ServiceSupport          ServiceSupport          `json:"serviceSupport"`
	AutomationNotifications AutomationNotifications `json:"automationNotifications"`
	AttachmentsNotes        AttachmentsNotes        `json:"attachmentsNotes"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpcomingPayment is one row of the upcoming-payments summary on the client
// list screen.
type UpcomingPayment struct {
	ID           string `json:"_id"`
	BusinessName string `json:"businessName"`
	Billing      struct {
		NextPaymentDate time.Time `json:"nextPaymentDate"`
		MaintenanceFee  struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"maintenanceFee"`
	} `json:"billing"`
}

// ClientPage is one page of clients plus the aggregate summaries.
type ClientPage struct {
	Clients            []Client          `json:"clients"`
	Pagination         Pagination        `json:"pagination"`
	StatusCounts       map[string]int    `json:"statusCounts"`
	BillingCycleCounts map[string]int    `json:"billingCycleCounts"`
	UpcomingPayments   []UpcomingPayment `json:"upcomingPayments"`
}

// ClientListQuery extends the shared list parameters with client filters.
type ClientListQuery struct {
	ListQuery
	BusinessType     string
	ServiceLevel     string
	AssignedSalesRep string
	DNSStatus        string
	BillingCycle     string
}

// ClientDashboardStats is the client-overview block on the dashboard.
type ClientDashboardStats struct {
	TotalClients      int             `json:"totalClients"`
	ActiveClients     int             `json:"activeClients"`
	SuspendedClients  int             `json:"suspendedClients"`
	OverduePayments   int             `json:"overduePayments"`
	ClientsWithIssues int             `json:"clientsWithIssues"`
	MonthlyRevenue    decimal.Decimal `json:"monthlyRevenue"`
	YearlyRevenue     decimal.Decimal `json:"yearlyRevenue"`
	RecentClients     []struct {
		ID               string    `json:"_id"`
		BusinessName     string    `json:"businessName"`
		OwnerContactName string    `json:"ownerContactName"`
		Status           string    `json:"status"`
		CreatedAt        time.Time `json:"createdAt"`
	} `json:"recentClients"`
}
