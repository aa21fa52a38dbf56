package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	clientCollectionPath    = "/client"
	clientRecordPattern     = "/client/%s"
	clientByClientIDPattern = "/client/client-id/%s"
	clientNotesPattern      = "/client/%s/notes"
	clientIssuesPattern     = "/client/%s/issues"
	clientPaymentPattern    = "/client/%s/payment"
	clientDashboardPath     = "/client/dashboard-stats"
)

// ClientService maps client-account intents onto the backend.
type ClientService struct {
	client *backend.Client
}

// NewClientService constructs a ClientService.
func NewClientService(client *backend.Client) *ClientService {
	return &ClientService{client: client}
}

type clientEnvelope struct {
	Client model.Client `json:"client"`
}

// List returns one page of client accounts with the aggregate summaries.
func (service *ClientService) List(ctx context.Context, query model.ClientListQuery) (model.ClientPage, error) {
	values := listQueryValues(query.ListQuery)
	backend.AppendQueryValue(values, queryParameterBusinessType, query.BusinessType)
	backend.AppendQueryValue(values, queryParameterServiceLevel, query.ServiceLevel)
	backend.AppendQueryValue(values, queryParameterSalesRep, query.AssignedSalesRep)
	backend.AppendQueryValue(values, queryParameterDNSStatus, query.DNSStatus)
	backend.AppendQueryValue(values, queryParameterBillingCycle, query.BillingCycle)
	// The client list endpoint names its sort direction "order".
	if query.SortOrder != "" {
		values.Del(queryParameterSortOrder)
		backend.AppendQueryValue(values, queryParameterOrder, query.SortOrder)
	}

	var page model.ClientPage
	listErr := service.client.Get(ctx, clientCollectionPath, values, &page)
	return page, listErr
}

// Get returns one client account by record identifier.
func (service *ClientService) Get(ctx context.Context, clientID string) (model.Client, error) {
	var envelope clientEnvelope
	getErr := service.client.Get(ctx, fmt.Sprintf(clientRecordPattern, clientID), nil, &envelope)
	return envelope.Client, getErr
}

// GetByClientID returns one client account by its human-facing client code.
func (service *ClientService) GetByClientID(ctx context.Context, clientCode string) (model.Client, error) {
	var envelope clientEnvelope
	getErr := service.client.Get(ctx, fmt.Sprintf(clientByClientIDPattern, clientCode), nil, &envelope)
	return envelope.Client, getErr
}

// Create registers a new client account assembled by the eight-step wizard
// and returns the backend's canonical record.
func (service *ClientService) Create(ctx context.Context, draft map[string]any) (model.Client, error) {
	var envelope clientEnvelope
	createErr := service.client.Post(ctx, clientCollectionPath, draft, &envelope)
	return envelope.Client, createErr
}

// Update saves edits and returns the backend's canonical record.
func (service *ClientService) Update(ctx context.Context, clientID string, update map[string]any) (model.Client, error) {
	var envelope clientEnvelope
	updateErr := service.client.Put(ctx, fmt.Sprintf(clientRecordPattern, clientID), update, &envelope)
	return envelope.Client, updateErr
}

// AddInternalNote appends a staff-only note and returns the updated client.
func (service *ClientService) AddInternalNote(ctx context.Context, clientID string, note string, isPrivate bool) (model.Client, error) {
	var envelope clientEnvelope
	noteErr := service.client.Post(ctx, fmt.Sprintf(clientNotesPattern, clientID), map[string]any{
		"note":      note,
		"isPrivate": isPrivate,
	}, &envelope)
	return envelope.Client, noteErr
}

// AddOngoingIssue records a new open issue and returns the updated client.
func (service *ClientService) AddOngoingIssue(ctx context.Context, clientID string, issue string, priority string, assignedTo string) (model.Client, error) {
	payload := map[string]any{
		"issue":    issue,
		"priority": priority,
	}
	if assignedTo != "" {
		payload["assignedTo"] = assignedTo
	}

	var envelope clientEnvelope
	issueErr := service.client.Post(ctx, fmt.Sprintf(clientIssuesPattern, clientID), payload, &envelope)
	return envelope.Client, issueErr
}

// PaymentUpdate carries a recorded payment; nil fields are omitted.
type PaymentUpdate struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate     *time.Time       `json:"paymentDate,omitempty"`
	PaymentMethod   *string          `json:"paymentMethod,omitempty"`
	NextPaymentDate *time.Time       `json:"nextPaymentDate,omitempty"`
}

// UpdatePayment records a payment against the client's billing section and
// returns the updated client.
func (service *ClientService) UpdatePayment(ctx context.Context, clientID string, payment PaymentUpdate) (model.Client, error) {
	var envelope clientEnvelope
	paymentErr := service.client.Put(ctx, fmt.Sprintf(clientPaymentPattern, clientID), payment, &envelope)
	return envelope.Client, paymentErr
}

// DashboardStats returns the client-overview aggregates.
func (service *ClientService) DashboardStats(ctx context.Context) (model.ClientDashboardStats, error) {
	var stats model.ClientDashboardStats
	statsErr := service.client.Get(ctx, clientDashboardPath, nil, &stats)
	return stats, statsErr
}
