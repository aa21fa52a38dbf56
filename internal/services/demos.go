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
	demoCollectionPath = "/demo"
	demoRecordPattern  = "/demo/%s"
	demoNotesPattern   = "/demo/%s/notes"
)

// DemoService maps demo-request intents onto the backend.
type DemoService struct {
	client *backend.Client
}

// NewDemoService constructs a DemoService.
func NewDemoService(client *backend.Client) *DemoService {
	return &DemoService{client: client}
}

type demoEnvelope struct {
	Demo model.Demo `json:"demo"`
}

// List returns one page of demo requests with the status and business-type
// badge counts.
func (service *DemoService) List(ctx context.Context, query model.DemoListQuery) (model.DemoPage, error) {
	values := listQueryValues(query.ListQuery)
	backend.AppendQueryValue(values, queryParameterBusinessType, query.BusinessType)
	backend.AppendQueryValue(values, queryParameterPriority, query.Priority)

	var page model.DemoPage
	listErr := service.client.Get(ctx, demoCollectionPath, values, &page)
	return page, listErr
}

// Get returns one demo request by identifier.
func (service *DemoService) Get(ctx context.Context, demoID string) (model.Demo, error) {
	var envelope demoEnvelope
	getErr := service.client.Get(ctx, fmt.Sprintf(demoRecordPattern, demoID), nil, &envelope)
	return envelope.Demo, getErr
}

// DemoUpdate carries the editable demo fields; nil fields are omitted.
type DemoUpdate struct {
	Status           *string          `json:"status,omitempty"`
	Priority         *string          `json:"priority,omitempty"`
	DemoDate         *time.Time       `json:"demoDate,omitempty"`
	DemoNotes        *string          `json:"demoNotes,omitempty"`
	AssignedTo       *string          `json:"assignedTo,omitempty"`
	CustomerResponse *string          `json:"customerResponse,omitempty"`
	CustomerFeedback *string          `json:"customerFeedback,omitempty"`
	ConversionValue  *decimal.Decimal `json:"conversionValue,omitempty"`
	FollowUpDate     *time.Time       `json:"followUpDate,omitempty"`
}

// Update saves edits and returns the backend's canonical record.
func (service *DemoService) Update(ctx context.Context, demoID string, update DemoUpdate) (model.Demo, error) {
	var envelope demoEnvelope
	updateErr := service.client.Put(ctx, fmt.Sprintf(demoRecordPattern, demoID), update, &envelope)
	return envelope.Demo, updateErr
}

// AddNote appends a staff note and returns the updated demo request.
func (service *DemoService) AddNote(ctx context.Context, demoID string, note string) (model.Demo, error) {
	var envelope demoEnvelope
	noteErr := service.client.Post(ctx, fmt.Sprintf(demoNotesPattern, demoID), map[string]string{"note": note}, &envelope)
	return envelope.Demo, noteErr
}

// Delete removes the demo request.
func (service *DemoService) Delete(ctx context.Context, demoID string) error {
	return service.client.Delete(ctx, fmt.Sprintf(demoRecordPattern, demoID))
}
