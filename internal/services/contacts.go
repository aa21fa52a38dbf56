package services

import (
	"context"
	"fmt"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	contactCollectionPath = "/contact"
	contactRecordPattern  = "/contact/%s"
	contactNotesPattern   = "/contact/%s/notes"
)

// ContactService maps contact-inquiry intents onto the backend.
type ContactService struct {
	client *backend.Client
}

// NewContactService constructs a ContactService.
func NewContactService(client *backend.Client) *ContactService {
	return &ContactService{client: client}
}

// contactEnvelope is the backend's single-record nesting for contacts.
type contactEnvelope struct {
	Contact model.Contact `json:"contact"`
}

// List returns one page of contacts with pagination metadata and the
// per-status badge counts.
func (service *ContactService) List(ctx context.Context, query model.ListQuery) (model.ContactPage, error) {
	var page model.ContactPage
	listErr := service.client.Get(ctx, contactCollectionPath, listQueryValues(query), &page)
	return page, listErr
}

// Get returns one contact by identifier.
func (service *ContactService) Get(ctx context.Context, contactID string) (model.Contact, error) {
	var envelope contactEnvelope
	getErr := service.client.Get(ctx, fmt.Sprintf(contactRecordPattern, contactID), nil, &envelope)
	return envelope.Contact, getErr
}

// ContactUpdate carries the editable contact fields; nil fields are omitted
// so the backend leaves them untouched.
type ContactUpdate struct {
	Status           *string `json:"status,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	AssignedTo       *string `json:"assignedTo,omitempty"`
	CustomerResponse *string `json:"customerResponse,omitempty"`
	CustomerFeedback *string `json:"customerFeedback,omitempty"`
	IssueSolved      *bool   `json:"issueSolved,omitempty"`
}

// Update saves edits and returns the backend's canonical record.
func (service *ContactService) Update(ctx context.Context, contactID string, update ContactUpdate) (model.Contact, error) {
	var envelope contactEnvelope
	updateErr := service.client.Put(ctx, fmt.Sprintf(contactRecordPattern, contactID), update, &envelope)
	return envelope.Contact, updateErr
}

// AddNote appends a staff note and returns the updated contact so the note
// list stays in sync.
func (service *ContactService) AddNote(ctx context.Context, contactID string, note string) (model.Contact, error) {
	var envelope contactEnvelope
	noteErr := service.client.Post(ctx, fmt.Sprintf(contactNotesPattern, contactID), map[string]string{"note": note}, &envelope)
	return envelope.Contact, noteErr
}

// Delete removes the contact. The caller refreshes its list afterwards.
func (service *ContactService) Delete(ctx context.Context, contactID string) error {
	return service.client.Delete(ctx, fmt.Sprintf(contactRecordPattern, contactID))
}
