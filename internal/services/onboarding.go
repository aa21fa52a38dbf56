package services

import (
	"context"
	"fmt"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	onboardingCollectionPath = "/onboarding"
	onboardingDistrictsPath  = "/onboarding/districts"
	onboardingStatsPath      = "/onboarding/stats"
	onboardingRecordPattern  = "/onboarding/%s"
	onboardingStepPattern    = "/onboarding/%s/step/%d"
	onboardingSubmitPattern  = "/onboarding/%s/submit"
	onboardingStatusPattern  = "/onboarding/%s/status"
	onboardingNotesPattern   = "/onboarding/%s/notes"
)

// OnboardingService maps the multi-step onboarding workflow onto the backend.
// Draft state is never persisted implicitly: only an explicit step save or
// submit reaches the backend, scoped to that step's fields.
type OnboardingService struct {
	client *backend.Client
}

// NewOnboardingService constructs an OnboardingService.
func NewOnboardingService(client *backend.Client) *OnboardingService {
	return &OnboardingService{client: client}
}

// Districts returns the selectable district names for the address forms.
func (service *OnboardingService) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	districtsErr := service.client.Get(ctx, onboardingDistrictsPath, nil, &districts)
	return districts, districtsErr
}

// Create opens a new onboarding draft and returns the canonical record.
func (service *OnboardingService) Create(ctx context.Context, personal model.PersonalDetails) (model.Onboarding, error) {
	var onboarding model.Onboarding
	createErr := service.client.Post(ctx, onboardingCollectionPath, map[string]any{
		"personalDetails": personal,
	}, &onboarding)
	return onboarding, createErr
}

// List returns one page of onboardings with the status badge counts.
func (service *OnboardingService) List(ctx context.Context, query model.ListQuery) (model.OnboardingPage, error) {
	var page model.OnboardingPage
	listErr := service.client.Get(ctx, onboardingCollectionPath, listQueryValues(query), &page)
	return page, listErr
}

// Get returns one onboarding by identifier.
func (service *OnboardingService) Get(ctx context.Context, onboardingID string) (model.Onboarding, error) {
	var onboarding model.Onboarding
	getErr := service.client.Get(ctx, fmt.Sprintf(onboardingRecordPattern, onboardingID), nil, &onboarding)
	return onboarding, getErr
}

// Update saves a full-record edit and returns the canonical record.
func (service *OnboardingService) Update(ctx context.Context, onboardingID string, update map[string]any) (model.Onboarding, error) {
	var onboarding model.Onboarding
	updateErr := service.client.Put(ctx, fmt.Sprintf(onboardingRecordPattern, onboardingID), update, &onboarding)
	return onboarding, updateErr
}

// SaveStep persists one wizard step's fields and returns the canonical
// record, whose completedSteps reflects the saved progress.
func (service *OnboardingService) SaveStep(ctx context.Context, onboardingID string, stepNumber int, stepPayload any) (model.Onboarding, error) {
	var onboarding model.Onboarding
	stepErr := service.client.Put(ctx, fmt.Sprintf(onboardingStepPattern, onboardingID, stepNumber), stepPayload, &onboarding)
	return onboarding, stepErr
}

// Submit finalizes the draft for review.
func (service *OnboardingService) Submit(ctx context.Context, onboardingID string) (model.Onboarding, error) {
	var onboarding model.Onboarding
	submitErr := service.client.Post(ctx, fmt.Sprintf(onboardingSubmitPattern, onboardingID), nil, &onboarding)
	return onboarding, submitErr
}

// UpdateStatus moves the onboarding through the review workflow.
func (service *OnboardingService) UpdateStatus(ctx context.Context, onboardingID string, status string) (model.Onboarding, error) {
	var onboarding model.Onboarding
	statusErr := service.client.Put(ctx, fmt.Sprintf(onboardingStatusPattern, onboardingID), map[string]string{"status": status}, &onboarding)
	return onboarding, statusErr
}

// AddNote appends a staff note and returns the updated onboarding.
func (service *OnboardingService) AddNote(ctx context.Context, onboardingID string, note string) (model.Onboarding, error) {
	var onboarding model.Onboarding
	noteErr := service.client.Post(ctx, fmt.Sprintf(onboardingNotesPattern, onboardingID), map[string]string{"note": note}, &onboarding)
	return onboarding, noteErr
}

// Delete removes the onboarding.
func (service *OnboardingService) Delete(ctx context.Context, onboardingID string) error {
	return service.client.Delete(ctx, fmt.Sprintf(onboardingRecordPattern, onboardingID))
}

// Stats returns the onboarding summary block.
func (service *OnboardingService) Stats(ctx context.Context) (model.OnboardingStats, error) {
	var stats model.OnboardingStats
	statsErr := service.client.Get(ctx, onboardingStatsPath, nil, &stats)
	return stats, statsErr
}
