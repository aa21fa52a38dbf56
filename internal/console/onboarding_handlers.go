package console

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	pageNameOnboardingsList  = "onboardings_list.tmpl"
	pageNameOnboardingDetail = "onboarding_detail.tmpl"
	pageNameOnboardingWizard = "onboarding_wizard.tmpl"

	titleOnboarding = "Onboarding"

	onboardingsListPath = "/app/onboardings"

	notificationOnboardingStarted   = "Onboarding draft created"
	notificationOnboardingSubmitted = "Onboarding submitted for review"
	notificationStatusUpdated       = "Status updated"
	notificationStepSaved           = "Step saved"
)

type onboardingsListPageData struct {
	Page  model.OnboardingPage
	Query model.ListQuery
	Stats model.OnboardingStats
}

type onboardingDetailPageData struct {
	Onboarding model.Onboarding
}

type onboardingWizardPageData struct {
	Onboarding model.Onboarding
	Step       int
	Districts  []string
}

// ListOnboardings renders the onboarding table with the summary block.
func (handlers *Handlers) ListOnboardings(requestContext *gin.Context) {
	query := parseListQuery(requestContext)
	page, listErr := handlers.onboardings.List(requestContext.Request.Context(), query)
	if listErr != nil {
		handlers.failRequest(requestContext, listErr, dashboardPath, notificationGenericLoadFailed)
		return
	}

	data := onboardingsListPageData{Page: page, Query: query}
	stats, statsErr := handlers.onboardings.Stats(requestContext.Request.Context())
	if statsErr != nil {
		handlers.flashes.Error(requestContext, notificationGenericLoadFailed)
	} else {
		data.Stats = stats
	}
	handlers.render(requestContext, http.StatusOK, pageNameOnboardingsList, titleOnboarding, data)
}

// ShowOnboarding renders one onboarding with its review controls and notes.
func (handlers *Handlers) ShowOnboarding(requestContext *gin.Context) {
	onboarding, getErr := handlers.onboardings.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, onboardingsListPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameOnboardingDetail, onboarding.PersonalDetails.Name, onboardingDetailPageData{Onboarding: onboarding})
}

// StartOnboarding opens a new draft on the backend and enters the wizard.
// The first step's fields are collected before the draft exists, so the
// start screen is the wizard itself rendered over an empty record.
func (handlers *Handlers) StartOnboarding(requestContext *gin.Context) {
	districts, districtsErr := handlers.onboardings.Districts(requestContext.Request.Context())
	if districtsErr != nil {
		handlers.flashes.Error(requestContext, notificationGenericLoadFailed)
	}
	handlers.render(requestContext, http.StatusOK, pageNameOnboardingWizard, titleOnboarding, onboardingWizardPageData{
		Onboarding: model.Onboarding{},
		Step:       1,
		Districts:  districts,
	})
}

// CreateOnboarding posts step one's personal details as a new draft.
func (handlers *Handlers) CreateOnboarding(requestContext *gin.Context) {
	guardKey := "onboarding-create"
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, onboardingsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	onboarding, createErr := handlers.onboardings.Create(requestContext.Request.Context(), personalDetailsFromForm(requestContext))
	if createErr != nil {
		handlers.failRequest(requestContext, createErr, onboardingsListPath+"/new", notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationOnboardingStarted)
	requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboarding.ID+"/wizard?step=2")
}

// ShowOnboardingWizardStep renders one step of the wizard over the stored
// draft.
func (handlers *Handlers) ShowOnboardingWizardStep(requestContext *gin.Context) {
	onboarding, getErr := handlers.onboardings.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, onboardingsListPath, notificationGenericLoadFailed)
		return
	}

	step, stepErr := strconv.Atoi(requestContext.Query("step"))
	if stepErr != nil || step < 1 || step > model.OnboardingStepCount {
		step = 1
	}

	data := onboardingWizardPageData{Onboarding: onboarding, Step: step}
	if step == 1 {
		districts, districtsErr := handlers.onboardings.Districts(requestContext.Request.Context())
		if districtsErr != nil {
			handlers.flashes.Error(requestContext, notificationGenericLoadFailed)
		}
		data.Districts = districts
	}
	handlers.render(requestContext, http.StatusOK, pageNameOnboardingWizard, titleOnboarding, data)
}

// SubmitOnboardingWizardStep persists one step and advances, optionally
// submitting the draft for review from the final step.
func (handlers *Handlers) SubmitOnboardingWizardStep(requestContext *gin.Context) {
	onboardingID := requestContext.Param("id")
	step, stepErr := strconv.Atoi(requestContext.Param("step"))
	if stepErr != nil || step < 1 || step > model.OnboardingStepCount {
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID+"/wizard?step=1")
		return
	}

	guardKey := "onboarding-step-" + onboardingID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID+"/wizard?step="+strconv.Itoa(step))
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if _, saveErr := handlers.onboardings.SaveStep(requestContext.Request.Context(), onboardingID, step, onboardingStepPayload(requestContext, step)); saveErr != nil {
		handlers.failRequest(requestContext, saveErr, onboardingsListPath, notificationGenericSaveFailed)
		return
	}

	if step == model.OnboardingStepCount {
		if requestContext.PostForm("submit") == formValueTrue {
			if _, submitErr := handlers.onboardings.Submit(requestContext.Request.Context(), onboardingID); submitErr != nil {
				handlers.failRequest(requestContext, submitErr, onboardingsListPath, notificationGenericSaveFailed)
				return
			}
			handlers.flashes.Success(requestContext, notificationOnboardingSubmitted)
		} else {
			handlers.flashes.Success(requestContext, notificationStepSaved)
		}
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
		return
	}

	handlers.flashes.Success(requestContext, notificationStepSaved)
	requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID+"/wizard?step="+strconv.Itoa(step+1))
}

// UpdateOnboardingStatus moves the onboarding through the review workflow.
func (handlers *Handlers) UpdateOnboardingStatus(requestContext *gin.Context) {
	onboardingID := requestContext.Param("id")
	guardKey := "onboarding-status-" + onboardingID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if _, statusErr := handlers.onboardings.UpdateStatus(requestContext.Request.Context(), onboardingID, requestContext.PostForm(formFieldStatus)); statusErr != nil {
		handlers.failRequest(requestContext, statusErr, onboardingsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationStatusUpdated)
	requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
}

// AddOnboardingNote appends a staff note.
func (handlers *Handlers) AddOnboardingNote(requestContext *gin.Context) {
	onboardingID := requestContext.Param("id")
	guardKey := "onboarding-note-" + onboardingID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if _, noteErr := handlers.onboardings.AddNote(requestContext.Request.Context(), onboardingID, requestContext.PostForm(formFieldNote)); noteErr != nil {
		handlers.failRequest(requestContext, noteErr, onboardingsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationNoteAdded)
	requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
}

// DeleteOnboarding removes the onboarding and returns to the list.
func (handlers *Handlers) DeleteOnboarding(requestContext *gin.Context) {
	onboardingID := requestContext.Param("id")
	guardKey := "onboarding-delete-" + onboardingID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, onboardingsListPath+"/"+onboardingID)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if deleteErr := handlers.onboardings.Delete(requestContext.Request.Context(), onboardingID); deleteErr != nil {
		handlers.failRequest(requestContext, deleteErr, onboardingsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationRecordDeleted)
	requestContext.Redirect(http.StatusFound, onboardingsListPath)
}

func personalDetailsFromForm(requestContext *gin.Context) model.PersonalDetails {
	return model.PersonalDetails{
		Name:         requestContext.PostForm("name"),
		FatherName:   requestContext.PostForm("fatherName"),
		Address:      requestContext.PostForm("address"),
		State:        requestContext.PostForm("state"),
		District:     requestContext.PostForm("district"),
		PhoneNumber1: requestContext.PostForm("phoneNumber1"),
		PhoneNumber2: requestContext.PostForm("phoneNumber2"),
		NomineeName:  requestContext.PostForm("nomineeName"),
	}
}

// onboardingStepPayload shapes one step's form fields into the backend's
// per-step payload.
func onboardingStepPayload(requestContext *gin.Context, step int) any {
	switch step {
	case 1:
		return map[string]any{"personalDetails": personalDetailsFromForm(requestContext)}
	case 2:
		yearsOfBusiness, _ := strconv.Atoi(requestContext.PostForm("yearsOfBusiness"))
		return map[string]any{"businessDetails": model.BusinessDetails{
			BusinessName:        requestContext.PostForm("businessName"),
			Address:             requestContext.PostForm("address"),
			State:               requestContext.PostForm("state"),
			District:            requestContext.PostForm("district"),
			PhoneNumber:         requestContext.PostForm("phoneNumber"),
			GSTNumber:           requestContext.PostForm("gstNumber"),
			BusinessDescription: requestContext.PostForm("businessDescription"),
			BusinessSize:        requestContext.PostForm("businessSize"),
			YearsOfBusiness:     yearsOfBusiness,
		}}
	case 3:
		return map[string]any{"planDetails": model.PlanDetails{
			AccessType:           requestContext.PostForm("accessType"),
			MaintenanceFrequency: requestContext.PostForm("maintenanceFrequency"),
			CustomPricing:        requestContext.PostForm("customPricing") == formValueTrue,
		}}
	case 4:
		payment := model.PaymentDetails{
			PlanPrice:          decimalFromForm(requestContext, "planPrice"),
			ProjectPrice:       decimalFromForm(requestContext, "projectPrice"),
			HostingYearlyPrice: decimalFromForm(requestContext, "hostingYearlyPrice"),
			AdditionalCosts: model.AdditionalCosts{
				Hosting: decimalFromForm(requestContext, "costHosting"),
				Domain:  decimalFromForm(requestContext, "costDomain"),
				Storage: decimalFromForm(requestContext, "costStorage"),
			},
		}
		payment.TotalAmount = payment.ComputeTotal()
		return map[string]any{"paymentDetails": payment}
	default:
		return map[string]any{"notes": requestContext.PostForm("notes")}
	}
}

func decimalFromForm(requestContext *gin.Context, fieldName string) decimal.Decimal {
	value, parseErr := decimal.NewFromString(requestContext.PostForm(fieldName))
	if parseErr != nil {
		return decimal.Zero
	}
	return value
}
