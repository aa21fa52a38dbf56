package console

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	pageNameClientsList  = "clients_list.tmpl"
	pageNameClientDetail = "client_detail.tmpl"
	pageNameClientWizard = "client_wizard.tmpl"

	titleClients   = "Clients"
	titleNewClient = "New client"

	clientsListPath = "/app/clients"

	// clientWizardStepCount covers basic info, profile, address, domain,
	// database, billing, support, and notes.
	clientWizardStepCount = 8

	notificationClientCreated = "Client created"
	notificationPaymentSaved  = "Payment recorded"
	notificationIssueReported = "Issue reported"

	formFieldAmount          = "amount"
	formFieldPaymentDate     = "paymentDate"
	formFieldPaymentMethod   = "paymentMethod"
	formFieldNextPaymentDate = "nextPaymentDate"
	formFieldIssue           = "issue"
	formFieldIsPrivate       = "isPrivate"
)

type clientsListPageData struct {
	Page  model.ClientPage
	Query model.ClientListQuery
}

type clientDetailPageData struct {
	Client model.Client
}

type clientWizardPageData struct {
	Step      int
	StepCount int
	DraftID   string
	draft     map[string]string
}

// Field returns a previously saved draft value for re-rendering a step.
func (data clientWizardPageData) Field(name string) string {
	return data.draft[name]
}

// ListClients renders the client accounts table with the aggregate panels.
func (handlers *Handlers) ListClients(requestContext *gin.Context) {
	query := model.ClientListQuery{
		ListQuery:        parseListQuery(requestContext),
		BusinessType:     requestContext.Query("businessType"),
		ServiceLevel:     requestContext.Query("serviceLevel"),
		AssignedSalesRep: requestContext.Query("assignedSalesRep"),
		DNSStatus:        requestContext.Query("dnsStatus"),
		BillingCycle:     requestContext.Query("billingCycle"),
	}
	page, listErr := handlers.clients.List(requestContext.Request.Context(), query)
	if listErr != nil {
		handlers.failRequest(requestContext, listErr, dashboardPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameClientsList, titleClients, clientsListPageData{
		Page:  page,
		Query: query,
	})
}

// ShowClient renders one client account across its eight sections.
func (handlers *Handlers) ShowClient(requestContext *gin.Context) {
	client, getErr := handlers.clients.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, clientsListPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameClientDetail, client.BusinessName, clientDetailPageData{Client: client})
}

// StartClientWizard opens a fresh draft and sends the operator to step one.
func (handlers *Handlers) StartClientWizard(requestContext *gin.Context) {
	draftID, _ := handlers.drafts.Open("")
	requestContext.Redirect(http.StatusFound, clientsListPath+"/new/"+draftID+"?step=1")
}

// ShowClientWizardStep renders one step of the client-creation wizard.
func (handlers *Handlers) ShowClientWizardStep(requestContext *gin.Context) {
	draftID, draft := handlers.drafts.Open(requestContext.Param("draft"))

	step, stepErr := strconv.Atoi(requestContext.Query("step"))
	if stepErr != nil || step < 1 || step > clientWizardStepCount {
		step = 1
	}

	handlers.render(requestContext, http.StatusOK, pageNameClientWizard, titleNewClient, clientWizardPageData{
		Step:      step,
		StepCount: clientWizardStepCount,
		DraftID:   draftID,
		draft:     draft,
	})
}

// SubmitClientWizardStep folds the posted fields into the draft and either
// moves to the next step or creates the client on the final one.
func (handlers *Handlers) SubmitClientWizardStep(requestContext *gin.Context) {
	draftID := requestContext.Param("draft")
	step, stepErr := strconv.Atoi(requestContext.Param("step"))
	if stepErr != nil || step < 1 || step > clientWizardStepCount {
		requestContext.Redirect(http.StatusFound, clientsListPath+"/new/"+draftID+"?step=1")
		return
	}

	fields := make(map[string]string)
	if parseErr := requestContext.Request.ParseForm(); parseErr == nil {
		for name, values := range requestContext.Request.PostForm {
			if len(values) > 0 {
				fields[name] = values[0]
			}
		}
	}
	handlers.drafts.Merge(draftID, fields)

	if step < clientWizardStepCount {
		requestContext.Redirect(http.StatusFound, clientsListPath+"/new/"+draftID+"?step="+strconv.Itoa(step+1))
		return
	}

	guardKey := "client-create-" + draftID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, clientsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	_, draft := handlers.drafts.Open(draftID)
	client, createErr := handlers.clients.Create(requestContext.Request.Context(), assembleClientDraft(draft))
	if createErr != nil {
		handlers.failRequest(requestContext, createErr, clientsListPath+"/new/"+draftID+"?step="+strconv.Itoa(clientWizardStepCount), notificationGenericSaveFailed)
		return
	}

	handlers.drafts.Discard(draftID)
	handlers.flashes.Success(requestContext, notificationClientCreated)
	requestContext.Redirect(http.StatusFound, clientsListPath+"/"+client.ID)
}

// assembleClientDraft shapes the flat wizard fields into the backend's
// nested client payload.
func assembleClientDraft(draft map[string]string) map[string]any {
	payload := map[string]any{
		"businessName":        draft["businessName"],
		"ownerContactName":    draft["ownerContactName"],
		"email":               draft["email"],
		"phone":               draft["phone"],
		"businessType":        draft["businessType"],
		"businessCategory":    draft["businessCategory"],
		"businessDescription": draft["businessDescription"],
		"businessAddress": map[string]any{
			"street":  draft["street"],
			"city":    draft["city"],
			"state":   draft["state"],
			"pincode": draft["pincode"],
		},
		"domainHosting": map[string]any{
			"subdomain":               draft["subdomain"],
			"dnsStatus":               draft["dnsStatus"],
			"frontendHostingPlatform": draft["frontendHostingPlatform"],
			"backendHostingPlatform":  draft["backendHostingPlatform"],
		},
		"databaseSystem": map[string]any{
			"databaseName":      draft["databaseName"],
			"connectionUri":     draft["connectionUri"],
			"backupFrequency":   draft["backupFrequency"],
			"serverEnvironment": draft["serverEnvironment"],
		},
		"serviceSupport": map[string]any{
			"serviceLevel": draft["serviceLevel"],
			"supportTicketsRaised": map[string]any{
				"ticketSystemLink": draft["ticketSystemLink"],
			},
		},
		"attachmentsNotes": map[string]any{
			"clientSpecificInstructions": draft["clientSpecificInstructions"],
		},
	}

	billing := map[string]any{
		"billingCycle":    draft["billingCycle"],
		"nextPaymentDate": draft["nextPaymentDate"],
		"setupCost": map[string]any{
			"paid": draft["setupCostPaid"] == formValueTrue,
		},
	}
	if amount, parseErr := decimal.NewFromString(draft["setupCostAmount"]); parseErr == nil {
		billing["setupCost"].(map[string]any)["amount"] = amount
	}
	if amount, parseErr := decimal.NewFromString(draft["maintenanceFeeAmount"]); parseErr == nil {
		billing["maintenanceFee"] = map[string]any{"amount": amount}
	}
	payload["billing"] = billing
	return payload
}

// AddClientNote appends an internal note to the client account.
func (handlers *Handlers) AddClientNote(requestContext *gin.Context) {
	clientID := requestContext.Param("id")
	detailPath := clientsListPath + "/" + clientID

	guardKey := "client-note-" + clientID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	_, noteErr := handlers.clients.AddInternalNote(
		requestContext.Request.Context(),
		clientID,
		requestContext.PostForm(formFieldNote),
		requestContext.PostForm(formFieldIsPrivate) == formValueTrue,
	)
	if noteErr != nil {
		handlers.failRequest(requestContext, noteErr, clientsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationNoteAdded)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// AddClientIssue records a new open issue on the client account.
func (handlers *Handlers) AddClientIssue(requestContext *gin.Context) {
	clientID := requestContext.Param("id")
	detailPath := clientsListPath + "/" + clientID

	guardKey := "client-issue-" + clientID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	_, issueErr := handlers.clients.AddOngoingIssue(
		requestContext.Request.Context(),
		clientID,
		requestContext.PostForm(formFieldIssue),
		requestContext.PostForm(formFieldPriority),
		requestContext.PostForm("assignedTo"),
	)
	if issueErr != nil {
		handlers.failRequest(requestContext, issueErr, clientsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationIssueReported)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// RecordClientPayment saves a payment against the client's billing section.
func (handlers *Handlers) RecordClientPayment(requestContext *gin.Context) {
	clientID := requestContext.Param("id")
	detailPath := clientsListPath + "/" + clientID

	guardKey := "client-payment-" + clientID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	payment := services.PaymentUpdate{}
	if amount, parseErr := decimal.NewFromString(requestContext.PostForm(formFieldAmount)); parseErr == nil {
		payment.Amount = &amount
	}
	if paymentDate, parseErr := time.Parse(inputDateLayout, requestContext.PostForm(formFieldPaymentDate)); parseErr == nil {
		payment.PaymentDate = &paymentDate
	}
	if method := requestContext.PostForm(formFieldPaymentMethod); method != "" {
		payment.PaymentMethod = &method
	}
	if nextDate, parseErr := time.Parse(inputDateLayout, requestContext.PostForm(formFieldNextPaymentDate)); parseErr == nil {
		payment.NextPaymentDate = &nextDate
	}

	_, paymentErr := handlers.clients.UpdatePayment(requestContext.Request.Context(), clientID, payment)
	if paymentErr != nil {
		handlers.failRequest(requestContext, paymentErr, clientsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationPaymentSaved)
	requestContext.Redirect(http.StatusFound, detailPath)
}
