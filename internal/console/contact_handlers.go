package console

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	pageNameContactsList  = "contacts_list.tmpl"
	pageNameContactDetail = "contact_detail.tmpl"

	titleContacts = "Contact Inquiries"

	contactsListPath = "/app/contacts"

	defaultListPage  = 1
	defaultListLimit = 10

	formFieldStatus           = "status"
	formFieldPriority         = "priority"
	formFieldCustomerResponse = "customerResponse"
	formFieldCustomerFeedback = "customerFeedback"
	formFieldIssueSolved      = "issueSolved"
	formFieldNote             = "note"
	formValueTrue             = "true"
)

type contactsListPageData struct {
	Page  model.ContactPage
	Query model.ListQuery
}

type contactDetailPageData struct {
	Contact model.Contact
}

// parseListQuery reads the shared filter and pagination parameters from the
// request, applying the list defaults.
func parseListQuery(requestContext *gin.Context) model.ListQuery {
	page, pageErr := strconv.Atoi(requestContext.Query("page"))
	if pageErr != nil || page < 1 {
		page = defaultListPage
	}
	limit, limitErr := strconv.Atoi(requestContext.Query("limit"))
	if limitErr != nil || limit < 1 {
		limit = defaultListLimit
	}
	return model.ListQuery{
		Page:      page,
		Limit:     limit,
		Status:    requestContext.Query("status"),
		Search:    requestContext.Query("search"),
		SortBy:    requestContext.Query("sortBy"),
		SortOrder: requestContext.Query("sortOrder"),
	}
}

// ListContacts renders the contact inquiries table.
func (handlers *Handlers) ListContacts(requestContext *gin.Context) {
	query := parseListQuery(requestContext)
	page, listErr := handlers.contacts.List(requestContext.Request.Context(), query)
	if listErr != nil {
		handlers.failRequest(requestContext, listErr, dashboardPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameContactsList, titleContacts, contactsListPageData{
		Page:  page,
		Query: query,
	})
}

// ShowContact renders one inquiry with its handling form and notes.
func (handlers *Handlers) ShowContact(requestContext *gin.Context) {
	contact, getErr := handlers.contacts.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, contactsListPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameContactDetail, contact.Name, contactDetailPageData{Contact: contact})
}

// UpdateContact saves the handling form.
func (handlers *Handlers) UpdateContact(requestContext *gin.Context) {
	contactID := requestContext.Param("id")
	detailPath := contactsListPath + "/" + contactID

	guardKey := "contact-update-" + contactID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	status := requestContext.PostForm(formFieldStatus)
	priority := requestContext.PostForm(formFieldPriority)
	customerResponse := requestContext.PostForm(formFieldCustomerResponse)
	customerFeedback := requestContext.PostForm(formFieldCustomerFeedback)
	issueSolved := requestContext.PostForm(formFieldIssueSolved) == formValueTrue

	_, updateErr := handlers.contacts.Update(requestContext.Request.Context(), contactID, services.ContactUpdate{
		Status:           &status,
		Priority:         &priority,
		CustomerResponse: &customerResponse,
		CustomerFeedback: &customerFeedback,
		IssueSolved:      &issueSolved,
	})
	if updateErr != nil {
		handlers.failRequest(requestContext, updateErr, contactsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationChangesSaved)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// AddContactNote appends a staff note to the inquiry.
func (handlers *Handlers) AddContactNote(requestContext *gin.Context) {
	contactID := requestContext.Param("id")
	detailPath := contactsListPath + "/" + contactID

	guardKey := "contact-note-" + contactID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	_, noteErr := handlers.contacts.AddNote(requestContext.Request.Context(), contactID, requestContext.PostForm(formFieldNote))
	if noteErr != nil {
		handlers.failRequest(requestContext, noteErr, contactsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationNoteAdded)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// DeleteContact removes the inquiry and returns to the list.
func (handlers *Handlers) DeleteContact(requestContext *gin.Context) {
	contactID := requestContext.Param("id")
	guardKey := "contact-delete-" + contactID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, contactsListPath+"/"+contactID)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if deleteErr := handlers.contacts.Delete(requestContext.Request.Context(), contactID); deleteErr != nil {
		handlers.failRequest(requestContext, deleteErr, contactsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationRecordDeleted)
	requestContext.Redirect(http.StatusFound, contactsListPath)
}
