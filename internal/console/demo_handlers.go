package console

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	pageNameDemosList  = "demos_list.tmpl"
	pageNameDemoDetail = "demo_detail.tmpl"

	titleDemos = "Demo Requests"

	demosListPath = "/app/demos"

	formFieldDemoDate        = "demoDate"
	formFieldFollowUpDate    = "followUpDate"
	formFieldDemoNotes       = "demoNotes"
	formFieldConversionValue = "conversionValue"
)

type demosListPageData struct {
	Page  model.DemoPage
	Query model.DemoListQuery
}

type demoDetailPageData struct {
	Demo model.Demo
}

// ListDemos renders the demo requests table.
func (handlers *Handlers) ListDemos(requestContext *gin.Context) {
	query := model.DemoListQuery{
		ListQuery:    parseListQuery(requestContext),
		BusinessType: requestContext.Query("businessType"),
		Priority:     requestContext.Query("priority"),
	}
	page, listErr := handlers.demos.List(requestContext.Request.Context(), query)
	if listErr != nil {
		handlers.failRequest(requestContext, listErr, dashboardPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameDemosList, titleDemos, demosListPageData{
		Page:  page,
		Query: query,
	})
}

// ShowDemo renders one demo request with its scheduling form and notes.
func (handlers *Handlers) ShowDemo(requestContext *gin.Context) {
	demo, getErr := handlers.demos.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, demosListPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameDemoDetail, demo.Name, demoDetailPageData{Demo: demo})
}

// UpdateDemo saves the scheduling form.
func (handlers *Handlers) UpdateDemo(requestContext *gin.Context) {
	demoID := requestContext.Param("id")
	detailPath := demosListPath + "/" + demoID

	guardKey := "demo-update-" + demoID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	status := requestContext.PostForm(formFieldStatus)
	priority := requestContext.PostForm(formFieldPriority)
	demoNotes := requestContext.PostForm(formFieldDemoNotes)
	customerFeedback := requestContext.PostForm(formFieldCustomerFeedback)

	update := services.DemoUpdate{
		Status:           &status,
		Priority:         &priority,
		DemoNotes:        &demoNotes,
		CustomerFeedback: &customerFeedback,
	}
	if demoDate, parseErr := time.Parse(inputDateLayout, requestContext.PostForm(formFieldDemoDate)); parseErr == nil {
		update.DemoDate = &demoDate
	}
	if followUpDate, parseErr := time.Parse(inputDateLayout, requestContext.PostForm(formFieldFollowUpDate)); parseErr == nil {
		update.FollowUpDate = &followUpDate
	}
	if conversionValue, parseErr := decimal.NewFromString(requestContext.PostForm(formFieldConversionValue)); parseErr == nil {
		update.ConversionValue = &conversionValue
	}

	_, updateErr := handlers.demos.Update(requestContext.Request.Context(), demoID, update)
	if updateErr != nil {
		handlers.failRequest(requestContext, updateErr, demosListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationChangesSaved)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// AddDemoNote appends a staff note to the demo request.
func (handlers *Handlers) AddDemoNote(requestContext *gin.Context) {
	demoID := requestContext.Param("id")
	detailPath := demosListPath + "/" + demoID

	guardKey := "demo-note-" + demoID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, detailPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	_, noteErr := handlers.demos.AddNote(requestContext.Request.Context(), demoID, requestContext.PostForm(formFieldNote))
	if noteErr != nil {
		handlers.failRequest(requestContext, noteErr, demosListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationNoteAdded)
	requestContext.Redirect(http.StatusFound, detailPath)
}

// DeleteDemo removes the demo request and returns to the list.
func (handlers *Handlers) DeleteDemo(requestContext *gin.Context) {
	demoID := requestContext.Param("id")
	guardKey := "demo-delete-" + demoID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, demosListPath+"/"+demoID)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if deleteErr := handlers.demos.Delete(requestContext.Request.Context(), demoID); deleteErr != nil {
		handlers.failRequest(requestContext, deleteErr, demosListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationRecordDeleted)
	requestContext.Redirect(http.StatusFound, demosListPath)
}
