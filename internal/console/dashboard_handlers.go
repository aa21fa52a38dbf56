package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	pageNameDashboard = "dashboard.tmpl"
	titleDashboard    = "Dashboard"
)

type dashboardPageData struct {
	Stats       model.DashboardStats
	ClientStats model.ClientDashboardStats
}

// ShowDashboard renders the overview screen. The client aggregates are a
// separate endpoint; when that call fails the dashboard still renders with
// the contact and demo blocks.
func (handlers *Handlers) ShowDashboard(requestContext *gin.Context) {
	data := dashboardPageData{}
	stats, statsErr := handlers.dashboard.Stats(requestContext.Request.Context())
	if statsErr != nil {
		if backendFailureIsTerminal(statsErr) {
			handlers.failRequest(requestContext, statsErr, dashboardPath, notificationGenericLoadFailed)
			return
		}
		handlers.flashes.Error(requestContext, notificationGenericLoadFailed)
		handlers.render(requestContext, http.StatusOK, pageNameDashboard, titleDashboard, data)
		return
	}

	data.Stats = stats
	clientStats, clientStatsErr := handlers.clients.DashboardStats(requestContext.Request.Context())
	if clientStatsErr == nil {
		data.ClientStats = clientStats
	}

	handlers.render(requestContext, http.StatusOK, pageNameDashboard, titleDashboard, data)
}
