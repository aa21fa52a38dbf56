package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/theme"
)

const (
	jsonKeyBusy        = "busy"
	jsonKeyActivityNum = "count"
)

// Activity reports whether backend calls are outstanding so the overlay can
// show or hide.
func (handlers *Handlers) Activity(requestContext *gin.Context) {
	outstanding := handlers.coordinator.Count()
	requestContext.JSON(http.StatusOK, gin.H{
		jsonKeyBusy:        outstanding > 0,
		jsonKeyActivityNum: outstanding,
	})
}

// ToggleTheme flips the display mode, persists it, and returns to the page
// the toggle was pressed on.
func (handlers *Handlers) ToggleTheme(requestContext *gin.Context) {
	handlers.themeManager.Toggle(requestContext.GetHeader(theme.PreferenceHintHeaderName))
	referer := requestContext.Request.Referer()
	if referer == "" {
		referer = dashboardPath
	}
	requestContext.Redirect(http.StatusFound, referer)
}
