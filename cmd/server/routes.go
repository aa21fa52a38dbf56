package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/console"
	"github.com/MarkoPoloResearchLab/admin_console/internal/session"
)

const (
	routeRoot      = "/"
	routeLogin     = console.LoginPath
	routeLogout    = "/logout"
	routeAppPrefix = "/app"

	routeDashboard   = "/dashboard"
	routeActivity    = "/activity"
	routeThemeToggle = "/theme/toggle"

	routeContacts          = "/contacts"
	routeContactByID       = "/contacts/:id"
	routeContactNotes      = "/contacts/:id/notes"
	routeContactDelete     = "/contacts/:id/delete"
	routeDemos             = "/demos"
	routeDemoByID          = "/demos/:id"
	routeDemoNotes         = "/demos/:id/notes"
	routeDemoDelete        = "/demos/:id/delete"
	routeClients           = "/clients"
	routeClientWizard      = "/clients/new"
	routeClientWizardDraft = "/clients/new/:draft"
	routeClientWizardStep  = "/clients/new/:draft/step/:step"
	routeClientByID        = "/clients/:id"
	routeClientNotes       = "/clients/:id/notes"
	routeClientIssues      = "/clients/:id/issues"
	routeClientPayment     = "/clients/:id/payment"
	routeAdmins            = "/admins"
	routeAdminNew          = "/admins/new"
	routeAdminByID         = "/admins/:id"
	routeAdminActive       = "/admins/:id/active"
	routeAdminDelete       = "/admins/:id/delete"
	routeOnboardings       = "/onboardings"
	routeOnboardingNew     = "/onboardings/new"
	routeOnboardingByID    = "/onboardings/:id"
	routeOnboardingWizard  = "/onboardings/:id/wizard"
	routeOnboardingStep    = "/onboardings/:id/wizard/step/:step"
	routeOnboardingStatus  = "/onboardings/:id/status"
	routeOnboardingNotes   = "/onboardings/:id/notes"
	routeOnboardingDelete  = "/onboardings/:id/delete"
	routeProfile           = "/profile"
	routeProfilePassword   = "/profile/password"

	corsOriginWildcard = "*"
	corsMaxAgeHours    = 12
)

// activityCORS allows any origin to poll the read-only busy indicator, for
// example from an operations status page.
func activityCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{corsOriginWildcard},
		AllowMethods: []string{http.MethodGet},
		MaxAge:       corsMaxAgeHours * time.Hour,
	})
}

// registerConsoleRoutes wires the login surface and the authenticated console
// pages onto the router.
func registerConsoleRoutes(router *gin.Engine, handlers *console.Handlers, sessionManager *session.Manager) {
	router.GET(routeRoot, func(requestContext *gin.Context) {
		requestContext.Redirect(http.StatusFound, routeLogin)
	})
	router.GET(routeLogin, handlers.ShowLogin)
	router.POST(routeLogin, handlers.SubmitLogin)
	router.POST(routeLogout, handlers.SubmitLogout)

	router.GET(routeAppPrefix+routeActivity, activityCORS(), handlers.Activity)

	authenticated := router.Group(routeAppPrefix)
	authenticated.Use(console.RequireSession(sessionManager))

	authenticated.GET(routeDashboard, handlers.ShowDashboard)
	authenticated.POST(routeThemeToggle, handlers.ToggleTheme)

	authenticated.GET(routeContacts, handlers.ListContacts)
	authenticated.GET(routeContactByID, handlers.ShowContact)
	authenticated.POST(routeContactByID, handlers.UpdateContact)
	authenticated.POST(routeContactNotes, handlers.AddContactNote)
	authenticated.POST(routeContactDelete, handlers.DeleteContact)

	authenticated.GET(routeDemos, handlers.ListDemos)
	authenticated.GET(routeDemoByID, handlers.ShowDemo)
	authenticated.POST(routeDemoByID, handlers.UpdateDemo)
	authenticated.POST(routeDemoNotes, handlers.AddDemoNote)
	authenticated.POST(routeDemoDelete, handlers.DeleteDemo)

	authenticated.GET(routeClients, handlers.ListClients)
	authenticated.GET(routeClientWizard, handlers.StartClientWizard)
	authenticated.GET(routeClientWizardDraft, handlers.ShowClientWizardStep)
	authenticated.POST(routeClientWizardStep, handlers.SubmitClientWizardStep)
	authenticated.GET(routeClientByID, handlers.ShowClient)
	authenticated.POST(routeClientNotes, handlers.AddClientNote)
	authenticated.POST(routeClientIssues, handlers.AddClientIssue)
	authenticated.POST(routeClientPayment, handlers.RecordClientPayment)

	authenticated.GET(routeAdmins, handlers.ListAdmins)
	authenticated.GET(routeAdminNew, handlers.ShowNewAdmin)
	authenticated.POST(routeAdmins, handlers.CreateAdmin)
	authenticated.GET(routeAdminByID, handlers.ShowAdmin)
	authenticated.POST(routeAdminByID, handlers.UpdateAdmin)
	authenticated.POST(routeAdminActive, handlers.ToggleAdminActive)
	authenticated.POST(routeAdminDelete, handlers.DeleteAdmin)

	authenticated.GET(routeOnboardings, handlers.ListOnboardings)
	authenticated.GET(routeOnboardingNew, handlers.StartOnboarding)
	authenticated.POST(routeOnboardings, handlers.CreateOnboarding)
	authenticated.GET(routeOnboardingByID, handlers.ShowOnboarding)
	authenticated.GET(routeOnboardingWizard, handlers.ShowOnboardingWizardStep)
	authenticated.POST(routeOnboardingStep, handlers.SubmitOnboardingWizardStep)
	authenticated.POST(routeOnboardingStatus, handlers.UpdateOnboardingStatus)
	authenticated.POST(routeOnboardingNotes, handlers.AddOnboardingNote)
	authenticated.POST(routeOnboardingDelete, handlers.DeleteOnboarding)

	authenticated.GET(routeProfile, handlers.ShowProfile)
	authenticated.POST(routeProfile, handlers.UpdateProfile)
	authenticated.POST(routeProfilePassword, handlers.ChangePassword)
}
