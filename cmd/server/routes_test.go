package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/console"
	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
	"github.com/MarkoPoloResearchLab/admin_console/internal/testutil"
)

const (
	testSessionSecret     = "routes-test-secret"
	testOperatorEmail     = "root@example.com"
	testOperatorPassword  = "correct-horse"
	testLoginResponseBody = `{"success":true,"data":{"token":"session-token","admin":{"_id":"admin-1","username":"root","email":"root@example.com","role":"super_admin","isActive":true}}}`
	testGenericBody       = `{"success":true,"data":{}}`
	testFailedLoginBody   = `{"success":false,"message":"Invalid credentials"}`
)

func newConsoleRouter(testingT *testing.T, backendHandler http.Handler) *gin.Engine {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	backendServer := httptest.NewServer(backendHandler)
	testingT.Cleanup(backendServer.Close)

	sqliteDatabase := testutil.NewSQLiteTestDatabase(testingT)
	database, openErr := state.OpenDatabase(sqliteDatabase.Configuration())
	require.NoError(testingT, openErr)
	require.NoError(testingT, state.AutoMigrate(database))

	handlers, handlersErr := buildConsoleHandlers(ConsoleConfig{
		ApplicationAddress: ":0",
		BackendBaseURL:     backendServer.URL,
		StateDatabasePath:  sqliteDatabase.DataSourceName(),
		SessionSecret:      testSessionSecret,
	}, database, zap.NewNop())
	require.NoError(testingT, handlersErr)

	router := gin.New()
	registerConsoleRoutes(router, handlers, handlers.SessionManager())
	return router
}

func fakeBackend(testingT *testing.T) http.Handler {
	testingT.Helper()
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		if request.Method == http.MethodPost && request.URL.Path == "/auth/login" {
			_, _ = responseWriter.Write([]byte(testLoginResponseBody))
			return
		}
		_, _ = responseWriter.Write([]byte(testGenericBody))
	})
}

func signInOperator(testingT *testing.T, router *gin.Engine) {
	testingT.Helper()

	loginForm := url.Values{}
	loginForm.Set("email", testOperatorEmail)
	loginForm.Set("password", testOperatorPassword)
	loginRequest := httptest.NewRequest(http.MethodPost, console.LoginPath, strings.NewReader(loginForm.Encode()))
	loginRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginRecorder := httptest.NewRecorder()
	router.ServeHTTP(loginRecorder, loginRequest)
	require.Equal(testingT, http.StatusFound, loginRecorder.Code)
}

func TestRootRedirectsToLogin(testingT *testing.T) {
	router := newConsoleRouter(testingT, fakeBackend(testingT))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, console.LoginPath, recorder.Header().Get("Location"))
}

func TestDashboardWithoutSessionRedirectsToLogin(testingT *testing.T) {
	router := newConsoleRouter(testingT, fakeBackend(testingT))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))

	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, console.LoginPath, recorder.Header().Get("Location"))
}

func TestLoginThenDashboardRendersConsole(testingT *testing.T) {
	router := newConsoleRouter(testingT, fakeBackend(testingT))

	loginForm := url.Values{}
	loginForm.Set("email", testOperatorEmail)
	loginForm.Set("password", testOperatorPassword)
	loginRequest := httptest.NewRequest(http.MethodPost, console.LoginPath, strings.NewReader(loginForm.Encode()))
	loginRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginRecorder := httptest.NewRecorder()
	router.ServeHTTP(loginRecorder, loginRequest)

	require.Equal(testingT, http.StatusFound, loginRecorder.Code)
	require.Equal(testingT, "/app/dashboard", loginRecorder.Header().Get("Location"))

	dashboardRecorder := httptest.NewRecorder()
	router.ServeHTTP(dashboardRecorder, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))

	require.Equal(testingT, http.StatusOK, dashboardRecorder.Code)
	require.Contains(testingT, dashboardRecorder.Body.String(), "Dashboard")
}

func TestActivityEndpointAllowsCrossOriginPolling(testingT *testing.T) {
	router := newConsoleRouter(testingT, fakeBackend(testingT))

	request := httptest.NewRequest(http.MethodGet, "/app/activity", nil)
	request.Header.Set("Origin", "http://status.example")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Equal(testingT, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(testingT, recorder.Body.String(), `"busy"`)
}

func TestOnboardingWizardStartCreatesDraftAndAdvances(testingT *testing.T) {
	const createdOnboardingBody = `{"success":true,"data":{"_id":"onboarding-7","status":"Draft","personalDetails":{"name":"Asha Rao"}}}`

	router := newConsoleRouter(testingT, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		switch {
		case request.Method == http.MethodPost && request.URL.Path == "/auth/login":
			_, _ = responseWriter.Write([]byte(testLoginResponseBody))
		case request.Method == http.MethodGet && request.URL.Path == "/onboarding/districts":
			_, _ = responseWriter.Write([]byte(`{"success":true,"data":["North","South"]}`))
		case request.Method == http.MethodPost && request.URL.Path == "/onboarding":
			_, _ = responseWriter.Write([]byte(createdOnboardingBody))
		default:
			_, _ = responseWriter.Write([]byte(testGenericBody))
		}
	}))
	signInOperator(testingT, router)

	startRecorder := httptest.NewRecorder()
	router.ServeHTTP(startRecorder, httptest.NewRequest(http.MethodGet, "/app/onboardings/new", nil))
	require.Equal(testingT, http.StatusOK, startRecorder.Code)
	require.Contains(testingT, startRecorder.Body.String(), `action="/app/onboardings"`)

	createForm := url.Values{}
	createForm.Set("name", "Asha Rao")
	createForm.Set("fatherName", "Vikram Rao")
	createForm.Set("address", "12 Lake Road")
	createForm.Set("state", "Karnataka")
	createForm.Set("district", "North")
	createForm.Set("phoneNumber1", "9000000001")
	createForm.Set("nomineeName", "Meera Rao")
	createRequest := httptest.NewRequest(http.MethodPost, "/app/onboardings", strings.NewReader(createForm.Encode()))
	createRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	createRecorder := httptest.NewRecorder()
	router.ServeHTTP(createRecorder, createRequest)
	require.Equal(testingT, http.StatusFound, createRecorder.Code)
	require.Equal(testingT, "/app/onboardings/onboarding-7/wizard?step=2", createRecorder.Header().Get("Location"))
}

func TestOnboardingWizardFlagsDistrictLoadFailure(testingT *testing.T) {
	router := newConsoleRouter(testingT, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		switch {
		case request.Method == http.MethodPost && request.URL.Path == "/auth/login":
			_, _ = responseWriter.Write([]byte(testLoginResponseBody))
		case request.Method == http.MethodGet && request.URL.Path == "/onboarding/districts":
			responseWriter.WriteHeader(http.StatusInternalServerError)
			_, _ = responseWriter.Write([]byte(`{"success":false,"message":"districts unavailable"}`))
		default:
			_, _ = responseWriter.Write([]byte(testGenericBody))
		}
	}))
	signInOperator(testingT, router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/app/onboardings/new", nil))

	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Contains(testingT, recorder.Body.String(), "Failed to load data")
	require.Contains(testingT, recorder.Body.String(), "Personal details")
}

func TestConcurrentContactNoteSubmissionsAreRejectedWhileInFlight(testingT *testing.T) {
	noteStarted := make(chan struct{})
	releaseNote := make(chan struct{})
	var noteCallCount atomic.Int64

	router := newConsoleRouter(testingT, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		if request.Method == http.MethodPost && request.URL.Path == "/auth/login" {
			_, _ = responseWriter.Write([]byte(testLoginResponseBody))
			return
		}
		if request.Method == http.MethodPost && strings.HasSuffix(request.URL.Path, "/notes") {
			if noteCallCount.Add(1) == 1 {
				close(noteStarted)
				<-releaseNote
			}
		}
		_, _ = responseWriter.Write([]byte(testGenericBody))
	}))
	signInOperator(testingT, router)

	postNote := func(recorder *httptest.ResponseRecorder) {
		noteForm := url.Values{}
		noteForm.Set("note", "Follow up on pricing")
		request := httptest.NewRequest(http.MethodPost, "/app/contacts/contact-9/notes", strings.NewReader(noteForm.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		router.ServeHTTP(recorder, request)
	}

	firstRecorder := httptest.NewRecorder()
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		postNote(firstRecorder)
	}()

	<-noteStarted
	secondRecorder := httptest.NewRecorder()
	postNote(secondRecorder)
	require.Equal(testingT, http.StatusFound, secondRecorder.Code)
	require.Equal(testingT, "/app/contacts/contact-9", secondRecorder.Header().Get("Location"))
	require.Equal(testingT, int64(1), noteCallCount.Load())

	close(releaseNote)
	<-firstDone
	require.Equal(testingT, http.StatusFound, firstRecorder.Code)
	require.Equal(testingT, "/app/contacts/contact-9", firstRecorder.Header().Get("Location"))
}

func TestFailedLoginRendersSignInWithUnauthorizedStatus(testingT *testing.T) {
	router := newConsoleRouter(testingT, http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		responseWriter.WriteHeader(http.StatusUnauthorized)
		_, _ = responseWriter.Write([]byte(testFailedLoginBody))
	}))

	loginForm := url.Values{}
	loginForm.Set("email", testOperatorEmail)
	loginForm.Set("password", "wrong")
	loginRequest := httptest.NewRequest(http.MethodPost, console.LoginPath, strings.NewReader(loginForm.Encode()))
	loginRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, loginRequest)

	require.Equal(testingT, http.StatusUnauthorized, recorder.Code)
	require.Contains(testingT, recorder.Body.String(), testOperatorEmail)
}
