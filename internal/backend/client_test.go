package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/loading"
)

const (
	testTokenValue           = "stored-token-value"
	testBearerHeaderValue    = "Bearer stored-token-value"
	testServerMessageValue   = "Invalid credentials"
	testResourcePath         = "/contact"
	testSuccessBodyJSON      = `{"success":true,"data":{"value":"ok"}}`
	testUnauthorizedBodyJSON = `{"success":false,"message":"Session expired"}`
	testFailureBodyJSON      = `{"success":false,"message":"Invalid credentials"}`
)

type memoryCredentialStore struct {
	mutex        sync.Mutex
	token        string
	tokenPresent bool
}

func (store *memoryCredentialStore) Token() (string, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.token, store.tokenPresent
}

func (store *memoryCredentialStore) ClearToken() {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.token = ""
	store.tokenPresent = false
}

func (store *memoryCredentialStore) setToken(token string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.token = token
	store.tokenPresent = true
}

func newTestClient(testingT *testing.T, handler http.Handler, credentials backend.CredentialStore) (*backend.Client, *loading.Coordinator, *httptest.Server) {
	testingT.Helper()

	server := httptest.NewServer(handler)
	testingT.Cleanup(server.Close)

	coordinator := loading.NewCoordinator()
	client, clientErr := backend.NewClient(server.URL, coordinator, credentials, zap.NewNop())
	require.NoError(testingT, clientErr)
	return client, coordinator, server
}

func TestClientAttachesStoredBearerCredential(testingT *testing.T) {
	credentials := &memoryCredentialStore{}
	credentials.setToken(testTokenValue)

	var observedHeader string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedHeader = request.Header.Get("Authorization")
		_, _ = writer.Write([]byte(testSuccessBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, credentials)

	require.NoError(testingT, client.Get(context.Background(), testResourcePath, nil, nil))
	require.Equal(testingT, testBearerHeaderValue, observedHeader)
}

func TestClientOmitsCredentialHeaderWithoutToken(testingT *testing.T) {
	var observedHeader string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedHeader = request.Header.Get("Authorization")
		_, _ = writer.Write([]byte(testSuccessBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	require.NoError(testingT, client.Get(context.Background(), testResourcePath, nil, nil))
	require.Empty(testingT, observedHeader)
}

func TestClientClearsCredentialOnUnauthorizedResponse(testingT *testing.T) {
	credentials := &memoryCredentialStore{}
	credentials.setToken(testTokenValue)

	var observedHeaders []string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedHeaders = append(observedHeaders, request.Header.Get("Authorization"))
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(testUnauthorizedBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, credentials)

	hookInvocations := 0
	client.OnSessionExpired(func() {
		hookInvocations++
	})

	firstErr := client.Get(context.Background(), testResourcePath, nil, nil)
	require.ErrorIs(testingT, firstErr, backend.ErrSessionExpired)
	require.Equal(testingT, 1, hookInvocations)

	_, tokenPresent := credentials.Token()
	require.False(testingT, tokenPresent)

	secondErr := client.Get(context.Background(), testResourcePath, nil, nil)
	require.ErrorIs(testingT, secondErr, backend.ErrSessionExpired)
	require.Len(testingT, observedHeaders, 2)
	require.Equal(testingT, testBearerHeaderValue, observedHeaders[0])
	require.Empty(testingT, observedHeaders[1])
}

func TestClientBracketsCoordinatorAroundRequests(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(testSuccessBodyJSON))
	})
	client, coordinator, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	var observedCounts []int
	unsubscribe := coordinator.Subscribe(func(outstandingCount int) {
		observedCounts = append(observedCounts, outstandingCount)
	})
	defer unsubscribe()

	require.NoError(testingT, client.Get(context.Background(), testResourcePath, nil, nil))
	require.Equal(testingT, []int{0, 1, 0}, observedCounts)
	require.Equal(testingT, 0, coordinator.Count())
}

func TestClientReleasesCoordinatorOnTransportFailure(testingT *testing.T) {
	client, coordinator, server := newTestClient(testingT, http.NotFoundHandler(), &memoryCredentialStore{})
	server.Close()

	requestErr := client.Get(context.Background(), testResourcePath, nil, nil)
	require.ErrorIs(testingT, requestErr, backend.ErrNetwork)
	require.Equal(testingT, 0, coordinator.Count())
}

func TestClientReleasesCoordinatorOnCancelledContext(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-request.Context().Done()
	})
	client, coordinator, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	cancelledContext, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	requestErr := client.Get(cancelledContext, testResourcePath, nil, nil)
	require.ErrorIs(testingT, requestErr, backend.ErrNetwork)
	require.Equal(testingT, 0, coordinator.Count())
}

func TestClientSurfacesServerMessageForFailedEnvelope(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(testFailureBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	requestErr := client.Get(context.Background(), testResourcePath, nil, nil)
	require.Error(testingT, requestErr)
	require.Equal(testingT, testServerMessageValue, backend.MessageFromError(requestErr, "fallback"))
}

func TestClientTreatsSuccessFalseEnvelopeAsError(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(testFailureBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	var out struct{}
	requestErr := client.Get(context.Background(), testResourcePath, nil, &out)
	require.Error(testingT, requestErr)
	require.Equal(testingT, testServerMessageValue, backend.MessageFromError(requestErr, "fallback"))
}

func TestClientDecodesEnvelopeData(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(testSuccessBodyJSON))
	})
	client, _, _ := newTestClient(testingT, handler, &memoryCredentialStore{})

	var out struct {
		Value string `json:"value"`
	}
	require.NoError(testingT, client.Get(context.Background(), testResourcePath, nil, &out))
	require.Equal(testingT, "ok", out.Value)
}

func TestAppendQueryValueOmitsEmptyParameters(testingT *testing.T) {
	query := url.Values{}
	backend.AppendQueryValue(query, "status", "new")
	backend.AppendQueryValue(query, "search", "")
	backend.AppendQueryValue(query, "businessType", "   ")

	require.Equal(testingT, "new", query.Get("status"))
	_, searchPresent := query["search"]
	require.False(testingT, searchPresent)
	_, businessTypePresent := query["businessType"]
	require.False(testingT, businessTypePresent)
}
