package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/loading"
)

const (
	// DefaultBaseURL is the backend API address used when none is configured.
	DefaultBaseURL = "http://localhost:5001/api"
	// DefaultRequestTimeout bounds any single backend request.
	DefaultRequestTimeout = 10 * time.Second

	headerNameAuthorization  = "Authorization"
	headerNameContentType    = "Content-Type"
	headerNameAccept         = "Accept"
	headerValueJSONContent   = "application/json"
	bearerCredentialPrefix   = "Bearer "
	logEventRequestFailed    = "backend_request_failed"
	logEventSessionExpired   = "backend_session_expired"
	logFieldRequestMethod    = "method"
	logFieldRequestPath      = "path"
	logFieldResponseStatus   = "status"
	errorMessageBuildRequest = "backend: build request"
	errorMessageEncodeBody   = "backend: encode request body"
	errorMessageReadResponse = "backend: read response"
	errorMessageDecodeData   = "backend: decode response data"
)

// CredentialStore supplies and clears the durable bearer credential.
type CredentialStore interface {
	Token() (string, bool)
	ClearToken()
}

// SessionExpiredFunc is invoked once per 401 response, after the credential
// has been cleared, so the navigation layer can send the operator to the
// login screen.
type SessionExpiredFunc func()

// Envelope is the backend's uniform response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []FieldError    `json:"errors"`
}

// Client performs every backend request on behalf of the console: it brackets
// the loading coordinator, attaches the stored bearer credential, decodes the
// response envelope, and enforces the global session-expiry policy.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	coordinator    *loading.Coordinator
	credentials    CredentialStore
	logger         *zap.Logger
	sessionExpired SessionExpiredFunc
}

// NewClient constructs a Client. The session-expired hook may be registered
// later through OnSessionExpired.
func NewClient(baseURL string, coordinator *loading.Coordinator, credentials CredentialStore, logger *zap.Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmedBaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if coordinator == nil {
		return nil, ErrMissingCoordinator
	}
	if credentials == nil {
		return nil, ErrMissingCredentials
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:     trimmedBaseURL,
		httpClient:  &http.Client{Timeout: DefaultRequestTimeout},
		coordinator: coordinator,
		credentials: credentials,
		logger:      logger,
	}, nil
}

// OnSessionExpired registers the hook invoked after any 401 response.
func (client *Client) OnSessionExpired(hook SessionExpiredFunc) {
	client.sessionExpired = hook
}

// Get performs a GET request. Query values are appended as given; use
// AppendQueryValue so empty parameters are omitted entirely.
func (client *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return client.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with an optional JSON body.
func (client *Client) Post(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with an optional JSON body.
func (client *Client) Put(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// AppendQueryValue adds the parameter only when the value is non-empty, so
// unset filters never reach the backend as empty strings.
func AppendQueryValue(query url.Values, parameterName string, parameterValue string) {
	trimmedValue := strings.TrimSpace(parameterValue)
	if trimmedValue == "" {
		return
	}
	query.Set(parameterName, trimmedValue)
}

func (client *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	requestURL := client.baseURL + path
	if len(query) > 0 {
		requestURL = requestURL + "?" + query.Encode()
	}

	var requestBody io.Reader
	if body != nil {
		encodedBody, encodeErr := json.Marshal(body)
		if encodeErr != nil {
			return fmt.Errorf("%s: %w", errorMessageEncodeBody, encodeErr)
		}
		requestBody = bytes.NewReader(encodedBody)
	}

	request, requestErr := http.NewRequestWithContext(ctx, method, requestURL, requestBody)
	if requestErr != nil {
		return fmt.Errorf("%s: %w", errorMessageBuildRequest, requestErr)
	}
	request.Header.Set(headerNameContentType, headerValueJSONContent)
	request.Header.Set(headerNameAccept, headerValueJSONContent)
	if token, tokenPresent := client.credentials.Token(); tokenPresent {
		request.Header.Set(headerNameAuthorization, bearerCredentialPrefix+token)
	}

	client.coordinator.Start()
	response, transportErr := client.httpClient.Do(request)
	if transportErr != nil {
		client.coordinator.Stop()
		client.logger.Warn(logEventRequestFailed,
			zap.String(logFieldRequestMethod, method),
			zap.String(logFieldRequestPath, path),
			zap.Error(transportErr),
		)
		return fmt.Errorf("%w: %v", ErrNetwork, transportErr)
	}
	defer func() {
		_ = response.Body.Close()
	}()
	defer client.coordinator.Stop()

	responseBody, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		return fmt.Errorf("%s: %w", errorMessageReadResponse, readErr)
	}

	if response.StatusCode == http.StatusUnauthorized {
		return client.handleSessionExpiry(method, path, responseBody)
	}

	var envelope Envelope
	envelopeDecodable := json.Unmarshal(responseBody, &envelope) == nil

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return client.apiErrorFromResponse(response.StatusCode, envelope, envelopeDecodable)
	}

	if envelopeDecodable && !envelope.Success {
		return client.apiErrorFromResponse(response.StatusCode, envelope, true)
	}

	if out == nil {
		return nil
	}
	if !envelopeDecodable || len(envelope.Data) == 0 {
		return fmt.Errorf("%s: empty envelope", errorMessageDecodeData)
	}
	if decodeErr := json.Unmarshal(envelope.Data, out); decodeErr != nil {
		return fmt.Errorf("%s: %w", errorMessageDecodeData, decodeErr)
	}
	return nil
}

// handleSessionExpiry implements the global 401 policy: the stored credential
// is cleared and the registered hook fires regardless of which endpoint
// produced the response.
func (client *Client) handleSessionExpiry(method string, path string, responseBody []byte) error {
	client.credentials.ClearToken()
	client.logger.Info(logEventSessionExpired,
		zap.String(logFieldRequestMethod, method),
		zap.String(logFieldRequestPath, path),
	)
	if client.sessionExpired != nil {
		client.sessionExpired()
	}

	serverMessage := errorMessageGenericFailure
	var envelope Envelope
	if json.Unmarshal(responseBody, &envelope) == nil && envelope.Message != "" {
		serverMessage = envelope.Message
	}
	return fmt.Errorf("%w: %s", ErrSessionExpired, serverMessage)
}

func (client *Client) apiErrorFromResponse(statusCode int, envelope Envelope, envelopeDecodable bool) error {
	serverMessage := errorMessageGenericFailure
	var fieldErrors []FieldError
	if envelopeDecodable {
		if envelope.Message != "" {
			serverMessage = envelope.Message
		}
		fieldErrors = envelope.Errors
	}
	return &APIError{
		StatusCode:  statusCode,
		Message:     serverMessage,
		FieldErrors: fieldErrors,
	}
}
