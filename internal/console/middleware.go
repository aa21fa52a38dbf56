package console

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/session"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"

	requestIDHeaderName = "X-Request-ID"

	logEventHTTP      = "http"
	logFieldMethod    = "method"
	logFieldPath      = "path"
	logFieldStatus    = "status"
	logFieldDuration  = "dur"
	logFieldClientIP  = "ip"
	logFieldUserAgent = "ua"
	logFieldRequestID = "request_id"
)

// RequestLogger logs one line per completed request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(requestContext *gin.Context) {
		start := time.Now()
		requestContext.Next()
		logger.Info(logEventHTTP,
			zap.String(logFieldMethod, requestContext.Request.Method),
			zap.String(logFieldPath, requestContext.Request.URL.Path),
			zap.Int(logFieldStatus, requestContext.Writer.Status()),
			zap.Duration(logFieldDuration, time.Since(start)),
			zap.String(logFieldClientIP, requestContext.ClientIP()),
			zap.String(logFieldUserAgent, requestContext.Request.UserAgent()),
			zap.String(logFieldRequestID, requestContext.Writer.Header().Get(requestIDHeaderName)),
		)
	}
}

// RequestID stamps every response with a correlation identifier, honoring one
// supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(requestContext *gin.Context) {
		requestID := requestContext.GetHeader(requestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		requestContext.Writer.Header().Set(requestIDHeaderName, requestID)
		requestContext.Next()
	}
}

// RequireSession gates console screens behind an authenticated backend
// session. When a stored token exists but no identity is loaded yet, the
// session is restored once before deciding.
func RequireSession(sessionManager *session.Manager) gin.HandlerFunc {
	return func(requestContext *gin.Context) {
		if !sessionManager.IsAuthenticated() {
			sessionManager.Restore(requestContext.Request.Context())
		}
		if !sessionManager.IsAuthenticated() {
			requestContext.Redirect(http.StatusFound, LoginPath)
			requestContext.Abort()
			return
		}
		requestContext.Next()
	}
}

// PendingNotifications buffers session-manager notifications until a request
// handler drains them into flashes. It satisfies the session manager's
// Notifier contract.
type PendingNotifications struct {
	mutex    sync.Mutex
	messages []FlashMessage
}

// NewPendingNotifications constructs an empty buffer.
func NewPendingNotifications() *PendingNotifications {
	return &PendingNotifications{}
}

// Success queues a success notification.
func (pending *PendingNotifications) Success(message string) {
	pending.append(flashKindSuccess, message)
}

// Error queues an error notification.
func (pending *PendingNotifications) Error(message string) {
	pending.append(flashKindError, message)
}

func (pending *PendingNotifications) append(kind string, message string) {
	pending.mutex.Lock()
	defer pending.mutex.Unlock()
	pending.messages = append(pending.messages, FlashMessage{Kind: kind, Text: message})
}

// Drain returns the buffered notifications and empties the buffer.
func (pending *PendingNotifications) Drain() []FlashMessage {
	pending.mutex.Lock()
	defer pending.mutex.Unlock()
	drained := pending.messages
	pending.messages = nil
	return drained
}
