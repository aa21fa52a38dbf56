package console

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	flashSessionName = "console_flash"
	flashKindSuccess = "success"
	flashKindError   = "error"

	logEventLoadFlashSession = "load_flash_session"
	logEventSaveFlashSession = "save_flash_session"
)

// FlashMessage is one notification queued for the next rendered page.
type FlashMessage struct {
	Kind string
	Text string
}

func init() {
	gob.Register(FlashMessage{})
}

// FlashStore queues notifications in a cookie session so they survive the
// redirect after a form post. Each message renders exactly once.
type FlashStore struct {
	logger       *zap.Logger
	sessionStore *sessions.CookieStore
}

// NewFlashStore constructs a FlashStore backed by a cookie session keyed
// with the given secret.
func NewFlashStore(sessionSecret string, logger *zap.Logger) *FlashStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{logger: logger, sessionStore: cookieStore}
}

// Success queues a success notification.
func (store *FlashStore) Success(requestContext *gin.Context, text string) {
	store.add(requestContext, flashKindSuccess, text)
}

// Error queues an error notification.
func (store *FlashStore) Error(requestContext *gin.Context, text string) {
	store.add(requestContext, flashKindError, text)
}

// Consume drains and returns the queued notifications.
func (store *FlashStore) Consume(requestContext *gin.Context) []FlashMessage {
	flashSession, sessionErr := store.sessionStore.Get(requestContext.Request, flashSessionName)
	if sessionErr != nil {
		store.logger.Warn(logEventLoadFlashSession, zap.Error(sessionErr))
		return nil
	}

	rawFlashes := flashSession.Flashes()
	if len(rawFlashes) == 0 {
		return nil
	}
	if saveErr := flashSession.Save(requestContext.Request, requestContext.Writer); saveErr != nil {
		store.logger.Warn(logEventSaveFlashSession, zap.Error(saveErr))
	}

	messages := make([]FlashMessage, 0, len(rawFlashes))
	for _, rawFlash := range rawFlashes {
		message, ok := rawFlash.(FlashMessage)
		if !ok {
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

func (store *FlashStore) add(requestContext *gin.Context, kind string, text string) {
	flashSession, sessionErr := store.sessionStore.Get(requestContext.Request, flashSessionName)
	if sessionErr != nil {
		store.logger.Warn(logEventLoadFlashSession, zap.Error(sessionErr))
		return
	}
	flashSession.AddFlash(FlashMessage{Kind: kind, Text: text})
	if saveErr := flashSession.Save(requestContext.Request, requestContext.Writer); saveErr != nil {
		store.logger.Warn(logEventSaveFlashSession, zap.Error(saveErr))
	}
}
