package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dlms/chatbot/domain"
	"github.com/dlms/chatbot/utils/log"
)

const (
	DetailConfigError   = "Server Configuration Error: API Token Missing"
	DetailInternalError = "Internal AI Service Error"
	DetailInvalidBody   = "Invalid request body"
)

// ChatReplier is the orchestrator as seen by the transport.
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	chat ChatReplier
}

type ChatRequest struct {
	Message *string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func NewChatHandler(chat ChatReplier) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Health check endpoint
func (h *ChatHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "active",
		"service": "DLMS Chatbot",
	})
}

// Chat answers one message using live course context.
func (h *ChatHandler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChatRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil || req.Message == nil {
		log.WithCtx(ctx).Debug("Rejecting chat request", zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, DetailInvalidBody)
	}

	reply, err := h.chat.Reply(ctx, *req.Message)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		log.WithCtx(ctx).Error("Generation credential is missing, check HF_TOKEN / GEMINI_API_KEY")
		return echo.NewHTTPError(http.StatusInternalServerError, DetailConfigError)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, DetailInternalError)
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// ErrorHandler renders every error as {"detail": "..."}. Errors that are not
// *echo.HTTPError never leak their text.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := DetailInternalError

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		} else {
			detail = http.StatusText(code)
		}
	} else {
		log.WithCtx(c.Request().Context()).Error("Unhandled error", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"detail": detail})
	}
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("Error writing error response", zap.Error(err))
	}
}
