package catalog

import (
	"context"
	"errors"
	"net"

	"github.com/dlms/chatbot/domain"
)

// classifyTransport sorts an error returned by http.Client.Do.
func classifyTransport(err error) domain.FetchKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchTimeout
	}
	if errors.Is(err, context.Canceled) {
		return domain.FetchCanceled
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.FetchTimeout
	}
	return domain.FetchNetwork
}

func statusKind(code int) domain.FetchKind {
	if code >= 500 {
		return domain.FetchUpstream5xx
	}
	return domain.FetchUpstream4xx
}
