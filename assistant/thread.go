// ABOUTME: Per-thread handle that builds chat and cancel requests
// ABOUTME: Routes payloads through the owning Client in sync or async mode

package assistant

import (
	"context"
	"net/http"
)

const (
	chatPath   = "/api/chat"
	cancelPath = "/api/cancel"
)

// Thread addresses one server-side conversation. It holds no resources and
// never needs closing.
type Thread struct {
	client *Client
	id     string
}

// ID returns the thread identifier.
func (t *Thread) ID() string {
	return t.id
}

// Chat posts messages to /api/chat and waits for the response.
func (t *Thread) Chat(ctx context.Context, messages []Message, opts ...ChatOption) (*http.Response, error) {
	payload := BuildChatPayload(t.id, messages, opts...)
	return t.client.Request(ctx, http.MethodPost, chatPath, payload, nil)
}

// ChatAsync posts messages to /api/chat without blocking.
func (t *Thread) ChatAsync(ctx context.Context, messages []Message, opts ...ChatOption) <-chan Result {
	payload := BuildChatPayload(t.id, messages, opts...)
	return t.client.RequestAsync(ctx, http.MethodPost, chatPath, payload, nil)
}

// Cancel asks the backend to stop the current run of this thread.
func (t *Thread) Cancel(ctx context.Context) (*http.Response, error) {
	return t.client.Request(ctx, http.MethodPost, cancelPath, t.cancelPayload(), nil)
}

// CancelAsync is the non-blocking form of Cancel.
func (t *Thread) CancelAsync(ctx context.Context) <-chan Result {
	return t.client.RequestAsync(ctx, http.MethodPost, cancelPath, t.cancelPayload(), nil)
}

func (t *Thread) cancelPayload() map[string]any {
	return map[string]any{"threadId": t.id}
}
