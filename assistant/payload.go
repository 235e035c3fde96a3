// ABOUTME: Chat payload construction with optional fields and caller overrides
// ABOUTME: Only supplied fields are emitted; extra fields are merged last

package assistant

import (
	"maps"
	"reflect"
)

// ChatOption adds an optional field to a chat payload.
type ChatOption func(*chatParams)

type chatParams struct {
	fields map[string]any
	extra  map[string]any
}

// WithSystem sets the system prompt.
func WithSystem(system string) ChatOption {
	return func(p *chatParams) {
		p.fields["system"] = system
	}
}

// WithTools sets the tool definitions. A nil map leaves the field out.
func WithTools(tools map[string]Tool) ChatOption {
	return func(p *chatParams) {
		if tools != nil {
			p.fields["tools"] = tools
		}
	}
}

// WithAssistantMessageID sets the id the backend should use for the reply.
func WithAssistantMessageID(id string) ChatOption {
	return func(p *chatParams) {
		p.fields["unstable_assistantMessageId"] = id
	}
}

// WithRunConfig sets the run configuration. A nil map leaves the field out.
func WithRunConfig(runConfig map[string]any) ChatOption {
	return func(p *chatParams) {
		if runConfig != nil {
			p.fields["runConfig"] = runConfig
		}
	}
}

// WithState attaches arbitrary state. A nil value, including a typed nil map,
// slice, or pointer, leaves the field out.
func WithState(state any) ChatOption {
	return func(p *chatParams) {
		if !isNil(state) {
			p.fields["state"] = state
		}
	}
}

// WithField adds a caller-defined key. Extra keys are applied after every
// built-in field and may override threadId or messages.
func WithField(key string, value any) ChatOption {
	return func(p *chatParams) {
		p.extra[key] = value
	}
}

// WithFields adds several caller-defined keys, see WithField.
func WithFields(fields map[string]any) ChatOption {
	return func(p *chatParams) {
		maps.Copy(p.extra, fields)
	}
}

// BuildChatPayload returns the /api/chat body for a thread. It has no side effects.
func BuildChatPayload(threadID string, messages []Message, opts ...ChatOption) map[string]any {
	p := chatParams{
		fields: make(map[string]any),
		extra:  make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}

	if messages == nil {
		messages = []Message{}
	}

	payload := map[string]any{
		"threadId": threadID,
		"messages": messages,
	}
	maps.Copy(payload, p.fields)
	maps.Copy(payload, p.extra)

	return payload
}

// isNil reports whether v is nil or a nil map, slice, pointer, interface,
// func, or chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
