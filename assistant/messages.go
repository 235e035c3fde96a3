// ABOUTME: Message, content part, and tool values passed verbatim to the backend
// ABOUTME: Helpers build the part shapes the chat endpoint understands

package assistant

// Message is a role-tagged list of content parts. The client does not
// validate it; any JSON-serializable map is sent as is.
type Message map[string]any

// ContentPart is one element of a message's content.
type ContentPart map[string]any

// Tool describes a callable capability, keyed by name in the tools map.
type Tool map[string]any

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// NewMessage builds a message with the given role and parts.
func NewMessage(role string, parts ...ContentPart) Message {
	if parts == nil {
		parts = []ContentPart{}
	}
	return Message{
		"role":    role,
		"content": parts,
	}
}

// UserMessage builds a user message.
func UserMessage(parts ...ContentPart) Message {
	return NewMessage(RoleUser, parts...)
}

// AssistantMessage builds an assistant message.
func AssistantMessage(parts ...ContentPart) Message {
	return NewMessage(RoleAssistant, parts...)
}

// SystemMessage builds a system message holding a single text part.
func SystemMessage(text string) Message {
	return NewMessage(RoleSystem, TextPart(text))
}

// TextPart is a plain text part.
func TextPart(text string) ContentPart {
	return ContentPart{"type": "text", "text": text}
}

// ToolCallPart records a tool invocation made by the assistant.
func ToolCallPart(toolCallID, toolName string, args map[string]any) ContentPart {
	if args == nil {
		args = map[string]any{}
	}
	return ContentPart{
		"type":       "tool-call",
		"toolCallId": toolCallID,
		"toolName":   toolName,
		"args":       args,
	}
}

// ImagePart references an image by URL or data URI.
func ImagePart(image string) ContentPart {
	return ContentPart{"type": "image", "image": image}
}

// FilePart references a file by URL or data URI with its MIME type.
func FilePart(data, mimeType string) ContentPart {
	return ContentPart{"type": "file", "data": data, "mimeType": mimeType}
}
