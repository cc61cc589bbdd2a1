package ai

// Request is the provider-agnostic completion request. Text-only messages are
// sent on the wire as a plain content string; messages carrying image parts
// use the multimodal content-part array.
type Request struct {
	Model          string
	Messages       []Message
	Temperature    *float32
	MaxTokens      int
	ResponseFormat string // "json_object" to enforce JSON output, empty otherwise
}

type Message struct {
	Role  string
	Parts []Part
}

// Part is either plain text or an image data URI, never both.
type Part struct {
	Text     string
	ImageURL string
}

func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

func (m Message) isTextOnly() bool {
	for _, p := range m.Parts {
		if p.ImageURL != "" {
			return false
		}
	}
	return true
}

// joinText concatenates the text parts of a message.
func (m Message) joinText() string {
	out := ""
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

const responseFormatJSON = "json_object"

// OpenAI-compatible wire types shared by the groq and openai backends.

type chatImageURL struct {
	URL string `json:"url"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    *float32            `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
	Stream         bool                `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func encodeChatRequest(req Request) chatRequest {
	messages := make([]chatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.isTextOnly() {
			messages = append(messages, chatMessage{Role: m.Role, Content: m.joinText()})
			continue
		}
		parts := make([]chatContentPart, 0, len(m.Parts))
		for _, p := range m.Parts {
			if p.ImageURL != "" {
				parts = append(parts, chatContentPart{Type: "image_url", ImageURL: &chatImageURL{URL: p.ImageURL}})
				continue
			}
			parts = append(parts, chatContentPart{Type: "text", Text: p.Text})
		}
		messages = append(messages, chatMessage{Role: m.Role, Content: parts})
	}
	out := chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}
	if req.ResponseFormat != "" {
		out.ResponseFormat = &chatResponseFormat{Type: req.ResponseFormat}
	}
	return out
}
