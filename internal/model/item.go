// Package model defines data structures used throughout the application.
package model

// Item encoding markers. Items are stored as plain strings so that every
// piece of structure lives in the text itself.
const (
	AuthorSeparator    = " - "
	SupporterSeparator = ", "
	CompletedMarker    = "~"
)

// NewItem renders the stored form of a freshly added item.
func NewItem(text, author string) string {
	return text + AuthorSeparator + author
}

// CompleteItem wraps an item in strikethrough markers.
func CompleteItem(item string) string {
	return CompletedMarker + item + CompletedMarker
}

// SupportItem appends a supporter's name to an item.
func SupportItem(item, supporter string) string {
	return item + SupporterSeparator + supporter
}

// ResponseTypeInChannel makes the reply visible to the whole channel.
const ResponseTypeInChannel = "in_channel"

// CommandResponse is the body returned for every handled command.
type CommandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// NewCommandResponse creates an in-channel response carrying text.
func NewCommandResponse(text string) CommandResponse {
	return CommandResponse{
		ResponseType: ResponseTypeInChannel,
		Text:         text,
	}
}

// CommandRequest holds the fields posted by the chat platform.
type CommandRequest struct {
	Command     string `json:"command"`
	TriggerWord string `json:"trigger_word"`
	Text        string `json:"text"`
	ChannelID   string `json:"channel_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
}

// Trigger returns the command token the user typed, preferring the slash
// command field over an outgoing-webhook trigger word.
func (r *CommandRequest) Trigger() string {
	if r.Command != "" {
		return r.Command
	}
	return r.TriggerWord
}

// APIResponse is a generic wrapper for API responses.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a successful API response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
