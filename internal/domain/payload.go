package domain

import "encoding/json"

// Assist backend wire contract. Field names (`type`, `data`, `message`,
// `responses`) must stay as-is to remain compatible with the backend.

// AssistAction is the request discriminator for the assist backend.
type AssistAction string

const (
	AssistActionQuery              AssistAction = "query"
	AssistActionAnalyzeImage       AssistAction = "analyze_image"
	AssistActionListKnowledgeBases AssistAction = "list_knowledge_bases"
)

// AssistRequest is the JSON body sent to the assist backend.
type AssistRequest struct {
	Action        AssistAction `json:"action"`
	Query         string       `json:"query,omitempty"`
	ImageData     string       `json:"image_data,omitempty"`
	KnowledgeBase string       `json:"knowledge_base,omitempty"`
	VesselID      string       `json:"vessel_id,omitempty"`
}

// PayloadType is the tagged-union discriminator of a response payload.
type PayloadType string

const (
	PayloadInfoMessage   PayloadType = "info_message"
	PayloadChecklist     PayloadType = "checklist"
	PayloadSelection     PayloadType = "selection"
	PayloadMultiResponse PayloadType = "multi_response"
)

// ResponsePayload is a tagged-union payload returned by the assist backend.
// Data's shape depends on Type; Message and Responses are fallback fields
// some backend variants emit at the top level.
type ResponsePayload struct {
	Type      PayloadType       `json:"type"`
	Data      json.RawMessage   `json:"data,omitempty"`
	Message   string            `json:"message,omitempty"`
	Responses []ResponsePayload `json:"responses,omitempty"`
}

// QueryResponse is the assist backend's response envelope.
type QueryResponse struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Answer    string           `json:"answer,omitempty"`
	Response  *ResponsePayload `json:"response,omitempty"`
	Sources   []Source         `json:"sources,omitempty"`
	LatencyMs int64            `json:"latency_ms,omitempty"`
}

// Source is a P&ID or manual citation attached to an assist answer.
type Source struct {
	Title string `json:"title"`
	Ref   string `json:"ref,omitempty"`
	Page  int    `json:"page,omitempty"`
}

// InfoMessageData is the data shape for type "info_message".
type InfoMessageData struct {
	Title   string   `json:"title,omitempty"`
	Message string   `json:"message,omitempty"`
	Text    string   `json:"text,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ChecklistItem is one step of a checklist payload.
type ChecklistItem struct {
	Step   string `json:"step"`
	Detail string `json:"detail,omitempty"`
}

// ChecklistData is the data shape for type "checklist".
type ChecklistData struct {
	Title string          `json:"title,omitempty"`
	Items []ChecklistItem `json:"items"`
}

// SelectionOption is one option of a selection payload. The display label
// falls back through Title -> Label -> ID.
type SelectionOption struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// SelectionData is the data shape for type "selection".
type SelectionData struct {
	Title    string            `json:"title,omitempty"`
	Question string            `json:"question,omitempty"`
	Options  []SelectionOption `json:"options"`
}

// MultiResponseData is the data shape for type "multi_response" when the
// nested list lives inside the data object.
type MultiResponseData struct {
	Responses []ResponsePayload `json:"responses"`
}
