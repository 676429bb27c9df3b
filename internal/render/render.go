// Package render converts assist-backend response payloads into chat-panel
// HTML. Rendering is total: any well-formed payload produces a non-empty
// result, never a panic. All interpolated text is HTML-escaped.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/harborgrid/gridiq/internal/domain"
)

// Render maps a query response to chat HTML. Dispatch priority: failure,
// plain-text answer, typed payload, then a neutral placeholder.
func Render(resp *domain.QueryResponse) string {
	if resp == nil {
		return renderPlaceholder()
	}
	if !resp.Success {
		return renderError(resp.Error)
	}
	if resp.Answer != "" {
		return `<div class="bubble bubble-answer">` + FormatText(resp.Answer) + `</div>`
	}
	if resp.Response != nil {
		return renderPayload(*resp.Response)
	}
	return renderPlaceholder()
}

func renderError(message string) string {
	if message == "" {
		message = "The assistant could not process this request."
	}
	return `<div class="bubble bubble-error">` + html.EscapeString(message) + `</div>`
}

func renderPlaceholder() string {
	return `<div class="bubble bubble-empty">No response received.</div>`
}

func renderPayload(p domain.ResponsePayload) string {
	switch p.Type {
	case domain.PayloadInfoMessage:
		return renderInfoMessage(p)
	case domain.PayloadChecklist:
		return renderChecklist(p)
	case domain.PayloadSelection:
		return renderSelection(p)
	case domain.PayloadMultiResponse:
		return renderMultiResponse(p)
	default:
		return renderUnknown(p)
	}
}

func renderInfoMessage(p domain.ResponsePayload) string {
	var data domain.InfoMessageData
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &data)
	}

	body := data.Message
	if body == "" {
		body = data.Text
	}
	if body == "" {
		body = p.Message
	}

	var b strings.Builder
	b.WriteString(`<div class="bubble bubble-info">`)
	if data.Title != "" {
		b.WriteString(`<h4>` + html.EscapeString(data.Title) + `</h4>`)
	}
	b.WriteString(FormatText(body))
	if len(data.Details) > 0 {
		b.WriteString(`<hr><ul class="details">`)
		for _, d := range data.Details {
			b.WriteString(`<li>` + html.EscapeString(d) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderChecklist(p domain.ResponsePayload) string {
	var data domain.ChecklistData
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &data)
	}

	var b strings.Builder
	b.WriteString(`<div class="bubble bubble-checklist">`)
	if data.Title != "" {
		b.WriteString(`<h4>` + html.EscapeString(data.Title) + `</h4>`)
	}
	b.WriteString(`<ol>`)
	for _, item := range data.Items {
		b.WriteString(`<li>` + html.EscapeString(item.Step))
		if item.Detail != "" {
			b.WriteString(`<span class="detail">` + html.EscapeString(item.Detail) + `</span>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ol></div>`)
	return b.String()
}

func renderSelection(p domain.ResponsePayload) string {
	var data domain.SelectionData
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &data)
	}

	title := data.Title
	if title == "" {
		title = data.Question
	}

	var b strings.Builder
	b.WriteString(`<div class="bubble bubble-selection">`)
	if title != "" {
		b.WriteString(`<h4>` + html.EscapeString(title) + `</h4>`)
	}
	b.WriteString(`<ul class="options">`)
	for _, opt := range data.Options {
		b.WriteString(`<li>` + html.EscapeString(optionLabel(opt)))
		if opt.Description != "" {
			b.WriteString(`<span class="description">` + html.EscapeString(opt.Description) + `</span>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

// optionLabel falls back through title, label, and id.
func optionLabel(opt domain.SelectionOption) string {
	if opt.Title != "" {
		return opt.Title
	}
	if opt.Label != "" {
		return opt.Label
	}
	if opt.ID != "" {
		return opt.ID
	}
	return "Option"
}

func renderMultiResponse(p domain.ResponsePayload) string {
	// The nested list lives either inside the data object or as a sibling
	// field; both backend variants exist.
	var data domain.MultiResponseData
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &data)
	}
	nested := data.Responses
	if len(nested) == 0 {
		nested = p.Responses
	}
	if len(nested) == 0 {
		return renderPlaceholder()
	}

	var b strings.Builder
	for _, child := range nested {
		b.WriteString(renderPayload(child))
	}
	return b.String()
}

func renderUnknown(p domain.ResponsePayload) string {
	var generic map[string]interface{}
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &generic)
	}

	if msg, ok := generic["message"].(string); ok && msg != "" {
		return `<div class="bubble bubble-answer">` + FormatText(msg) + `</div>`
	}
	if p.Message != "" {
		return `<div class="bubble bubble-answer">` + FormatText(p.Message) + `</div>`
	}
	if len(p.Responses) > 0 {
		return renderMultiResponse(domain.ResponsePayload{
			Type:      domain.PayloadMultiResponse,
			Responses: p.Responses,
		})
	}
	if _, ok := generic["responses"]; ok {
		var data domain.MultiResponseData
		_ = json.Unmarshal(p.Data, &data)
		if len(data.Responses) > 0 {
			return renderMultiResponse(domain.ResponsePayload{
				Type:      domain.PayloadMultiResponse,
				Responses: data.Responses,
			})
		}
	}

	// Last resort: show the raw object.
	raw, err := json.Marshal(p)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", p))
	}
	return `<div class="bubble bubble-raw"><pre><code>` + html.EscapeString(string(raw)) + `</code></pre></div>`
}
