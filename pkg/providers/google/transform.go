package google

import (
	"strings"
	"time"

	"lumen-hq/hermes/pkg/providers"
)

// generateContentRequest is the wire format for the generateContent call.
type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// generateContentResponse is the wire format of a generateContent response.
type generateContentResponse struct {
	Candidates    []candidate    `json:"candidates"`
	UsageMetadata *usageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion  string         `json:"modelVersion,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// buildRequest converts a backend-agnostic request to the wire format.
func buildRequest(req *providers.GenerationRequest) *generateContentRequest {
	out := &generateContentRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: req.Prompt}},
			},
		},
	}

	if req.Temperature != 0 || req.MaxOutputTokens != 0 {
		gc := &generationConfig{
			MaxOutputTokens: req.MaxOutputTokens,
		}
		if req.Temperature != 0 {
			t := req.Temperature
			gc.Temperature = &t
		}
		out.GenerationConfig = gc
	}

	return out
}

// transformResponse normalizes a wire response. A response with no candidates
// or no text parts is an EmptyResponseError: the relay treats empty generated
// text as a failure rather than returning a blank reply.
func transformResponse(provider, model string, resp *generateContentResponse) (*providers.GenerationResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, &providers.EmptyResponseError{Provider: provider}
	}

	cand := resp.Candidates[0]

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()

	if text == "" {
		return nil, &providers.EmptyResponseError{
			Provider:     provider,
			FinishReason: cand.FinishReason,
		}
	}

	out := &providers.GenerationResponse{
		Model:        model,
		Text:         text,
		FinishReason: cand.FinishReason,
		Created:      time.Now().Unix(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		out.Usage = providers.TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return out, nil
}
