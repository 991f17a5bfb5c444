// internal/workers/advisory/generate-response/models.go
package generateresponse

import "shamba-workers/internal/models"

type Input struct {
	UserMessage    string                       `json:"userMessage"`
	FarmerID       string                       `json:"farmerId,omitempty"`
	ConversationID string                       `json:"conversationId,omitempty"`
	History        []models.ConversationMessage `json:"history,omitempty"`
}

type Output struct {
	Response string `json:"response"`
	Language string `json:"language"`
	Intent   string `json:"intent"`
	Crop     string `json:"crop,omitempty"`
	Location string `json:"location,omitempty"`
}
