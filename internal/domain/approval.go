package domain

import "time"

// Approval is one reviewer action on a request. Records are append-only.
type Approval struct {
	Stage               ReviewStage  `json:"stage"`
	ApprovedBy          int32        `json:"approved_by"`
	Decision            Decision     `json:"decision"`
	Message             string       `json:"message,omitempty"`
	FeedbackMessage     string       `json:"feedback_message,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty"`
	FeedbackAttachments []Attachment `json:"feedback_attachments,omitempty"`
	Date                time.Time    `json:"date"`
}
