package models

// Audit event names published to Kafka.
const (
	EventUserRegistered = "user_registered"
	EventReviewCreated  = "review_created"
)

// AuditEvent is the JSON payload published to the audit topic.
type AuditEvent struct {
	EventID   string `json:"event_id"`             // Unique event id
	Event     string `json:"event"`                // Event name
	Timestamp int64  `json:"timestamp"`            // Unix timestamp
	UserUID   string `json:"user_uid,omitempty"`   // Acting user
	Email     string `json:"email,omitempty"`      // Acting user's email
	BookUID   string `json:"book_uid,omitempty"`   // Related book
	ReviewUID string `json:"review_uid,omitempty"` // Related review
}
