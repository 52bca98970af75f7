package domain

import "time"

// ActivityType groups activity entries in the feed.
type ActivityType string

const (
	ActivityShipping ActivityType = "shipping"
	ActivityWeather  ActivityType = "weather"
	ActivityMarket   ActivityType = "market"
	ActivityDocument ActivityType = "document"
	ActivityAdmin    ActivityType = "admin"
)

// Related-entity kinds referenced by activity entries.
const (
	RelatedShippingRoute     = "shipping_route"
	RelatedMarketData        = "market_data"
	RelatedCustomsDocument   = "customs_document"
	RelatedMarketOpportunity = "market_opportunity"
	RelatedUser              = "user"
)

// Admin actions recorded in the activity log.
const (
	AuditUserCreated      = "user_created"
	AuditUserUpdated      = "user_updated"
	AuditUserActivated    = "user_activated"
	AuditUserDeactivated  = "user_deactivated"
	AuditUserDeleted      = "user_deleted"
	AuditRoleUpdated      = "role_updated"
	AuditDocumentApproved = "document_approved"
	AuditDocumentRejected = "document_rejected"
)

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Action      string       `json:"action,omitempty"`
	Description string       `json:"description"`
	Type        ActivityType `json:"type"`
	Timestamp   time.Time    `json:"timestamp"`
	UserID      string       `json:"userId"`
	RelatedID   string       `json:"relatedId,omitempty"`
	RelatedType string       `json:"relatedType,omitempty"`
}

// Actor is the public summary of the user behind an activity entry.
type Actor struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// ActivityWithActor is an activity entry joined with its author.
type ActivityWithActor struct {
	ActivityLog
	User *Actor `json:"user,omitempty"`
}
