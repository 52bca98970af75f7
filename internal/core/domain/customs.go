package domain

import "time"

// DocumentStatus is the clearance state of a customs document.
//
// Owners move a document through pending → in progress → cleared. Approved
// and rejected are reached only through the review workflow, never by an
// owner edit. Every closing state is final.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentInProgress DocumentStatus = "in progress"
	DocumentCleared    DocumentStatus = "cleared"
	DocumentApproved   DocumentStatus = "approved"
	DocumentRejected   DocumentStatus = "rejected"
)

// DocumentStatuses lists every status in lifecycle order.
var DocumentStatuses = []DocumentStatus{
	DocumentPending,
	DocumentInProgress,
	DocumentCleared,
	DocumentApproved,
	DocumentRejected,
}

var documentStage = map[DocumentStatus]int{
	DocumentPending:    0,
	DocumentInProgress: 1,
	DocumentCleared:    2,
	DocumentApproved:   2,
	DocumentRejected:   2,
}

// ParseDocumentStatus validates s against the known statuses.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	st := DocumentStatus(s)
	if _, ok := documentStage[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsFinal reports whether no further transition is allowed.
func (s DocumentStatus) IsFinal() bool {
	return documentStage[s] == 2
}

// IsReviewOutcome reports whether s is set only by a reviewer.
func (s DocumentStatus) IsReviewOutcome() bool {
	return s == DocumentApproved || s == DocumentRejected
}

// CanTransitionTo reports whether moving from s to next is allowed. Re-applying
// the current status is a no-op and always allowed.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	if s == next {
		return true
	}
	if s.IsFinal() {
		return false
	}
	return documentStage[next] > documentStage[s]
}

// CustomsDocument tracks the clearance of one shipment's paperwork.
type CustomsDocument struct {
	ID            string         `json:"id"`
	ShipmentID    string         `json:"shipmentId"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Destination   string         `json:"destination"`
	Status        DocumentStatus `json:"status"`
	Progress      int            `json:"progress"`
	ClearanceDate *time.Time     `json:"clearanceDate,omitempty"`
	UserID        string         `json:"userId"`
	ApprovedBy    string         `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time     `json:"approvedAt,omitempty"`
	RejectedBy    string         `json:"rejectedBy,omitempty"`
	RejectedAt    *time.Time     `json:"rejectedAt,omitempty"`
	Comments      string         `json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}
