package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/metrics"
)

type CustomsService struct {
	repo  ports.CustomsDocumentRepository
	audit ports.AuditLogger
	log   zerolog.Logger
	now   func() time.Time
}

func NewCustomsService(repo ports.CustomsDocumentRepository, audit ports.AuditLogger, log zerolog.Logger) *CustomsService {
	return &CustomsService{repo: repo, audit: audit, log: log, now: time.Now}
}

func (s *CustomsService) List(ctx context.Context, caller domain.Principal) ([]*domain.CustomsDocument, error) {
	return s.repo.ListByOwner(ctx, caller.UserID)
}

func (s *CustomsService) Get(ctx context.Context, caller domain.Principal, id string) (*domain.CustomsDocument, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionReadOwned, domain.Resource{OwnerID: doc.UserID}) {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

func (s *CustomsService) Create(ctx context.Context, caller domain.Principal, doc domain.CustomsDocument) (*domain.CustomsDocument, error) {
	if doc.Status == "" {
		doc.Status = domain.DocumentPending
	}
	if err := checkOwnerStatus(doc.Status); err != nil {
		return nil, err
	}

	doc.UserID = caller.UserID
	doc.CreatedAt = s.now().UTC()
	doc.ApprovedBy, doc.ApprovedAt = "", nil
	doc.RejectedBy, doc.RejectedAt = "", nil

	created, err := s.repo.Create(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("create customs document: %w", err)
	}

	metrics.ResourcesCreatedTotal.WithLabelValues(domain.RelatedCustomsDocument).Inc()
	return created, nil
}

// Update applies an owner edit. Progress is stored as sent and never derived
// from the status.
func (s *CustomsService) Update(ctx context.Context, caller domain.Principal, id string, patch ports.CustomsDocumentPatch) (*domain.CustomsDocument, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionUpdateOwned, domain.Resource{OwnerID: doc.UserID}) {
		return nil, domain.ErrForbidden
	}

	if patch.Status != nil {
		if err := checkOwnerStatus(*patch.Status); err != nil {
			return nil, err
		}
		if !doc.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("%w: from %q to %q", domain.ErrInvalidTransition, doc.Status, *patch.Status)
		}
	}

	patch.ApprovedBy, patch.ApprovedAt = nil, nil
	patch.RejectedBy, patch.RejectedAt = nil, nil
	return s.repo.Update(ctx, id, patch)
}

// checkOwnerStatus accepts the statuses an owner may set directly.
func checkOwnerStatus(st domain.DocumentStatus) error {
	if _, err := domain.ParseDocumentStatus(string(st)); err != nil {
		return err
	}
	if st.IsReviewOutcome() {
		return fmt.Errorf("%w: %q is set by review", domain.ErrInvalidTransition, st)
	}
	return nil
}

func (s *CustomsService) Approve(ctx context.Context, reviewer domain.Principal, id, comments string) (*domain.CustomsDocument, error) {
	return s.review(ctx, reviewer, id, comments, domain.DocumentApproved)
}

func (s *CustomsService) Reject(ctx context.Context, reviewer domain.Principal, id, comments string) (*domain.CustomsDocument, error) {
	return s.review(ctx, reviewer, id, comments, domain.DocumentRejected)
}

func (s *CustomsService) review(ctx context.Context, reviewer domain.Principal, id, comments string, outcome domain.DocumentStatus) (*domain.CustomsDocument, error) {
	if !domain.CanPerform(reviewer, domain.ActionApproveDocument, domain.Resource{}) {
		return nil, domain.ErrForbidden
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(outcome) {
		return nil, fmt.Errorf("%w: from %q to %q", domain.ErrInvalidTransition, doc.Status, outcome)
	}

	now := s.now().UTC()
	patch := ports.CustomsDocumentPatch{Status: &outcome}
	if comments != "" {
		patch.Comments = &comments
	}

	action, verb := domain.AuditDocumentApproved, "approved"
	if outcome == domain.DocumentApproved {
		patch.ApprovedBy, patch.ApprovedAt = &reviewer.UserID, &now
	} else {
		action, verb = domain.AuditDocumentRejected, "rejected"
		patch.RejectedBy, patch.RejectedAt = &reviewer.UserID, &now
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("review customs document: %w", err)
	}

	s.audit.Audit(ctx, domain.ActivityLog{
		Title:       "Customs document " + verb,
		Action:      action,
		Description: fmt.Sprintf("%s %s customs document %s (%s)", reviewer.Username, verb, updated.ID, updated.Title),
		Type:        domain.ActivityDocument,
		UserID:      reviewer.UserID,
		RelatedID:   updated.ID,
		RelatedType: domain.RelatedCustomsDocument,
	})
	metrics.AdminActionsTotal.WithLabelValues(action).Inc()
	s.log.Info().Str("document_id", id).Str("reviewer", reviewer.UserID).Str("status", string(outcome)).Msg("customs document reviewed")
	return updated, nil
}
