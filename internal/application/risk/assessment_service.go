// Package risk runs vendor risk assessments, manual or pulled from a rating provider.
package risk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appintegration "github.com/vendorhub/backend/internal/application/integration"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/risk"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/insight"
	"go.uber.org/zap"
)

// ResourceType labels risk assessments in sync logs and metrics
const ResourceType = "risk_assessment"

// FollowUpCategory is the ticket category opened for a failed rating pull
const FollowUpCategory = "risk_sync"

// AssessmentService creates and reads risk assessments
type AssessmentService struct {
	assessments  risk.AssessmentRepository
	vendors      partner.VendorRepository
	tickets      helpdesk.TicketRepository
	integrations integration.Repository
	clients      integration.ClientFactory
	runner       *appintegration.Runner
	advisor      advisory.Provider
	logger       *zap.Logger
}

// NewAssessmentService creates a new AssessmentService
func NewAssessmentService(
	assessments risk.AssessmentRepository,
	vendors partner.VendorRepository,
	tickets helpdesk.TicketRepository,
	integrations integration.Repository,
	clients integration.ClientFactory,
	runner *appintegration.Runner,
	advisor advisory.Provider,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		assessments:  assessments,
		vendors:      vendors,
		tickets:      tickets,
		integrations: integrations,
		clients:      clients,
		runner:       runner,
		advisor:      advisor,
		logger:       logger,
	}
}

// CreateManual records an evaluator's rating and annotates it with an advisory insight
func (s *AssessmentService) CreateManual(ctx context.Context, p identity.Principal, req CreateAssessmentRequest) (*AssessmentResponse, error) {
	vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	a, err := risk.NewManualAssessment(p.TenantID, &p.UserID, vendor.ID, risk.Level(req.Level), req.Notes)
	if err != nil {
		return nil, err
	}

	attrs := map[string]any{insight.AttrManualLevel: string(a.Level)}
	s.addOpenTickets(ctx, p.TenantID, vendor.ID, attrs)
	a.AttachInsight(s.assess(ctx, a, attrs))

	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAssessmentResponse(a)
	return &resp, nil
}

// Pull commits a pending provider assessment for a vendor, then fetches the
// rating through the sync runner. A failed pull is stored on the assessment
// and returned as its sync status, never as an error, and opens a follow-up
// ticket about the vendor.
func (s *AssessmentService) Pull(ctx context.Context, p identity.Principal, vendorID uuid.UUID) (*AssessmentResponse, error) {
	provider, err := s.integrations.FindEnabled(ctx, p.TenantID, integration.KindRiskProvider)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByIDForTenant(ctx, p.TenantID, vendorID)
	if err != nil {
		return nil, err
	}

	a := risk.NewProviderAssessment(p.TenantID, &p.UserID, vendor.ID, provider.ID)
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("assessment_id", a.ID.String()),
		zap.String("integration_id", provider.ID.String()))

	rating, pullErr := s.fetch(ctx, a, provider, ratingRef(vendor))
	if pullErr != nil {
		log.Warn("Risk rating pull failed", zap.Error(pullErr))
		a.RecordFailure(pullErr.Error())
	} else {
		a.RecordRating(rating, s.runner.Clock().Now().UTC())
	}

	attrs := map[string]any{}
	if a.ProviderScore != nil {
		attrs[insight.AttrProviderScore] = *a.ProviderScore
		attrs[insight.AttrProviderGrade] = a.ProviderGrade
	}
	s.addOpenTickets(ctx, p.TenantID, vendor.ID, attrs)
	a.AttachInsight(s.assess(ctx, a, attrs))

	if err := s.assessments.Save(ctx, a); err != nil {
		return nil, err
	}
	if pullErr != nil {
		s.openFollowUp(ctx, p, vendor, a, log)
	}
	resp := ToAssessmentResponse(a)
	return &resp, nil
}

// openFollowUp raises a ticket so someone retries or rates the vendor by hand.
// A ticket that cannot be stored is logged; the assessment already holds the failure.
func (s *AssessmentService) openFollowUp(ctx context.Context, p identity.Principal, vendor *partner.Vendor, a *risk.Assessment, log *zap.Logger) {
	t, err := helpdesk.NewTicket(p.TenantID, &p.UserID,
		fmt.Sprintf("Risk rating pull failed for vendor %s", vendor.Code),
		fmt.Sprintf("Assessment %s could not fetch a provider rating: %s", a.ID, a.SyncError),
		FollowUpCategory, helpdesk.PriorityHigh, &vendor.ID)
	if err == nil {
		err = s.tickets.Create(ctx, t)
	}
	if err != nil {
		log.Error("Failed to open follow-up ticket", zap.Error(err))
		return
	}
	log.Info("Follow-up ticket opened", zap.String("ticket_id", t.ID.String()))
}

func (s *AssessmentService) fetch(ctx context.Context, a *risk.Assessment, provider *integration.Integration, ref string) (integration.Rating, error) {
	client, err := s.clients.RiskRating(provider)
	if err != nil {
		return integration.Rating{}, err
	}

	var rating integration.Rating
	_, err = s.runner.Run(ctx, appintegration.Job{
		TenantID:      a.TenantID,
		IntegrationID: provider.ID,
		Direction:     integration.DirectionInbound,
		ResourceType:  ResourceType,
		ResourceID:    a.ID,
	}, func(ctx context.Context, _ int) (int, error) {
		r, err := client.FetchRating(ctx, ref)
		if err != nil {
			return 0, err
		}
		rating = r
		return 1, nil
	})
	return rating, err
}

// GetByID returns one assessment of the caller's tenant
func (s *AssessmentService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*AssessmentResponse, error) {
	a, err := s.assessments.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAssessmentResponse(a)
	return &resp, nil
}

// List lists assessments, optionally for one vendor
func (s *AssessmentService) List(ctx context.Context, p identity.Principal, req ListAssessmentsRequest, filter shared.Filter) (shared.Paginated[AssessmentResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.assessments.FindAllForTenant(ctx, p.TenantID, req.VendorID, filter)
	if err != nil {
		return shared.Paginated[AssessmentResponse]{}, err
	}
	out := make([]AssessmentResponse, len(items))
	for i := range items {
		out[i] = ToAssessmentResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

func (s *AssessmentService) addOpenTickets(ctx context.Context, tenantID, vendorID uuid.UUID, attrs map[string]any) {
	n, err := s.tickets.CountUnresolvedForVendor(ctx, tenantID, vendorID)
	if err != nil {
		s.logger.Warn("Open ticket count unavailable for insight", zap.Error(err))
		return
	}
	attrs[insight.AttrOpenTickets] = n
}

// assess asks the advisory provider for an insight. Provider failures degrade
// to "no insight"; they never fail the assessment.
func (s *AssessmentService) assess(ctx context.Context, a *risk.Assessment, attrs map[string]any) advisory.Insight {
	in, err := s.advisor.Assess(ctx, advisory.Subject{
		Kind:       advisory.SubjectVendorRisk,
		TenantID:   a.TenantID,
		SubjectID:  a.ID,
		Attributes: attrs,
	})
	if err != nil {
		s.logger.Warn("Advisory provider unavailable", zap.String("assessment_id", a.ID.String()), zap.Error(err))
		return advisory.None("advisory provider unavailable")
	}
	return in
}

func ratingRef(v *partner.Vendor) string {
	if v.RatingRef != "" {
		return v.RatingRef
	}
	return v.Code
}
