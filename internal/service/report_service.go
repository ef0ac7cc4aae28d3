package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/lifecycle"
	"github.com/spec-kit/grievance-service/internal/observability"
	"github.com/spec-kit/grievance-service/internal/policy"
	"github.com/spec-kit/grievance-service/internal/repository"
	"github.com/spec-kit/grievance-service/internal/triage"
	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

// ReportService coordinates grievance workflows: triage at creation,
// lifecycle transitions, the admin override path, and ownership-filtered
// reads.
type ReportService struct {
	reports     repository.ReportRepository
	transitions repository.TransitionRecordRepository
	comments    repository.CommentRepository
	departments *DepartmentService
	router      *triage.Router
	fallback    triage.Classifier
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	ReportRepo     repository.ReportRepository
	TransitionRepo repository.TransitionRecordRepository
	CommentRepo    repository.CommentRepository
	Departments    *DepartmentService
	Router         *triage.Router
	Fallback       triage.Classifier
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// ReportCreateInput describes report creation payload.
type ReportCreateInput struct {
	Title       string
	Description string
	Location    string
	Priority    domain.ReportPriority
}

// ReportListFilter describes listing filters.
type ReportListFilter struct {
	DepartmentID *string
	Statuses     []domain.ReportStatus
	Priorities   []domain.ReportPriority
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:     deps.ReportRepo,
		transitions: deps.TransitionRepo,
		comments:    deps.CommentRepo,
		departments: deps.Departments,
		router:      deps.Router,
		fallback:    deps.Fallback,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// CreateReport triages the description and persists the report. The
// returned report is already at SUBMITTED: creation, the birth audit record
// and the automatic system transition commit atomically.
func (s *ReportService) CreateReport(ctx context.Context, submitter *domain.Actor, input ReportCreateInput) (*domain.Report, error) {
	if !policy.Can(submitter, policy.ActionCreateReport, policy.Resource{}) {
		return nil, apperrors.NewForbidden("only citizens may file reports")
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	prediction, err := s.router.Triage(ctx, description)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	departmentID, err := s.resolvePrediction(ctx, &prediction, description)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTriage(string(prediction.Source))

	report := &domain.Report{
		ExternalKey:  generateReportKey(),
		SubmitterID:  submitter.ID,
		DepartmentID: departmentID,
		Title:        title,
		Description:  description,
		Location:     strings.TrimSpace(input.Location),
		Priority:     input.Priority,
		TriageSource: prediction.Source,
	}
	if prediction.Source == domain.TriageSourceModel {
		confidence := prediction.Confidence
		report.TriageConfidence = &confidence
	}
	if report.Priority == "" {
		report.Priority = domain.ReportPriorityMedium
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("report triaged",
		zap.String("report_id", report.ID),
		zap.String("department_id", report.DepartmentID),
		zap.String("source", string(report.TriageSource)),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    citizenActor(submitter.ID),
		Payload: events.ReportCreatedPayload{
			DepartmentID: report.DepartmentID,
			Priority:     report.Priority,
			Title:        report.Title,
			TriageSource: report.TriageSource,
			Confidence:   report.TriageConfidence,
		},
	})
	return report, nil
}

// resolvePrediction maps a classification outcome to a department id. Model
// labels unknown to the reference data degrade to the keyword fallback
// rather than failing the request.
func (s *ReportService) resolvePrediction(ctx context.Context, prediction *triage.Prediction, description string) (string, error) {
	if prediction.DepartmentID != "" {
		return prediction.DepartmentID, nil
	}
	dept, err := s.departments.ResolveLabel(ctx, prediction.Label)
	if err != nil {
		return "", err
	}
	if dept != nil {
		return dept.ID, nil
	}

	s.logger.Warn("model predicted unknown department label; using keyword fallback",
		zap.String("label", prediction.Label))
	fallbackPrediction, err := s.fallback.Classify(ctx, description)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	*prediction = fallbackPrediction
	return fallbackPrediction.DepartmentID, nil
}

// Transition moves a report along one lifecycle edge on behalf of an actor.
// Structural rejections (INVALID_TRANSITION) are independent of who asked;
// authorization rejections (FORBIDDEN) are role- and ownership-specific.
func (s *ReportService) Transition(ctx context.Context, actor *domain.Actor, reportID string, target domain.ReportStatus, note string) (*domain.Report, *domain.TransitionRecord, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}

	from := report.Status
	if !lifecycle.IsValidTransition(from, target) {
		s.logger.Info("transition rejected: invalid edge",
			zap.String("report_id", reportID),
			zap.String("from", string(from)),
			zap.String("to", string(target)),
		)
		return nil, nil, apperrors.NewInvalidTransition("no such lifecycle transition",
			map[string]any{"from": from, "to": target})
	}
	if !policy.CanTransition(actor, from, target, report.SubmitterID) {
		s.logger.Info("transition rejected: denied",
			zap.String("report_id", reportID),
			zap.String("actor_id", actor.ID),
			zap.String("role", string(actor.Role)),
			zap.String("from", string(from)),
			zap.String("to", string(target)),
		)
		return nil, nil, apperrors.NewForbidden("role not permitted to trigger this transition")
	}

	actorType := domain.ActorTypeCitizen
	if actor.IsStaff() {
		actorType = domain.ActorTypeStaff
	}
	updated, record, err := s.reports.TransitionStatus(ctx, repository.TransitionInput{
		ReportID:  reportID,
		From:      from,
		To:        target,
		ActorType: actorType,
		ActorID:   &actor.ID,
		Note:      note,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, nil, apperrors.NewConflict("report changed concurrently; retry",
				map[string]any{"report_id": reportID})
		}
		return nil, nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: updated.ID,
		Actor:    events.Actor{Type: actorType, ActorID: &actor.ID},
		Payload: events.ReportStatusChangedPayload{
			OldStatus: from,
			NewStatus: target,
			Note:      note,
		},
	})
	return updated, record, nil
}

// ReassignDepartment is the audited admin override of the otherwise
// immutable triage assignment.
func (s *ReportService) ReassignDepartment(ctx context.Context, actor *domain.Actor, reportID, departmentID, reason string) (*domain.Report, error) {
	if !policy.Can(actor, policy.ActionReassignReport, policy.Resource{}) {
		return nil, apperrors.NewForbidden("department reassignment requires admin role")
	}
	dept, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, apperrors.NewConflict("department inactive", map[string]any{"department_id": departmentID})
	}
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.DepartmentID == departmentID {
		return nil, apperrors.NewConflict("report already assigned to department", nil)
	}

	updated, change, err := s.reports.ReassignDepartment(ctx, repository.ReassignInput{
		ReportID:        reportID,
		NewDepartmentID: departmentID,
		ActorID:         actor.ID,
		Reason:          reason,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportDepartmentChanged,
		ReportID: updated.ID,
		Actor:    events.Actor{Type: domain.ActorTypeStaff, ActorID: &actor.ID},
		Payload: events.ReportDepartmentChangedPayload{
			OldDepartmentID: change.OldDepartmentID,
			NewDepartmentID: change.NewDepartmentID,
			Reason:          reason,
		},
	})
	return updated, nil
}

// GetReport fetches one report with its visible comments, enforcing the
// access policy.
func (s *ReportService) GetReport(ctx context.Context, actor *domain.Actor, reportID string) (*domain.Report, []domain.ReportComment, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Can(actor, policy.ActionReadReport, policy.Resource{OwnerID: report.SubmitterID}) {
		return nil, nil, apperrors.NewForbidden("access denied")
	}

	comments, err := s.comments.ListByReport(ctx, reportID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !policy.Can(actor, policy.ActionReadInternalNote, policy.Resource{OwnerID: report.SubmitterID}) {
		visible := make([]domain.ReportComment, 0, len(comments))
		for _, comment := range comments {
			if comment.Visibility == domain.CommentVisibilityPublic {
				visible = append(visible, comment)
			}
		}
		comments = visible
	}
	return report, comments, nil
}

// ListReports returns reports the actor may see: citizens only their own,
// staff everything the filter allows.
func (s *ReportService) ListReports(ctx context.Context, actor *domain.Actor, filter ReportListFilter) ([]domain.Report, error) {
	repoFilter := repository.ReportFilter{
		DepartmentID: filter.DepartmentID,
		Statuses:     filter.Statuses,
		Priorities:   filter.Priorities,
		SearchTerm:   filter.SearchTerm,
		CreatedFrom:  filter.CreatedFrom,
		CreatedTo:    filter.CreatedTo,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	if !actor.IsStaff() {
		submitterID := actor.ID
		repoFilter.SubmitterID = &submitterID
	}
	reports, err := s.reports.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ListHistory returns the append-only transition trail. Staff additionally
// see department override entries.
func (s *ReportService) ListHistory(ctx context.Context, actor *domain.Actor, reportID string) ([]domain.TransitionRecord, []domain.DepartmentChange, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Can(actor, policy.ActionReadReport, policy.Resource{OwnerID: report.SubmitterID}) {
		return nil, nil, apperrors.NewForbidden("access denied")
	}

	records, err := s.transitions.ListByReport(ctx, reportID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	var changes []domain.DepartmentChange
	if actor.IsStaff() {
		changes, err = s.transitions.ListDepartmentChanges(ctx, reportID)
		if err != nil {
			return nil, nil, apperrors.MapError(err)
		}
	}
	return records, changes, nil
}

// AddComment appends a comment to a report thread.
func (s *ReportService) AddComment(ctx context.Context, actor *domain.Actor, reportID, body string, internal bool) (*domain.ReportComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !policy.Can(actor, policy.ActionCommentReport, policy.Resource{OwnerID: report.SubmitterID}) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if internal && !actor.IsStaff() {
		return nil, apperrors.NewForbidden("internal notes are staff only")
	}

	comment := &domain.ReportComment{
		ReportID:   report.ID,
		AuthorID:   &actor.ID,
		Visibility: domain.CommentVisibilityPublic,
		Body:       body,
	}
	if actor.IsStaff() {
		comment.AuthorType = domain.ActorTypeStaff
	} else {
		comment.AuthorType = domain.ActorTypeCitizen
	}
	if internal {
		comment.Visibility = domain.CommentVisibilityInternal
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCommentAdded,
		ReportID: report.ID,
		Actor:    events.Actor{Type: comment.AuthorType, ActorID: comment.AuthorID},
		Payload: events.ReportCommentAddedPayload{
			CommentID:   comment.ID,
			Visibility:  comment.Visibility,
			AuthorType:  comment.AuthorType,
			AuthorID:    comment.AuthorID,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// Statuses returns the lifecycle reference data: each status with its
// outgoing edges.
func (s *ReportService) Statuses() map[domain.ReportStatus][]domain.ReportStatus {
	result := make(map[domain.ReportStatus][]domain.ReportStatus, len(domain.AllStatuses()))
	for _, status := range domain.AllStatuses() {
		result[status] = lifecycle.TransitionsFrom(status)
	}
	return result
}

// getReport resolves either an internal id or a citizen-facing GRV- key.
func (s *ReportService) getReport(ctx context.Context, reportID string) (*domain.Report, error) {
	var (
		report *domain.Report
		err    error
	)
	if strings.HasPrefix(reportID, "GRV-") {
		report, err = s.reports.GetByExternalKey(ctx, reportID)
	} else {
		report, err = s.reports.GetByID(ctx, reportID)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": reportID})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func citizenActor(actorID string) events.Actor {
	return events.Actor{Type: domain.ActorTypeCitizen, ActorID: &actorID}
}

func generateReportKey() string {
	return "GRV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
