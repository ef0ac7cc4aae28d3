package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/observability"
	"github.com/spec-kit/grievance-service/internal/repository"
	"github.com/spec-kit/grievance-service/internal/triage"
	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

func citizen(id string) *domain.Actor {
	return &domain.Actor{ID: id, Role: domain.RoleCitizen, Status: domain.ActorStatusActive}
}

func officer(id string) *domain.Actor {
	return &domain.Actor{ID: id, Role: domain.RoleOfficer, Status: domain.ActorStatusActive}
}

func admin(id string) *domain.Actor {
	return &domain.Actor{ID: id, Role: domain.RoleAdmin, Status: domain.ActorStatusActive}
}

type fakeReportRepo struct {
	reports map[string]*domain.Report
	records map[string][]domain.TransitionRecord
	changes map[string][]domain.DepartmentChange
	nextID  int

	// staleOnce makes the next TransitionStatus call fail as if a concurrent
	// writer won the row lock first.
	staleOnce bool
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports: make(map[string]*domain.Report),
		records: make(map[string][]domain.TransitionRecord),
		changes: make(map[string][]domain.DepartmentChange),
	}
}

func (r *fakeReportRepo) id() string {
	r.nextID++
	return fmt.Sprintf("report-%d", r.nextID)
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	now := time.Now()
	report.ID = r.id()
	report.CreatedAt = now
	report.UpdatedAt = now

	created := domain.ReportStatusCreated
	r.records[report.ID] = append(r.records[report.ID],
		domain.TransitionRecord{ID: report.ID + "-t1", ReportID: report.ID, FromStatus: nil, ToStatus: created, ActorType: domain.ActorTypeCitizen, ActorID: &report.SubmitterID, CreatedAt: now},
		domain.TransitionRecord{ID: report.ID + "-t2", ReportID: report.ID, FromStatus: &created, ToStatus: domain.ReportStatusSubmitted, ActorType: domain.ActorTypeSystem, CreatedAt: now},
	)
	report.Status = domain.ReportStatusSubmitted

	stored := *report
	r.reports[report.ID] = &stored
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) GetByExternalKey(_ context.Context, key string) (*domain.Report, error) {
	for _, report := range r.reports {
		if report.ExternalKey == key {
			copied := *report
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReportRepo) ListWithFilter(_ context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	var result []domain.Report
	for _, report := range r.reports {
		if filter.SubmitterID != nil && report.SubmitterID != *filter.SubmitterID {
			continue
		}
		result = append(result, *report)
	}
	return result, nil
}

func (r *fakeReportRepo) TransitionStatus(_ context.Context, input repository.TransitionInput) (*domain.Report, *domain.TransitionRecord, error) {
	report, ok := r.reports[input.ReportID]
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	if r.staleOnce {
		r.staleOnce = false
		return nil, nil, repository.ErrStaleStatus
	}
	if report.Status != input.From {
		return nil, nil, repository.ErrStaleStatus
	}

	from := input.From
	report.Status = input.To
	report.UpdatedAt = time.Now()
	if input.To == domain.ReportStatusClosed {
		closedAt := time.Now()
		report.ClosedAt = &closedAt
	}
	record := domain.TransitionRecord{
		ID:         fmt.Sprintf("%s-t%d", report.ID, len(r.records[report.ID])+1),
		ReportID:   report.ID,
		FromStatus: &from,
		ToStatus:   input.To,
		ActorType:  input.ActorType,
		ActorID:    input.ActorID,
		Note:       input.Note,
		CreatedAt:  time.Now(),
	}
	r.records[report.ID] = append(r.records[report.ID], record)

	copied := *report
	return &copied, &record, nil
}

func (r *fakeReportRepo) ReassignDepartment(_ context.Context, input repository.ReassignInput) (*domain.Report, *domain.DepartmentChange, error) {
	report, ok := r.reports[input.ReportID]
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	change := domain.DepartmentChange{
		ID:              fmt.Sprintf("%s-d%d", report.ID, len(r.changes[report.ID])+1),
		ReportID:        report.ID,
		OldDepartmentID: report.DepartmentID,
		NewDepartmentID: input.NewDepartmentID,
		ActorID:         input.ActorID,
		Reason:          input.Reason,
		CreatedAt:       time.Now(),
	}
	report.DepartmentID = input.NewDepartmentID
	report.UpdatedAt = time.Now()
	r.changes[report.ID] = append(r.changes[report.ID], change)

	copied := *report
	return &copied, &change, nil
}

type fakeTransitionRepo struct {
	reports *fakeReportRepo
}

func (r *fakeTransitionRepo) ListByReport(_ context.Context, reportID string) ([]domain.TransitionRecord, error) {
	return r.reports.records[reportID], nil
}

func (r *fakeTransitionRepo) ListDepartmentChanges(_ context.Context, reportID string) ([]domain.DepartmentChange, error) {
	return r.reports.changes[reportID], nil
}

type fakeCommentRepo struct {
	comments map[string][]domain.ReportComment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string][]domain.ReportComment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.ReportComment) error {
	r.nextID++
	comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	comment.CreatedAt = time.Now()
	r.comments[comment.ReportID] = append(r.comments[comment.ReportID], *comment)
	return nil
}

func (r *fakeCommentRepo) ListByReport(_ context.Context, reportID string) ([]domain.ReportComment, error) {
	return r.comments[reportID], nil
}

type fakeDepartmentRepo struct {
	departments []domain.Department
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	dept.ID = fmt.Sprintf("dep-%d", len(r.departments)+1)
	r.departments = append(r.departments, *dept)
	return nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	for i := range r.departments {
		if r.departments[i].ID == dept.ID {
			r.departments[i] = *dept
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	for i := range r.departments {
		if r.departments[i].ID == id {
			copied := r.departments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for i := range r.departments {
		if r.departments[i].Name == name {
			copied := r.departments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) ListActive(_ context.Context) ([]domain.Department, error) {
	var result []domain.Department
	for _, dept := range r.departments {
		if dept.IsActive {
			result = append(result, dept)
		}
	}
	return result, nil
}

func seedDepartments() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: []domain.Department{
		{ID: "dep-1", Name: "General Administration", IsDefault: true, IsActive: true},
		{ID: "dep-2", Name: "Water Department", Keywords: []string{"water", "pipeline", "leak"}, IsActive: true},
		{ID: "dep-3", Name: "Sanitation Department", Keywords: []string{"garbage", "trash", "waste"}, IsActive: true},
		{ID: "dep-4", Name: "Roads Department", Keywords: []string{"road", "pothole"}, IsActive: true},
		{ID: "dep-5", Name: "Old Department", Keywords: []string{"old"}, IsActive: false},
	}}
}

type fixture struct {
	service  *ReportService
	reports  *fakeReportRepo
	comments *fakeCommentRepo
	depts    *DepartmentService
}

func newFixture(t *testing.T, primary triage.Classifier) *fixture {
	t.Helper()
	reports := newFakeReportRepo()
	comments := newFakeCommentRepo()
	deptService := NewDepartmentService(seedDepartments(), nil, 0, zap.NewNop())
	fallback := triage.NewKeywordBacked(deptService, false)
	if primary == nil {
		primary = triage.NewModelBacked(nil)
	}

	svc := NewReportService(ReportDependencies{
		ReportRepo:     reports,
		TransitionRepo: &fakeTransitionRepo{reports: reports},
		CommentRepo:    comments,
		Departments:    deptService,
		Router:         triage.NewRouter(primary, fallback),
		Fallback:       fallback,
		Dispatcher:     nil,
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})
	return &fixture{service: svc, reports: reports, comments: comments, depts: deptService}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestCreateReportKeywordTriage(t *testing.T) {
	f := newFixture(t, nil)
	submitter := citizen("c1")

	report, err := f.service.CreateReport(context.Background(), submitter, ReportCreateInput{
		Title:       "No water",
		Description: "No water for 3 days",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReportStatusSubmitted, report.Status)
	assert.Equal(t, "dep-2", report.DepartmentID)
	assert.Equal(t, domain.TriageSourceKeyword, report.TriageSource)
	assert.Nil(t, report.TriageConfidence)
	assert.Equal(t, domain.ReportPriorityMedium, report.Priority)
	assert.True(t, strings.HasPrefix(report.ExternalKey, "GRV-"))

	records := f.reports.records[report.ID]
	require.Len(t, records, 2)
	assert.Nil(t, records[0].FromStatus)
	assert.Equal(t, domain.ReportStatusCreated, records[0].ToStatus)
	require.NotNil(t, records[1].FromStatus)
	assert.Equal(t, domain.ReportStatusCreated, *records[1].FromStatus)
	assert.Equal(t, domain.ReportStatusSubmitted, records[1].ToStatus)
	assert.Equal(t, domain.ActorTypeSystem, records[1].ActorType)
}

func TestCreateReportNoSignalRoutesToDefault(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.service.CreateReport(context.Background(), citizen("c1"), ReportCreateInput{
		Title:       "Noise",
		Description: "loud construction noise at night",
	})
	require.NoError(t, err)
	assert.Equal(t, "dep-1", report.DepartmentID)
	assert.Equal(t, domain.TriageSourceKeyword, report.TriageSource)
}

type stubPrimary struct {
	prediction triage.Prediction
	err        error
}

func (s stubPrimary) Classify(context.Context, string) (triage.Prediction, error) {
	return s.prediction, s.err
}

func TestCreateReportModelTriage(t *testing.T) {
	primary := stubPrimary{prediction: triage.Prediction{
		Label:      "Sanitation Department",
		Confidence: 0.87,
		Source:     domain.TriageSourceModel,
	}}
	f := newFixture(t, primary)

	report, err := f.service.CreateReport(context.Background(), citizen("c1"), ReportCreateInput{
		Title:       "Garbage",
		Description: "garbage everywhere",
		Priority:    domain.ReportPriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "dep-3", report.DepartmentID)
	assert.Equal(t, domain.TriageSourceModel, report.TriageSource)
	require.NotNil(t, report.TriageConfidence)
	assert.InDelta(t, 0.87, *report.TriageConfidence, 1e-9)
	assert.Equal(t, domain.ReportPriorityHigh, report.Priority)
}

func TestCreateReportUnknownModelLabelDegradesToFallback(t *testing.T) {
	primary := stubPrimary{prediction: triage.Prediction{
		Label:      "Department That No Longer Exists",
		Confidence: 0.99,
		Source:     domain.TriageSourceModel,
	}}
	f := newFixture(t, primary)

	report, err := f.service.CreateReport(context.Background(), citizen("c1"), ReportCreateInput{
		Title:       "Leak",
		Description: "water pipeline leak",
	})
	require.NoError(t, err)
	assert.Equal(t, "dep-2", report.DepartmentID)
	assert.Equal(t, domain.TriageSourceKeyword, report.TriageSource)
	assert.Nil(t, report.TriageConfidence)
}

func TestCreateReportValidationAndAccess(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.CreateReport(context.Background(), citizen("c1"), ReportCreateInput{Title: "  ", Description: "x"})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = f.service.CreateReport(context.Background(), officer("o1"), ReportCreateInput{Title: "t", Description: "d"})
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func createSubmitted(t *testing.T, f *fixture, submitter *domain.Actor) *domain.Report {
	t.Helper()
	report, err := f.service.CreateReport(context.Background(), submitter, ReportCreateInput{
		Title:       "No water",
		Description: "No water for 3 days",
	})
	require.NoError(t, err)
	return report
}

func advance(t *testing.T, f *fixture, actor *domain.Actor, reportID string, targets ...domain.ReportStatus) *domain.Report {
	t.Helper()
	var report *domain.Report
	for _, target := range targets {
		var err error
		report, _, err = f.service.Transition(context.Background(), actor, reportID, target, "")
		require.NoError(t, err)
	}
	return report
}

func TestTransitionHappyPath(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	staff := officer("o1")
	report := createSubmitted(t, f, owner)

	updated, record, err := f.service.Transition(context.Background(), staff, report.ID, domain.ReportStatusUnderReview, "taking a look")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusUnderReview, updated.Status)
	require.NotNil(t, record.FromStatus)
	assert.Equal(t, domain.ReportStatusSubmitted, *record.FromStatus)
	assert.Equal(t, domain.ReportStatusUnderReview, record.ToStatus)
	assert.Equal(t, domain.ActorTypeStaff, record.ActorType)
	assert.Equal(t, "taking a look", record.Note)

	// Exactly one record added on top of the two from creation.
	assert.Len(t, f.reports.records[report.ID], 3)
}

func TestTransitionFullLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	staff := officer("o1")
	report := createSubmitted(t, f, owner)

	final := advance(t, f, staff, report.ID,
		domain.ReportStatusUnderReview,
		domain.ReportStatusInProgress,
		domain.ReportStatusResolved,
		domain.ReportStatusClosed,
	)
	assert.Equal(t, domain.ReportStatusClosed, final.Status)
	assert.NotNil(t, final.ClosedAt)
	assert.Len(t, f.reports.records[report.ID], 6)
}

func TestTransitionInvalidEdge(t *testing.T) {
	f := newFixture(t, nil)
	report := createSubmitted(t, f, citizen("c1"))

	_, _, err := f.service.Transition(context.Background(), officer("o1"), report.ID, domain.ReportStatusResolved, "")
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	assert.Equal(t, 422, domainErr.HTTPStatus)

	// Terminal state rejects everything.
	advance(t, f, officer("o1"), report.ID,
		domain.ReportStatusUnderReview,
		domain.ReportStatusInProgress,
		domain.ReportStatusResolved,
		domain.ReportStatusClosed,
	)
	_, _, err = f.service.Transition(context.Background(), officer("o1"), report.ID, domain.ReportStatusUnderReview, "")
	assert.Equal(t, "INVALID_TRANSITION", errCode(t, err))
}

func TestTransitionDeniedByRole(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	report := createSubmitted(t, f, owner)

	// The edge is structurally valid but citizens may not trigger it.
	_, _, err := f.service.Transition(context.Background(), owner, report.ID, domain.ReportStatusUnderReview, "")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
	assert.Len(t, f.reports.records[report.ID], 2, "denied transitions leave no record")
}

func TestCitizenClosesOwnResolvedReport(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	staff := officer("o1")
	report := createSubmitted(t, f, owner)
	advance(t, f, staff, report.ID,
		domain.ReportStatusUnderReview,
		domain.ReportStatusInProgress,
		domain.ReportStatusResolved,
	)

	// A different citizen cannot close it.
	_, _, err := f.service.Transition(context.Background(), citizen("c2"), report.ID, domain.ReportStatusClosed, "")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	updated, record, err := f.service.Transition(context.Background(), owner, report.ID, domain.ReportStatusClosed, "thanks, fixed")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusClosed, updated.Status)
	assert.Equal(t, domain.ActorTypeCitizen, record.ActorType)
}

func TestGetReportByExternalKey(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	report := createSubmitted(t, f, owner)

	byKey, _, err := f.service.GetReport(context.Background(), owner, report.ExternalKey)
	require.NoError(t, err)
	assert.Equal(t, report.ID, byKey.ID)

	_, _, err = f.service.GetReport(context.Background(), owner, "GRV-DOESNOTX")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestTransitionNotFound(t *testing.T) {
	f := newFixture(t, nil)
	_, _, err := f.service.Transition(context.Background(), officer("o1"), "missing", domain.ReportStatusUnderReview, "")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestTransitionConcurrentConflict(t *testing.T) {
	f := newFixture(t, nil)
	report := createSubmitted(t, f, citizen("c1"))

	// A concurrent writer wins the row lock between the service's read and
	// its locked write; the caller gets a retryable conflict.
	f.reports.staleOnce = true
	_, _, err := f.service.Transition(context.Background(), officer("o1"), report.ID, domain.ReportStatusUnderReview, "")
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Len(t, f.reports.records[report.ID], 2, "a failed CAS writes no record")

	// The retry goes through.
	updated, _, err := f.service.Transition(context.Background(), officer("o1"), report.ID, domain.ReportStatusUnderReview, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusUnderReview, updated.Status)
}

func TestReassignDepartment(t *testing.T) {
	f := newFixture(t, nil)
	report := createSubmitted(t, f, citizen("c1"))
	require.Equal(t, "dep-2", report.DepartmentID)

	updated, err := f.service.ReassignDepartment(context.Background(), admin("a1"), report.ID, "dep-3", "misclassified")
	require.NoError(t, err)
	assert.Equal(t, "dep-3", updated.DepartmentID)

	changes := f.reports.changes[report.ID]
	require.Len(t, changes, 1)
	assert.Equal(t, "dep-2", changes[0].OldDepartmentID)
	assert.Equal(t, "dep-3", changes[0].NewDepartmentID)
	assert.Equal(t, "a1", changes[0].ActorID)
	assert.Equal(t, "misclassified", changes[0].Reason)
}

func TestReassignDepartmentGuards(t *testing.T) {
	f := newFixture(t, nil)
	report := createSubmitted(t, f, citizen("c1"))

	_, err := f.service.ReassignDepartment(context.Background(), officer("o1"), report.ID, "dep-3", "")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	_, err = f.service.ReassignDepartment(context.Background(), admin("a1"), report.ID, "dep-5", "")
	assert.Equal(t, "CONFLICT", errCode(t, err))

	_, err = f.service.ReassignDepartment(context.Background(), admin("a1"), report.ID, "dep-2", "")
	assert.Equal(t, "CONFLICT", errCode(t, err))

	_, err = f.service.ReassignDepartment(context.Background(), admin("a1"), report.ID, "missing", "")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestGetReportVisibility(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	staff := officer("o1")
	report := createSubmitted(t, f, owner)

	_, err := f.service.AddComment(context.Background(), owner, report.ID, "any update?", false)
	require.NoError(t, err)
	_, err = f.service.AddComment(context.Background(), staff, report.ID, "pump vendor is late", true)
	require.NoError(t, err)

	_, comments, err := f.service.GetReport(context.Background(), owner, report.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, domain.CommentVisibilityPublic, comments[0].Visibility)

	_, comments, err = f.service.GetReport(context.Background(), staff, report.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, _, err = f.service.GetReport(context.Background(), citizen("c2"), report.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestAddCommentGuards(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	report := createSubmitted(t, f, owner)

	_, err := f.service.AddComment(context.Background(), owner, report.ID, "note to self", true)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	_, err = f.service.AddComment(context.Background(), owner, report.ID, "   ", false)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = f.service.AddComment(context.Background(), citizen("c2"), report.ID, "me too", false)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestListReportsScopedByOwnership(t *testing.T) {
	f := newFixture(t, nil)
	first := citizen("c1")
	second := citizen("c2")
	createSubmitted(t, f, first)
	createSubmitted(t, f, first)
	createSubmitted(t, f, second)

	mine, err := f.service.ListReports(context.Background(), first, ReportListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, report := range mine {
		assert.Equal(t, "c1", report.SubmitterID)
	}

	all, err := f.service.ListReports(context.Background(), officer("o1"), ReportListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListHistory(t *testing.T) {
	f := newFixture(t, nil)
	owner := citizen("c1")
	report := createSubmitted(t, f, owner)
	_, err := f.service.ReassignDepartment(context.Background(), admin("a1"), report.ID, "dep-3", "routing fix")
	require.NoError(t, err)

	records, changes, err := f.service.ListHistory(context.Background(), owner, report.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Nil(t, changes, "department overrides are staff only")

	records, changes, err = f.service.ListHistory(context.Background(), officer("o1"), report.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Len(t, changes, 1)

	_, _, err = f.service.ListHistory(context.Background(), citizen("c2"), report.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestStatusesReferenceData(t *testing.T) {
	f := newFixture(t, nil)
	statuses := f.service.Statuses()
	assert.Len(t, statuses, 6)
	assert.Empty(t, statuses[domain.ReportStatusClosed])
	assert.ElementsMatch(t,
		[]domain.ReportStatus{domain.ReportStatusClosed, domain.ReportStatusUnderReview},
		statuses[domain.ReportStatusResolved],
	)
}
