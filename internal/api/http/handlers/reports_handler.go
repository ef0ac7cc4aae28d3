package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

// ReportsHandler manages report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// CreateReport POST /reports.
func (h *ReportsHandler) CreateReport(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ReportCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Priority:    req.Priority,
	}
	report, err := h.service.CreateReport(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reportSummary(report)})
}

// ListReports GET /reports.
func (h *ReportsHandler) ListReports(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reports, err := h.service.ListReports(c.Context(), actor, parseReportQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.ReportSummary, 0, len(reports))
	for i := range reports {
		items = append(items, reportSummary(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetReport GET /reports/:id.
func (h *ReportsHandler) GetReport(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	report, comments, err := h.service.GetReport(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report, comments)})
}

// GetHistory GET /reports/:id/history.
func (h *ReportsHandler) GetHistory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	records, changes, err := h.service.ListHistory(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}

	recordItems := make([]dto.TransitionRecordResponse, 0, len(records))
	for _, record := range records {
		recordItems = append(recordItems, dto.TransitionRecordResponse{
			ID:         record.ID,
			FromStatus: record.FromStatus,
			ToStatus:   record.ToStatus,
			ActorType:  record.ActorType,
			ActorID:    record.ActorID,
			Note:       record.Note,
			CreatedAt:  record.CreatedAt,
		})
	}
	response := fiber.Map{"transitions": recordItems}
	if changes != nil {
		changeItems := make([]dto.DepartmentChangeResponse, 0, len(changes))
		for _, change := range changes {
			changeItems = append(changeItems, dto.DepartmentChangeResponse{
				ID:              change.ID,
				OldDepartmentID: change.OldDepartmentID,
				NewDepartmentID: change.NewDepartmentID,
				ActorID:         change.ActorID,
				Reason:          change.Reason,
				CreatedAt:       change.CreatedAt,
			})
		}
		response["department_changes"] = changeItems
	}
	return c.JSON(fiber.Map{"data": response})
}

// Transition POST /reports/:id/transition.
func (h *ReportsHandler) Transition(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Target == "" {
		return apperrors.NewValidationError("target status required", nil)
	}

	report, record, err := h.service.Transition(c.Context(), actor, c.Params("id"), req.Target, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"report": reportSummary(report),
		"record": dto.TransitionRecordResponse{
			ID:         record.ID,
			FromStatus: record.FromStatus,
			ToStatus:   record.ToStatus,
			ActorType:  record.ActorType,
			ActorID:    record.ActorID,
			Note:       record.Note,
			CreatedAt:  record.CreatedAt,
		},
	}})
}

// Reassign POST /reports/:id/department.
func (h *ReportsHandler) Reassign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == "" {
		return apperrors.NewValidationError("department_id required", nil)
	}

	report, err := h.service.ReassignDepartment(c.Context(), actor, c.Params("id"), req.DepartmentID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportSummary(report)})
}

// AddComment POST /reports/:id/comments.
func (h *ReportsHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.Context(), actor, c.Params("id"), req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListStatuses GET /statuses.
func (h *ReportsHandler) ListStatuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Statuses()})
}

func parseReportQuery(c *fiber.Ctx) service.ReportListFilter {
	filter := service.ReportListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ReportStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.ReportPriority(strings.TrimSpace(part)))
		}
	}
	if dept := c.Query("department_id"); dept != "" {
		filter.DepartmentID = &dept
	}
	if search := c.Query("q"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func reportSummary(report *domain.Report) dto.ReportSummary {
	return dto.ReportSummary{
		ID:               report.ID,
		ExternalKey:      report.ExternalKey,
		DepartmentID:     report.DepartmentID,
		Title:            report.Title,
		Location:         report.Location,
		Status:           report.Status,
		Priority:         report.Priority,
		TriageSource:     report.TriageSource,
		TriageConfidence: report.TriageConfidence,
		CreatedAt:        report.CreatedAt,
		UpdatedAt:        report.UpdatedAt,
	}
}

func reportDetail(report *domain.Report, comments []domain.ReportComment) dto.ReportDetailResponse {
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return dto.ReportDetailResponse{
		ReportSummary: reportSummary(report),
		Description:   report.Description,
		SubmitterID:   report.SubmitterID,
		ClosedAt:      report.ClosedAt,
		Comments:      items,
	}
}

func commentResponse(comment *domain.ReportComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		AuthorType: comment.AuthorType,
		AuthorID:   comment.AuthorID,
		Visibility: comment.Visibility,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}
