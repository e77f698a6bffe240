package handler

import (
	"time"

	"github.com/deppfellow/assignment-api/internal/model"
	"github.com/deppfellow/assignment-api/internal/server"
	"github.com/deppfellow/assignment-api/internal/service"
	"github.com/deppfellow/assignment-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// DataResponse wraps read results: {"data": ...}.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// MessageResponse is the body of successful writes: {"message": ...}.
type MessageResponse struct {
	Message string `json:"message"`
}

type ListAssignmentsRequest struct{}

func (r *ListAssignmentsRequest) Validate() error { return nil }

// AssignmentIDRequest carries the :id path segment, passed on as received.
type AssignmentIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *AssignmentIDRequest) Validate() error { return nil }

type CreateAssignmentRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Length   *int64  `json:"length"`
	UserID   *int64  `json:"user_id"`
	Status   *string `json:"status"`
}

func (r *CreateAssignmentRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateAssignmentRequest) ValidationMessage() string {
	return service.MsgCreateMissingData
}

// UpdateAssignmentRequest has no field rules; only malformed JSON is
// rejected.
type UpdateAssignmentRequest struct {
	ID          string     `param:"id" json:"-"`
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	Category    *string    `json:"category"`
	Length      *int64     `json:"length"`
	UserID      *int64     `json:"user_id"`
	Status      *string    `json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *UpdateAssignmentRequest) Validate() error { return nil }

type AssignmentHandler struct {
	Handler
	assignments *service.AssignmentService
}

func NewAssignmentHandler(s *server.Server, assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		Handler:     NewHandler(s),
		assignments: assignments,
	}
}

func (h *AssignmentHandler) List(c echo.Context, _ *ListAssignmentsRequest) (*DataResponse[[]model.Assignment], error) {
	assignments, err := h.assignments.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &DataResponse[[]model.Assignment]{Data: assignments}, nil
}

func (h *AssignmentHandler) Get(c echo.Context, req *AssignmentIDRequest) (*DataResponse[*model.Assignment], error) {
	assignment, err := h.assignments.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &DataResponse[*model.Assignment]{Data: assignment}, nil
}

func (h *AssignmentHandler) Create(c echo.Context, req *CreateAssignmentRequest) (*MessageResponse, error) {
	_, err := h.assignments.Create(c.Request().Context(), service.NewAssignment{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Length:   req.Length,
		UserID:   req.UserID,
		Status:   req.Status,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: service.MsgCreated}, nil
}

func (h *AssignmentHandler) Update(c echo.Context, req *UpdateAssignmentRequest) (*MessageResponse, error) {
	err := h.assignments.Update(c.Request().Context(), req.ID, service.AssignmentChanges{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Length:      req.Length,
		UserID:      req.UserID,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: service.MsgUpdated}, nil
}

func (h *AssignmentHandler) Delete(c echo.Context, req *AssignmentIDRequest) (*MessageResponse, error) {
	if err := h.assignments.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: service.MsgDeleted}, nil
}
