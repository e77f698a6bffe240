package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/assignment-api/internal/errs"
	"github.com/deppfellow/assignment-api/internal/model"
	"github.com/deppfellow/assignment-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// Client-facing messages. Store faults never expose driver detail.
const (
	MsgReadFailed   = "Server could not read assignment because database connection"
	MsgNotFoundByID = "Server could not find a requested assignment (assignment id: %s)"

	MsgCreated           = "Created assignment successfully"
	MsgCreateMissingData = "Server could not create assignment because there are missing data from client"
	MsgCreateFailed      = "Server could not create assignment because database connection"
	MsgUpdated           = "Updated assignment successfully"
	MsgUpdateNotFound    = "Server could not find a requested assignment to update"
	MsgUpdateFailed      = "Server could not update assignment because database connection"
	MsgDeleted           = "Deleted assignment successfully"
	MsgDeleteNotFound    = "Server could not find a requested assignment to delete"
	MsgDeleteFailed      = "Server could not delete assignment because of database connection error"
)

// AssignmentStore is the persistence used by AssignmentService.
// repository.AssignmentRepository implements it.
type AssignmentStore interface {
	List(ctx context.Context) ([]model.Assignment, error)
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) (int64, error)
	Update(ctx context.Context, id string, p *model.AssignmentPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// NewAssignment is the client input for Create.
type NewAssignment struct {
	Title    string
	Content  string
	Category string
	Length   *int64
	UserID   *int64
	Status   *string
}

// AssignmentChanges is the client input for Update. Nil required fields keep
// their stored value; nil optional fields are cleared.
type AssignmentChanges struct {
	Title       *string
	Content     *string
	Category    *string
	Length      *int64
	UserID      *int64
	Status      *string
	CreatedAt   *time.Time
	PublishedAt *time.Time
}

// AssignmentService implements the five assignment operations. Each call
// issues exactly one store statement.
type AssignmentService struct {
	store  AssignmentStore
	logger *zerolog.Logger
	now    func() time.Time
}

func NewAssignmentService(store AssignmentStore, logger *zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every assignment; the slice is empty, never nil, when there
// are none.
func (s *AssignmentService) List(ctx context.Context) ([]model.Assignment, error) {
	assignments, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storeFault("list", MsgReadFailed, err)
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	assignment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFault("get", MsgReadFailed, err)
	}
	if assignment == nil {
		return nil, errs.NewNotFoundError(fmt.Sprintf(MsgNotFoundByID, id), true, nil)
	}
	return assignment, nil
}

// Create stamps created_at, updated_at and published_at with the current
// time and inserts the assignment.
func (s *AssignmentService) Create(ctx context.Context, in NewAssignment) (int64, error) {
	now := s.now().UTC()

	id, err := s.store.Create(ctx, &model.Assignment{
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Length:      in.Length,
		UserID:      in.UserID,
		Status:      in.Status,
		CreatedAt:   &now,
		UpdatedAt:   &now,
		PublishedAt: &now,
	})
	if err != nil {
		return 0, s.storeFault("create", MsgCreateFailed, err)
	}

	s.logger.Debug().Int64("assignment_id", id).Msg("assignment created")
	return id, nil
}

// Update refreshes updated_at and applies changes. Zero affected rows is
// reported as not found.
func (s *AssignmentService) Update(ctx context.Context, id string, changes AssignmentChanges) error {
	affected, err := s.store.Update(ctx, id, &model.AssignmentPatch{
		Title:       changes.Title,
		Content:     changes.Content,
		Category:    changes.Category,
		Length:      changes.Length,
		UserID:      changes.UserID,
		Status:      changes.Status,
		CreatedAt:   changes.CreatedAt,
		UpdatedAt:   s.now().UTC(),
		PublishedAt: changes.PublishedAt,
	})
	if err != nil {
		return s.storeFault("update", MsgUpdateFailed, err)
	}
	if affected == 0 {
		return errs.NewNotFoundError(MsgUpdateNotFound, true, nil)
	}
	return nil
}

func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.storeFault("delete", MsgDeleteFailed, err)
	}
	if affected == 0 {
		return errs.NewNotFoundError(MsgDeleteNotFound, true, nil)
	}
	return nil
}

func (s *AssignmentService) storeFault(op, message string, err error) error {
	sqlerr.LogFields(s.logger.Error(), err).
		Err(err).
		Str("operation", op).
		Msg("assignment store fault")

	return errs.NewInternalServerError().WithMessage(message).WithCause(err)
}
