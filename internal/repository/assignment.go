package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/assignment-api/internal/database"
	"github.com/deppfellow/assignment-api/internal/model"
)

const assignmentColumns = `assignment_id, title, content, category, length, user_id, status, created_at, updated_at, published_at`

// Statements issued by AssignmentRepository. Writes return the touched ids so
// every Executor reports the affected row count the same way.
const (
	ListAssignmentsSQL = `SELECT ` + assignmentColumns + ` FROM assignments`

	GetAssignmentSQL = `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1`

	CreateAssignmentSQL = `INSERT INTO assignments
	(title, content, category, length, user_id, status, created_at, updated_at, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING assignment_id`

	UpdateAssignmentSQL = `UPDATE assignments SET
	title = COALESCE(NULLIF($2, ''), title),
	content = COALESCE(NULLIF($3, ''), content),
	category = COALESCE(NULLIF($4, ''), category),
	length = $5,
	user_id = $6,
	status = $7,
	created_at = $8,
	updated_at = $9,
	published_at = $10
WHERE assignment_id = $1
RETURNING assignment_id`

	DeleteAssignmentSQL = `DELETE FROM assignments WHERE assignment_id = $1 RETURNING assignment_id`
)

// AssignmentRepository runs assignment statements, one Execute call each.
//
// Ids are forwarded to the store exactly as received from the path.
type AssignmentRepository struct {
	executor database.Executor
}

func NewAssignmentRepository(executor database.Executor) *AssignmentRepository {
	return &AssignmentRepository{executor: executor}
}

// List returns every assignment in store order.
func (r *AssignmentRepository) List(ctx context.Context) ([]model.Assignment, error) {
	result, err := r.executor.Execute(ctx, ListAssignmentsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return model.DecodeAssignments(result.Rows)
}

// GetByID returns nil without error when no row matches.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	result, err := r.executor.Execute(ctx, GetAssignmentSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting assignment %s: %w", id, err)
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}
	return model.DecodeAssignment(result.Rows[0])
}

// Create inserts a and returns the id assigned by the store.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) (int64, error) {
	result, err := r.executor.Execute(ctx, CreateAssignmentSQL,
		a.Title,
		a.Content,
		a.Category,
		a.Length,
		a.UserID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
		a.PublishedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating assignment: %w", err)
	}
	if len(result.Rows) == 0 {
		return 0, nil
	}

	created, err := model.DecodeAssignment(result.Rows[0])
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Update applies p to the row with the given id and returns the number of
// rows affected.
func (r *AssignmentRepository) Update(ctx context.Context, id string, p *model.AssignmentPatch) (int64, error) {
	result, err := r.executor.Execute(ctx, UpdateAssignmentSQL,
		id,
		p.Title,
		p.Content,
		p.Category,
		p.Length,
		p.UserID,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.PublishedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("updating assignment %s: %w", id, err)
	}
	return result.RowCount, nil
}

// Delete removes the row with the given id and returns the number of rows
// affected.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.executor.Execute(ctx, DeleteAssignmentSQL, id)
	if err != nil {
		return 0, fmt.Errorf("deleting assignment %s: %w", id, err)
	}
	return result.RowCount, nil
}
