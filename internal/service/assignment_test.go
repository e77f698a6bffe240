package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/assignment-api/internal/errs"
	"github.com/deppfellow/assignment-api/internal/model"
	"github.com/rs/zerolog"
)

type mockStore struct {
	assignments []model.Assignment
	found       *model.Assignment
	affected    int64
	err         error

	created *model.Assignment
	patch   *model.AssignmentPatch
	calls   int
}

func (m *mockStore) List(context.Context) ([]model.Assignment, error) {
	m.calls++
	return m.assignments, m.err
}

func (m *mockStore) GetByID(context.Context, string) (*model.Assignment, error) {
	m.calls++
	return m.found, m.err
}

func (m *mockStore) Create(_ context.Context, a *model.Assignment) (int64, error) {
	m.calls++
	m.created = a
	return 1, m.err
}

func (m *mockStore) Update(_ context.Context, _ string, p *model.AssignmentPatch) (int64, error) {
	m.calls++
	m.patch = p
	return m.affected, m.err
}

func (m *mockStore) Delete(context.Context, string) (int64, error) {
	m.calls++
	return m.affected, m.err
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(store AssignmentStore) *AssignmentService {
	logger := zerolog.Nop()
	svc := NewAssignmentService(store, &logger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != status {
		t.Errorf("got status %d, want %d", httpErr.Status, status)
	}
	if httpErr.Message != message {
		t.Errorf("got message %q, want %q", httpErr.Message, message)
	}
}

func TestAssignmentService_List(t *testing.T) {
	t.Run("empty store yields empty slice", func(t *testing.T) {
		got, err := newTestService(&mockStore{}).List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("got %#v, want empty non-nil slice", got)
		}
	})

	t.Run("store fault", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		_, err := newTestService(&mockStore{err: storeErr}).List(context.Background())

		assertHTTPError(t, err, http.StatusInternalServerError, MsgReadFailed)
		if !errors.Is(err, storeErr) {
			t.Error("store error should be wrapped as the cause")
		}
	})
}

func TestAssignmentService_GetByID(t *testing.T) {
	tests := []struct {
		name        string
		store       *mockStore
		wantStatus  int
		wantMessage string
	}{
		{
			name:  "found",
			store: &mockStore{found: &model.Assignment{ID: 3, Title: "T"}},
		},
		{
			name:        "not found",
			store:       &mockStore{},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Server could not find a requested assignment (assignment id: 3)",
		},
		{
			name:        "store fault",
			store:       &mockStore{err: errors.New("timeout")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgReadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestService(tt.store).GetByID(context.Background(), "3")
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.ID != 3 {
					t.Errorf("got id %d", got.ID)
				}
				return
			}
			assertHTTPError(t, err, tt.wantStatus, tt.wantMessage)
		})
	}
}

func TestAssignmentService_Create(t *testing.T) {
	store := &mockStore{}
	length := int64(800)

	_, err := newTestService(store).Create(context.Background(), NewAssignment{
		Title:    "Essay",
		Content:  "Body",
		Category: "Writing",
		Length:   &length,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := store.created
	if a == nil {
		t.Fatal("store was not called")
	}
	if a.Title != "Essay" || a.Length == nil || *a.Length != 800 {
		t.Errorf("unexpected assignment: %+v", a)
	}
	for name, ts := range map[string]*time.Time{"created_at": a.CreatedAt, "updated_at": a.UpdatedAt, "published_at": a.PublishedAt} {
		if ts == nil || !ts.Equal(fixedNow) {
			t.Errorf("%s = %v, want %v", name, ts, fixedNow)
		}
	}

	_, err = newTestService(&mockStore{err: errors.New("down")}).Create(context.Background(), NewAssignment{Title: "x"})
	assertHTTPError(t, err, http.StatusInternalServerError, MsgCreateFailed)
}

func TestAssignmentService_Update(t *testing.T) {
	title := "A2"

	tests := []struct {
		name        string
		store       *mockStore
		wantStatus  int
		wantMessage string
	}{
		{name: "updated", store: &mockStore{affected: 1}},
		{name: "not found", store: &mockStore{affected: 0}, wantStatus: http.StatusNotFound, wantMessage: MsgUpdateNotFound},
		{name: "store fault", store: &mockStore{err: errors.New("down")}, wantStatus: http.StatusInternalServerError, wantMessage: MsgUpdateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestService(tt.store).Update(context.Background(), "1", AssignmentChanges{Title: &title})
			if tt.wantStatus != 0 {
				assertHTTPError(t, err, tt.wantStatus, tt.wantMessage)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			p := tt.store.patch
			if p.Title != &title || p.Content != nil {
				t.Errorf("unexpected patch: %+v", p)
			}
			if !p.UpdatedAt.Equal(fixedNow) {
				t.Errorf("updated_at = %v, want %v", p.UpdatedAt, fixedNow)
			}
		})
	}
}

func TestAssignmentService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		store       *mockStore
		wantStatus  int
		wantMessage string
	}{
		{name: "deleted", store: &mockStore{affected: 1}},
		{name: "not found", store: &mockStore{}, wantStatus: http.StatusNotFound, wantMessage: MsgDeleteNotFound},
		{name: "store fault", store: &mockStore{err: errors.New("down")}, wantStatus: http.StatusInternalServerError, wantMessage: MsgDeleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestService(tt.store).Delete(context.Background(), "9")
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertHTTPError(t, err, tt.wantStatus, tt.wantMessage)
			if tt.store.calls != 1 {
				t.Errorf("got %d store calls, want 1", tt.store.calls)
			}
		})
	}
}
