package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/assignment-api/internal/errs"
	"github.com/labstack/echo/v4"
)

type noteRequest struct {
	ID    string `param:"id" json:"-"`
	Title string `json:"title" validate:"required"`
	Pages *int   `json:"pages" validate:"omitempty,min=1"`
}

func (r *noteRequest) Validate() error { return Struct(r) }

type messagedRequest struct {
	Title string `json:"title" validate:"required"`
}

func (r *messagedRequest) Validate() error          { return Struct(r) }
func (r *messagedRequest) ValidationMessage() string { return "missing data" }

func newContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/notes/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("7")
	return c
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	req := &noteRequest{}
	if err := BindAndValidate(newContext(http.MethodPut, `{"title":"hello","pages":3}`), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ID != "7" || req.Title != "hello" || req.Pages == nil || *req.Pages != 3 {
		t.Errorf("unexpected bound request: %+v", req)
	}
}

func TestBindAndValidate_Failures(t *testing.T) {
	tests := []struct {
		name        string
		payload     Validatable
		body        string
		wantMessage string
		wantFields  map[string]string
	}{
		{
			name:       "missing required",
			payload:    &noteRequest{},
			body:       `{}`,
			wantFields: map[string]string{"title": "is required"},
		},
		{
			name:       "min violation",
			payload:    &noteRequest{},
			body:       `{"title":"x","pages":0}`,
			wantFields: map[string]string{"pages": "must be at least 1"},
		},
		{
			name:        "message override",
			payload:     &messagedRequest{},
			body:        `{"title":""}`,
			wantMessage: "missing data",
			wantFields:  map[string]string{"title": "is required"},
		},
		{
			name:    "malformed json",
			payload: &noteRequest{},
			body:    `{"title":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, BindAndValidate(newContext(http.MethodPost, tt.body), tt.payload))

			if httpErr.Status != http.StatusBadRequest {
				t.Errorf("got status %d, want 400", httpErr.Status)
			}
			if httpErr.Message == "" {
				t.Error("message should not be empty")
			}
			if tt.wantMessage != "" && httpErr.Message != tt.wantMessage {
				t.Errorf("got message %q, want %q", httpErr.Message, tt.wantMessage)
			}
			if errors.Unwrap(httpErr) == nil {
				t.Error("cause should be preserved for logging")
			}

			got := map[string]string{}
			for _, fe := range httpErr.Errors {
				got[fe.Field] = fe.Error
			}
			for field, msg := range tt.wantFields {
				if got[field] != msg {
					t.Errorf("field %q: got %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}
