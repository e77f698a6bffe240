package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type echoRequest struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

func (r *echoRequest) Validate() error { return nil }

func TestHandle_FreshRequestPerCall(t *testing.T) {
	e := echo.New()
	e.POST("/echo", Handle(Handler{}, func(c echo.Context, req *echoRequest) (*echoRequest, error) {
		return req, nil
	}, http.StatusOK, &echoRequest{}))

	send := func(body string) string {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return strings.TrimSpace(rec.Body.String())
	}

	send(`{"name":"first","note":"leftover"}`)
	if got := send(`{"name":"second"}`); got != `{"name":"second","note":""}` {
		t.Errorf("request state leaked between calls: %s", got)
	}
}

func TestNewRequest(t *testing.T) {
	template := &echoRequest{Name: "template"}
	got := newRequest(template)

	if got == template {
		t.Fatal("expected a new pointer")
	}
	if got.Name != "" {
		t.Errorf("expected zero value, got %+v", got)
	}
}
