package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"label-image-tool/internal/domain/entity"
)

type fakePlugin struct {
	calls   []entity.Properties
	ctxErrs []error
}

func (f *fakePlugin) Execute(ctx context.Context, props entity.Properties) {
	f.calls = append(f.calls, props)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
}

func (f *fakePlugin) PropertyOptions(appDef entity.AppDefinition) string {
	return `{"app":"` + appDef.ID + `","version":"` + appDef.VersionString() + `"}`
}

func newTestHandler() (http.Handler, *fakePlugin) {
	p := &fakePlugin{}
	return NewHandler(p, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes(), p
}

func TestExecute_PassesPropertyBag(t *testing.T) {
	h, p := newTestHandler()

	body := `{"recordId":"R1","formDefId":"F1","appDef":{"id":"A","version":1}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(body)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, p.calls, 1)

	inv := entity.NewInvocation(p.calls[0])
	require.Equal(t, "R1", inv.RecordID)
	require.Equal(t, &entity.AppDefinition{ID: "A", Version: 1}, inv.AppDef)
}

func TestExecute_InvalidBody(t *testing.T) {
	h, p := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader("{")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, p.calls)
}

func TestProperties(t *testing.T) {
	h, _ := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/properties?appId=A&appVersion=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"app":"A","version":"2"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/properties?appId=A&appVersion=x", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExecute_IgnoresClientDisconnect(t *testing.T) {
	h, p := newTestHandler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(`{"recordId":"R1"}`)).WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, p.ctxErrs, 1)
	require.NoError(t, p.ctxErrs[0])
}
