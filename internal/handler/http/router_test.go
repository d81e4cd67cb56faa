package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/memory"
	departmentservice "github.com/cmlabs-hris/leave-backend-go/internal/service/department"
	leaveservice "github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
	notificationservice "github.com/cmlabs-hris/leave-backend-go/internal/service/notification"
	reportservice "github.com/cmlabs-hris/leave-backend-go/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	jwt jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	store := memory.NewStore()
	deptRepo := memory.NewDepartmentRepository(store)
	notifier := notificationservice.NewNotificationService(sse.NewHub(), notificationservice.Config{WorkerCount: 1})
	t.Cleanup(notifier.Stop)

	leaveSvc := leaveservice.NewLeaveService(
		memory.NewLeaveTypeRepository(store),
		memory.NewLeaveRequestRepository(store),
		deptRepo,
		notifier,
	)
	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	router := NewRouter(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		[]string{"http://localhost:3000"},
		jwtService,
		NewLeaveHandler(leaveSvc),
		NewDepartmentHandler(departmentservice.NewDepartmentService(deptRepo)),
		NewReportHandler(reportservice.NewReportService(leaveSvc, deptRepo, files)),
		NewEventHandler(notifier, jwtService),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, as user.Identity, method, path string, body interface{}) (*http.Response, response.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if as.Username != "" {
		token, _, err := s.jwt.GenerateAccessToken(as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.Response
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

var (
	admin    = user.Identity{Username: "admin", Role: user.RoleAdmin}
	alice    = user.Identity{Username: "alice", Role: user.RoleEmployee}
	bob      = user.Identity{Username: "bob", Role: user.RoleEmployee}
	engMgr   = user.Identity{Username: "eng-mgr", Role: user.RoleManager}
	salesMgr = user.Identity{Username: "sales-mgr", Role: user.RoleManager}
)

func seed(t *testing.T, s *testServer) {
	t.Helper()
	calls := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/api/v1/leave/types", map[string]interface{}{"leave_type": "Sick", "total_days": 10}},
		{http.MethodPost, "/api/v1/departments", map[string]string{"name": "Engineering"}},
		{http.MethodPost, "/api/v1/departments", map[string]string{"name": "Sales"}},
		{http.MethodPut, "/api/v1/departments/Engineering/members/alice", nil},
		{http.MethodPut, "/api/v1/departments/Sales/members/bob", nil},
		{http.MethodPut, "/api/v1/departments/Engineering/managers/eng-mgr", nil},
		{http.MethodPut, "/api/v1/departments/Sales/managers/sales-mgr", nil},
	}
	for _, c := range calls {
		resp, body := s.do(t, admin, c.method, c.path, c.body)
		require.Less(t, resp.StatusCode, 300, "%s %s: %+v", c.method, c.path, body.Error)
	}
}

func createSick(t *testing.T, s *testServer, as user.Identity) string {
	t.Helper()
	resp, body := s.do(t, as, http.MethodPost, "/api/v1/leave/requests", map[string]string{
		"leave_type": "Sick",
		"start_date": "2024-01-10",
		"end_date":   "2024-01-12",
		"comments":   "flu",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	return data["id"].(string)
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	s := newTestServer(t)
	seed(t, s)

	id := createSick(t, s, alice)

	resp, body := s.do(t, salesMgr, http.MethodPut, "/api/v1/leave/requests/"+id+"/approved", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)

	resp, _ = s.do(t, bob, http.MethodPut, "/api/v1/leave/requests/"+id+"/approved", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, engMgr, http.MethodPut, "/api/v1/leave/requests/"+id+"/approved", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body.Data.(map[string]interface{})["status"])

	resp, body = s.do(t, engMgr, http.MethodPut, "/api/v1/leave/requests/"+id+"/rejected", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body.Error.Code)

	resp, body = s.do(t, alice, http.MethodDelete, "/api/v1/leave/requests/"+id, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body.Error.Code)

	resp, body = s.do(t, alice, http.MethodPut, "/api/v1/leave/requests/"+id, map[string]string{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body.Error.Code)

	resp, body = s.do(t, bob, http.MethodPut, "/api/v1/leave/requests/"+id, map[string]string{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)

	resp, body = s.do(t, alice, http.MethodGet, "/api/v1/leave/summary/my", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balances := body.Data.(map[string]interface{})["balances"].([]interface{})
	require.Len(t, balances, 1)
	sick := balances[0].(map[string]interface{})
	assert.Equal(t, "Sick", sick["leave_type"])
	assert.EqualValues(t, 1, sick["approved"])
	assert.EqualValues(t, 0, sick["pending"])
	assert.EqualValues(t, 0, sick["rejected"])
	assert.EqualValues(t, 9, sick["remaining"])
}

func TestRouter_Validation(t *testing.T) {
	s := newTestServer(t)
	seed(t, s)

	resp, body := s.do(t, alice, http.MethodPost, "/api/v1/leave/requests", map[string]string{
		"leave_type": "Sick",
		"start_date": "2024-02-05",
		"end_date":   "2024-02-01",
		"comments":   "trip",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "end_date")

	resp, _ = s.do(t, engMgr, http.MethodPut, "/api/v1/leave/requests/0190a0b2-7c1d-7e2f-8a3b-4c5d6e7f8091/maybe", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = s.do(t, engMgr, http.MethodPut, "/api/v1/leave/requests/0190a0b2-7c1d-7e2f-8a3b-4c5d6e7f8091/approved", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Authorization(t *testing.T) {
	s := newTestServer(t)
	seed(t, s)

	resp, body := s.do(t, user.Identity{}, http.MethodGet, "/api/v1/leave/requests/my", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Success)

	resp, _ = s.do(t, alice, http.MethodPost, "/api/v1/leave/types", map[string]interface{}{"leave_type": "Annual", "total_days": 12})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, alice, http.MethodGet, "/api/v1/leave/requests", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, admin, http.MethodPost, "/api/v1/leave/requests", map[string]string{"leave_type": "Sick"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, alice, http.MethodGet, "/api/v1/leave/summary/department", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, admin, http.MethodDelete, "/api/v1/departments/Sales", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestRouter_DepartmentQueue(t *testing.T) {
	s := newTestServer(t)
	seed(t, s)

	createSick(t, s, alice)
	createSick(t, s, bob)

	resp, body := s.do(t, engMgr, http.MethodGet, "/api/v1/leave/requests?status=pending&department=Sales", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].(map[string]interface{})["username"])
	assert.EqualValues(t, 1, body.Meta.TotalItems)

	resp, body = s.do(t, admin, http.MethodGet, "/api/v1/leave/requests?department=Sales", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items = body.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "bob", items[0].(map[string]interface{})["username"])

	resp, body = s.do(t, engMgr, http.MethodGet, "/api/v1/leave/summary/department", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Engineering", body.Data.(map[string]interface{})["department"])
}

func TestRouter_ExportDepartmentReport(t *testing.T) {
	s := newTestServer(t)
	seed(t, s)
	createSick(t, s, alice)

	resp, _ := s.do(t, engMgr, http.MethodGet, "/api/v1/reports/department.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "leave-summary-engineering-")

	key := resp.Header.Get("X-Report-Key")
	require.NotEmpty(t, key)

	resp, _ = s.do(t, engMgr, http.MethodGet, "/api/v1/reports/archive?key="+url.QueryEscape(key), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, alice, http.MethodGet, "/api/v1/reports/department.pdf", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, user.Identity{}, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
}
