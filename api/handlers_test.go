package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/block8/leave-engine/api"
	"github.com/block8/leave-engine/auth"
	"github.com/block8/leave-engine/config"
	"github.com/block8/leave-engine/leave"
	memstore "github.com/block8/leave-engine/leave/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	employees := memstore.NewMemoryEmployees()
	leaves := memstore.NewMemoryLeaves()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := leave.NewService(employees, leaves, leave.Noop{}, logger)
	authSvc := auth.NewService(employees, []byte("test-secret"), time.Hour)

	handler := api.NewHandler(service, authSvc, logger)
	cfg := config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	srv := httptest.NewServer(api.NewRouter(handler, cfg, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func createEmployee(t *testing.T, srv *httptest.Server, body map[string]any) string {
	t.Helper()
	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/employees", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create employee: %v", decoded)
	id, _ := decoded["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func seedPair(t *testing.T, srv *httptest.Server) (approverID, employeeID string) {
	t.Helper()
	approverID = createEmployee(t, srv, map[string]any{
		"firstName": "Meera", "lastName": "Nair",
		"email": "meera.nair@example.com", "role": "admin",
		"doj": "2018-03-01", "password": "admin-pass",
	})
	employeeID = createEmployee(t, srv, map[string]any{
		"firstName": "Akshay", "lastName": "Kumar",
		"email": "akshay.kumar@example.com", "role": "employee",
		"approver": approverID, "doj": "2020-02-09", "password": "emp-pass",
	})
	return approverID, employeeID
}

// =============================================================================
// FLOWS
// =============================================================================

func TestAPI_SubmitApproveFlow(t *testing.T) {
	srv := newTestServer(t)
	approverID, employeeID := seedPair(t, srv)

	// Login works with the onboarded credentials.
	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]any{
		"email": "akshay.kumar@example.com", "password": "emp-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decoded["token"])

	// Submit a Monday-Friday casual leave.
	resp, decoded = doJSON(t, http.MethodPost, srv.URL+"/api/leave", map[string]any{
		"employeeId": employeeID, "approverId": approverID,
		"startDate": "2024-06-03", "endDate": "2024-06-07",
		"leaveType": "casual", "halfDay": false, "description": "family visit",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "submit: %v", decoded)
	assert.Equal(t, "5", decoded["daysCount"])
	assert.Equal(t, "pending", decoded["status"])
	requestID := decoded["id"].(string)

	// Balance reflects the debit.
	resp, decoded = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+employeeID+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	available := decoded["available"].(map[string]any)
	assert.Equal(t, "5", available["casual"])

	// Approve.
	resp, decoded = doJSON(t, http.MethodPut, srv.URL+"/api/leave/"+requestID+"/status", map[string]any{
		"status": "approved", "approverId": approverID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "approve: %v", decoded)
	assert.Equal(t, "approved", decoded["status"])

	// A second decision hits the terminal-state guard.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/leave/"+requestID+"/status", map[string]any{
		"status": "rejected", "approverId": approverID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_RejectRestoresBalance(t *testing.T) {
	srv := newTestServer(t)
	approverID, employeeID := seedPair(t, srv)

	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/leave", map[string]any{
		"employeeId": employeeID, "approverId": approverID,
		"startDate": "2024-06-03", "endDate": "2024-06-03",
		"leaveType": "sick", "halfDay": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "0.5", decoded["daysCount"])
	requestID := decoded["id"].(string)

	resp, decoded = doJSON(t, http.MethodPut, srv.URL+"/api/leave/"+requestID+"/status", map[string]any{
		"status": "rejected", "approverId": approverID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, decoded = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+employeeID+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	available := decoded["available"].(map[string]any)
	availed := decoded["availed"].(map[string]any)
	assert.Equal(t, "10", available["sick"])
	assert.Equal(t, "0", availed["sick"])
}

func TestAPI_ListWithLenientStatusFilter(t *testing.T) {
	srv := newTestServer(t)
	approverID, employeeID := seedPair(t, srv)

	for _, dates := range [][2]string{
		{"2024-06-03", "2024-06-04"},
		{"2024-06-10", "2024-06-11"},
	} {
		resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/leave", map[string]any{
			"employeeId": employeeID, "approverId": approverID,
			"startDate": dates[0], "endDate": dates[1],
			"leaveType": "paid", "halfDay": false,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "submit: %v", decoded)
	}

	get := func(query string) []any {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/leave?"+query, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		return list
	}

	assert.Len(t, get("employeeId="+employeeID), 2)
	assert.Len(t, get("employeeId="+employeeID+"&status=pending"), 2)
	assert.Len(t, get("employeeId="+employeeID+"&status=approved"), 0)
	// Unknown status values are ignored rather than rejected.
	assert.Len(t, get("employeeId="+employeeID+"&status=bogus"), 2)
	assert.Len(t, get("approverId="+approverID), 2)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestAPI_ErrorStatuses(t *testing.T) {
	srv := newTestServer(t)
	approverID, employeeID := seedPair(t, srv)

	// Unknown category fails boundary validation.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/leave", map[string]any{
		"employeeId": employeeID, "approverId": approverID,
		"startDate": "2024-06-03", "endDate": "2024-06-03",
		"leaveType": "sabbatical", "halfDay": false,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Half-day spanning two dates is a domain validation failure.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/leave", map[string]any{
		"employeeId": employeeID, "approverId": approverID,
		"startDate": "2024-06-03", "endDate": "2024-06-04",
		"leaveType": "sick", "halfDay": true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown employee id in the path.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Wrong password.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]any{
		"email": "akshay.kumar@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Duplicate email on onboarding.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/employees", map[string]any{
		"firstName": "Clone", "lastName": "Kumar",
		"email": "akshay.kumar@example.com", "role": "employee",
		"approver": approverID, "doj": "2021-01-01", "password": "pass-123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
