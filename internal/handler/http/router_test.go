package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttendanceService records the principal handed down by the handlers.
type stubAttendanceService struct {
	principal attendance.Principal
}

func (s *stubAttendanceService) BulkMark(ctx context.Context, principal attendance.Principal, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	s.principal = principal
	return attendance.BulkMarkResponse{Success: true}, nil
}

func (s *stubAttendanceService) Mark(ctx context.Context, principal attendance.Principal, req attendance.MarkRequest) (attendance.AttendanceResponse, error) {
	s.principal = principal
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID}, nil
}

func (s *stubAttendanceService) Undo(ctx context.Context, principal attendance.Principal, id string) error {
	s.principal = principal
	return nil
}

func (s *stubAttendanceService) MonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{EmployeeID: employeeID, Year: year, Month: int(month)}, nil
}

func newTestRouter() (*stubAttendanceService, jwt.Service, http.Handler) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	stub := &stubAttendanceService{}
	return stub, jwtService, NewRouter(jwtService, NewAttendanceHandler(stub))
}

func TestRouterRejectsMissingToken(t *testing.T) {
	_, _, router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/emp-1/ledger/2024/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAcceptsMintedAccessToken(t *testing.T) {
	_, jwtService, router := newTestRouter()

	token, expiresAt, err := jwtService.GenerateAccessToken("manager-1", []string{"loc-1"})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/emp-1/ledger/2024/3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emp-1")
}

func TestRouterTokenClaimsBecomePrincipal(t *testing.T) {
	stub, jwtService, router := newTestRouter()

	token, _, err := jwtService.GenerateAccessToken("manager-1", []string{"loc-1", "loc-2"})
	require.NoError(t, err)

	body := strings.NewReader(`{"date":"2024-03-15","entries":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/bulk", body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "manager-1", stub.principal.UserID)
	assert.Equal(t, []string{"loc-1", "loc-2"}, stub.principal.LocationIDs)
}
