package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/ojt-journal-backend/internal/handlers"
	"github.com/AnshRaj112/ojt-journal-backend/internal/routes"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"github.com/AnshRaj112/ojt-journal-backend/internal/storage/memstore"
)

const today = "2024-01-08" // Monday

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, file io.Reader, folder string) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	return "https://res.cloudinary.com/demo/" + folder + "/a.png", nil
}

type testServer struct {
	*httptest.Server
	admin *services.AdminService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := memstore.Open()
	users := memstore.NewUserStore(db)
	journals := memstore.NewJournalStore(db)
	workdays := memstore.NewWorkdayStore(db)
	accounts := memstore.NewAccountStore(db)
	cache := memstore.NewCache(db)
	hub := services.NewEventHub()

	day, _ := time.Parse(services.DateLayout, today)
	now := func() time.Time { return day.Add(10 * time.Hour) }

	journalService := services.NewJournalService(users, journals, workdays, services.JournalOptions{
		FailOpen: true, Cache: cache, Events: hub, Uploader: stubUploader{}, Now: now,
	})
	adminService := services.NewAdminService(users, journals, workdays, accounts, services.AdminOptions{
		Cache: cache, Events: hub, Now: now,
	})
	authService := services.NewAuthService(accounts, users, memstore.NewSessions(db))

	r := chi.NewRouter()
	r.Get("/health", handlers.Health)
	routes.SetupRoutes(r, handlers.New(authService, journalService, adminService, hub, time.Second), authService, "")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, admin: adminService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *testServer) signin(t *testing.T, email, password string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

// seed creates an admin and one student starting on 2024-01-01.
func (s *testServer) seed(t *testing.T) (adminToken, studentToken, studentID string) {
	t.Helper()
	ctx := context.Background()
	_, err := s.admin.EnsureAdmin(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)
	student, err := s.admin.RegisterStudent(ctx, services.RegisterStudentInput{
		Email: "juan@example.com", Password: "student-pass", FirstName: "Juan", LastName: "Cruz", OJTStart: "2024-01-01",
	})
	require.NoError(t, err)
	return s.signin(t, "admin@example.com", "admin-pass"), s.signin(t, "juan@example.com", "student-pass"), student.ID
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignin(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	status, body := srv.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "juan@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, services.ErrInvalidCredentials.Error(), body["message"])

	status, body = srv.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "email")

	status, body = srv.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "juan@example.com", "password": "student-pass"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.StudentDashboard, body["redirect"])
	token := body["token"].(string)

	status, body = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "juan@example.com", body["user"].(map[string]interface{})["email"])

	status, body = srv.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.EntryPage, body["redirect"])

	status, _ = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestGuardEndpoint(t *testing.T) {
	srv := newTestServer(t)
	adminToken, studentToken, _ := srv.seed(t)

	_, body := srv.do(t, http.MethodGet, "/api/auth/guard?path=/student-pages/dashboard.html&role=student", "", nil)
	assert.Equal(t, services.EntryPage, body["redirect"])

	_, body = srv.do(t, http.MethodGet, "/api/auth/guard?path=/index.html", "", nil)
	assert.Nil(t, body["redirect"])

	_, body = srv.do(t, http.MethodGet, "/api/auth/guard?path=/student-pages/dashboard.html&role=student", adminToken, nil)
	assert.Equal(t, services.AdminDashboardPage, body["redirect"])

	_, body = srv.do(t, http.MethodGet, "/api/auth/guard?path=/index.html", studentToken, nil)
	assert.Equal(t, services.StudentDashboard, body["redirect"])

	status, _ := srv.do(t, http.MethodGet, "/api/auth/guard?path=/x.html&role=owner", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRoleGate(t *testing.T) {
	srv := newTestServer(t)
	adminToken, studentToken, _ := srv.seed(t)

	status, body := srv.do(t, http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, services.EntryPage, body["redirect"])

	status, body = srv.do(t, http.MethodGet, "/api/admin/stats", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, services.StudentDashboard, body["redirect"])

	status, body = srv.do(t, http.MethodGet, "/api/journals", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, services.AdminDashboardPage, body["redirect"])
}

func TestStudentJournalFlow(t *testing.T) {
	srv := newTestServer(t)
	adminToken, studentToken, studentID := srv.seed(t)

	status, body := srv.do(t, http.MethodPut, "/api/journals/2024-01-06", studentToken, map[string]interface{}{"content": "weekend", "submitted": true})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, services.ErrNotWorkday.Error(), body["message"])

	status, body = srv.do(t, http.MethodPut, "/api/journals/2024-01-08", studentToken, map[string]interface{}{"content": "Set up the dev laptop.", "submitted": true})
	require.Equal(t, http.StatusOK, status, body)
	journal := body["journal"].(map[string]interface{})
	assert.Equal(t, studentID+"_2024-01-08", journal["id"])
	assert.Equal(t, float64(2), journal["week"])

	status, body = srv.do(t, http.MethodGet, "/api/journals/2024-01-08", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Set up the dev laptop.", body["journal"].(map[string]interface{})["content"])

	status, body = srv.do(t, http.MethodGet, "/api/journals/2024-01-09", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["journal"])

	status, _ = srv.do(t, http.MethodGet, "/api/journals/Jan-9", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = srv.do(t, http.MethodGet, "/api/progress", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_submitted"])
	assert.Equal(t, float64(5), body["total_missing"])

	status, body = srv.do(t, http.MethodGet, "/api/workdays/2024-01-07", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["is_workday"])

	// Admin reviews; the student can no longer edit.
	status, body = srv.do(t, http.MethodGet, "/api/admin/journals?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, _ = srv.do(t, http.MethodPut, "/api/admin/journals/"+studentID+"_2024-01-08/review", adminToken, map[string]interface{}{"remarks": "Nice", "reviewed": true})
	require.Equal(t, http.StatusOK, status)

	status, body = srv.do(t, http.MethodPut, "/api/journals/2024-01-08", studentToken, map[string]interface{}{"content": "edited", "submitted": true})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, services.ErrJournalReviewed.Error(), body["message"])

	status, body = srv.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_students"])
	assert.Equal(t, float64(1), body["total_journals"])
	assert.Equal(t, float64(0), body["pending_reviews"])
}

func TestAdminStudentManagement(t *testing.T) {
	srv := newTestServer(t)
	adminToken, _, studentID := srv.seed(t)

	status, body := srv.do(t, http.MethodPost, "/api/admin/students", adminToken, map[string]interface{}{
		"email": "maria@example.com", "password": "longenough", "first_name": "Maria", "last_name": "Aquino",
		"ojt_start": "2024-01-02", "work_schedule": []int{1, 3, 5},
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _ = srv.do(t, http.MethodPost, "/api/admin/students", adminToken, map[string]interface{}{
		"email": "maria@example.com", "password": "longenough", "first_name": "M", "last_name": "A",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = srv.do(t, http.MethodPost, "/api/admin/students", adminToken, map[string]interface{}{
		"email": "x@example.com", "password": "longenough", "first_name": "X", "last_name": "Y", "ojt_start": "01/02/2024",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "ojtstart")

	status, body = srv.do(t, http.MethodGet, "/api/admin/students", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	students := body["students"].([]interface{})
	require.Len(t, students, 2)
	assert.Equal(t, "Aquino", students[0].(map[string]interface{})["last_name"])

	status, _ = srv.do(t, http.MethodPut, "/api/admin/students/"+studentID+"/status", adminToken, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, status)

	status, body = srv.do(t, http.MethodGet, "/api/admin/students?active=false", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, _ = srv.do(t, http.MethodPut, "/api/admin/students/"+studentID+"/status", adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = srv.do(t, http.MethodPut, "/api/admin/students/nobody/status", adminToken, map[string]interface{}{"is_active": true})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = srv.do(t, http.MethodPut, "/api/admin/students/"+studentID+"/schedule", adminToken, map[string]interface{}{"work_schedule": []int{8}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = srv.do(t, http.MethodGet, "/api/admin/students/"+studentID+"/progress", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(6), body["total_missing"])
}

func TestAdminWorkdays(t *testing.T) {
	srv := newTestServer(t)
	adminToken, studentToken, _ := srv.seed(t)

	status, _ := srv.do(t, http.MethodPut, "/api/admin/workdays/2024-01-06", adminToken, map[string]interface{}{"is_workday": true, "note": "Make-up day"})
	require.Equal(t, http.StatusOK, status)

	status, body := srv.do(t, http.MethodGet, "/api/workdays/2024-01-06", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_workday"])

	status, body = srv.do(t, http.MethodGet, "/api/admin/workdays?from=2024-01-01&to=2024-01-31", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["workdays"], 1)

	status, _ = srv.do(t, http.MethodDelete, "/api/admin/workdays/2024-01-06", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = srv.do(t, http.MethodDelete, "/api/admin/workdays/2024-01-06", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = srv.do(t, http.MethodPut, "/api/admin/workdays/2024-01-07", adminToken, map[string]interface{}{"note": "missing flag"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAttachmentUpload(t *testing.T) {
	srv := newTestServer(t)
	_, studentToken, studentID := srv.seed(t)

	upload := func() (int, map[string]interface{}) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "evidence.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG fake"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/journals/2024-01-08/attachments", &buf)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+studentToken)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return srv.send(t, req)
	}

	status, _ := upload()
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = srv.do(t, http.MethodPut, "/api/journals/2024-01-08", studentToken, map[string]interface{}{"content": "draft"})
	require.Equal(t, http.StatusOK, status)

	status, body := upload()
	require.Equal(t, http.StatusOK, status, body)
	attachments := body["journal"].(map[string]interface{})["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	assert.Contains(t, attachments[0], "ojt-journals/"+studentID)
}
