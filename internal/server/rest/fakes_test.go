package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var (
	testUser  = &models.User{ID: "u-1", Name: "Jane", Email: "jane@example.com"}
	testAdmin = &models.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", IsAdmin: true}
)

type fakeAuth struct{}

func (fakeAuth) GoogleLogin(ctx context.Context, credential string) (*services.Session, error) {
	if credential != "good" {
		return nil, common.NewError(common.ErrorUnauthorized, "Invalid Google token")
	}
	return &services.Session{Token: userToken, User: testUser}, nil
}

func (fakeAuth) AdminLogin(ctx context.Context, email, password string) (*services.Session, error) {
	if password != "admin@123" {
		return nil, common.NewError(common.ErrorUnauthorized, "Invalid credentials")
	}
	return &services.Session{Token: adminToken, User: testAdmin}, nil
}

func (fakeAuth) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	switch token {
	case "":
		return nil, common.NewError(common.ErrorUnauthorized, "No token provided")
	case userToken:
		return &models.Principal{User: testUser}, nil
	case adminToken:
		return &models.Principal{User: testAdmin}, nil
	}
	return nil, common.NewError(common.ErrorUnauthorized, "Invalid token")
}

type fakeJobs struct {
	listActive func(ctx context.Context) ([]*models.Job, error)
	get        func(ctx context.Context, p *models.Principal, id string) (*models.Job, error)
	create     func(ctx context.Context, p *models.Principal, f services.JobFields, active *bool) (*models.Job, error)
	update     func(ctx context.Context, id string, p models.JobPatch) (*models.Job, error)
	setActive  func(ctx context.Context, id string, active bool) (*models.Job, string, error)
	del        func(ctx context.Context, id string) error
	listAll    func(ctx context.Context) (*services.JobsOverview, error)
}

func (f *fakeJobs) ListActive(ctx context.Context) ([]*models.Job, error) { return f.listActive(ctx) }
func (f *fakeJobs) Get(ctx context.Context, p *models.Principal, id string) (*models.Job, error) {
	return f.get(ctx, p, id)
}
func (f *fakeJobs) Create(ctx context.Context, p *models.Principal, fl services.JobFields, active *bool) (*models.Job, error) {
	return f.create(ctx, p, fl, active)
}
func (f *fakeJobs) Update(ctx context.Context, id string, p models.JobPatch) (*models.Job, error) {
	return f.update(ctx, id, p)
}
func (f *fakeJobs) SetActive(ctx context.Context, id string, active bool) (*models.Job, string, error) {
	return f.setActive(ctx, id, active)
}
func (f *fakeJobs) Delete(ctx context.Context, id string) error { return f.del(ctx, id) }
func (f *fakeJobs) ListAll(ctx context.Context) (*services.JobsOverview, error) {
	return f.listAll(ctx)
}

type fakeApplications struct {
	submits  int
	submit   func(ctx context.Context, p *models.Principal, sub *services.Submission) (*services.SubmittedApplication, error)
	listMine func(ctx context.Context, p *models.Principal) ([]*models.ApplicationWithJob, error)
}

func (f *fakeApplications) Submit(ctx context.Context, p *models.Principal, sub *services.Submission) (*services.SubmittedApplication, error) {
	f.submits++
	return f.submit(ctx, p, sub)
}
func (f *fakeApplications) ListMine(ctx context.Context, p *models.Principal) ([]*models.ApplicationWithJob, error) {
	return f.listMine(ctx, p)
}
func (f *fakeApplications) ResumeDownloadURL(ctx context.Context, app *models.Application) string {
	return "https://signed/" + app.ResumeKey
}

type fakeProfile struct {
	get        func(ctx context.Context, p *models.Principal) (*services.Profile, error)
	updateName func(ctx context.Context, p *models.Principal, name string) (*models.User, error)
}

func (f *fakeProfile) Get(ctx context.Context, p *models.Principal) (*services.Profile, error) {
	return f.get(ctx, p)
}
func (f *fakeProfile) UpdateName(ctx context.Context, p *models.Principal, name string) (*models.User, error) {
	return f.updateName(ctx, p, name)
}

type fakeAdmin struct {
	stats        func(ctx context.Context) (*models.AdminStats, error)
	users        func(ctx context.Context) ([]*models.User, error)
	applications func(ctx context.Context) ([]*models.AdminApplication, error)
	updateStatus func(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	resume       func(ctx context.Context, id string) (string, error)
}

func (f *fakeAdmin) Stats(ctx context.Context) (*models.AdminStats, error) { return f.stats(ctx) }
func (f *fakeAdmin) ListUsers(ctx context.Context) ([]*models.User, error) { return f.users(ctx) }
func (f *fakeAdmin) ListApplications(ctx context.Context) ([]*models.AdminApplication, error) {
	return f.applications(ctx)
}
func (f *fakeAdmin) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	return f.updateStatus(ctx, id, status)
}
func (f *fakeAdmin) ResumeDownloadURL(ctx context.Context, id string) (string, error) {
	return f.resume(ctx, id)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.Auth == nil {
		deps.Auth = fakeAuth{}
	}
	return NewRouter(deps, RouterConfig{}, logging.New(logging.FormatJSON, io.Discard))
}

func do(r http.Handler, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
