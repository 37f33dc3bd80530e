package rest

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateApplicationStatus(t *testing.T) {
	fa := &fakeAdmin{updateStatus: func(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
		if !status.Valid() {
			return nil, common.NewError(common.ErrorInvalidInput, "Invalid status").With("valid_statuses", models.ApplicationStatuses())
		}
		if id == "missing" {
			return nil, common.NewError(common.ErrorNotFound, "Application not found")
		}
		return &models.Application{ID: id, Status: status}, nil
	}}
	r := newTestRouter(t, Deps{Admin: fa})

	w := do(r, http.MethodPatch, "/api/admin/applications/a-1", adminToken, strings.NewReader(`{"status":"approved"}`), jsonCT)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "approved", resp["application"].(map[string]any)["status"])

	for _, body := range []string{`{"status":"hired"}`, `not json`} {
		w = do(r, http.MethodPatch, "/api/admin/applications/a-1", adminToken, strings.NewReader(body), jsonCT)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		resp = decode(t, w)
		assert.Equal(t, "Invalid status", resp["error"])
		assert.Equal(t, []any{"pending", "reviewed", "approved", "rejected"}, resp["valid_statuses"])
	}

	w = do(r, http.MethodPatch, "/api/admin/applications/missing", adminToken, strings.NewReader(`{"status":"reviewed"}`), jsonCT)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, "/api/admin/applications/a-1", userToken, strings.NewReader(`{"status":"approved"}`), jsonCT)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminResumeRedirects(t *testing.T) {
	fa := &fakeAdmin{resume: func(ctx context.Context, id string) (string, error) {
		if id == "a-1" {
			return "https://signed.example.com/resumes/a.pdf?sig=1", nil
		}
		return "", common.NewError(common.ErrorNotFound, "Application not found")
	}}
	r := newTestRouter(t, Deps{Admin: fa})

	w := do(r, http.MethodGet, "/api/admin/applications/a-1/resume", adminToken, nil, "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://signed.example.com/resumes/a.pdf?sig=1", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/api/admin/applications/nope/resume", adminToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStatsAndLists(t *testing.T) {
	fa := &fakeAdmin{
		stats: func(ctx context.Context) (*models.AdminStats, error) {
			return &models.AdminStats{
				TotalUsers:         3,
				TotalApplications:  2,
				ApplicationsPerJob: []*models.JobApplicationCount{{ID: "j-1", Title: "Go", Applications: 2}},
			}, nil
		},
		users: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{testUser, testAdmin}, nil
		},
		applications: func(ctx context.Context) ([]*models.AdminApplication, error) {
			return []*models.AdminApplication{{
				Application: models.Application{ID: "a-1", Status: models.StatusPending},
				User:        &models.UserSummary{ID: "u-1", Name: "Jane", Email: "jane@example.com"},
				Job:         &models.JobSummary{ID: "j-1", Title: "Go"},
			}}, nil
		},
	}
	r := newTestRouter(t, Deps{Admin: fa})

	w := do(r, http.MethodGet, "/api/admin/stats", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalUsers":3,"totalApplications":2,"applicationsPerJob":[{"id":"j-1","title":"Go","applications":2}]}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/admin/users", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"admin@example.com"`)
	assert.Contains(t, w.Body.String(), `"profile_picture":null`)

	w = do(r, http.MethodGet, "/api/admin/applications", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users":{"id":"u-1","name":"Jane","email":"jane@example.com"}`)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/admin/stats", userToken, nil, "").Code)
}

func TestAdminStats_InternalErrorIsMasked(t *testing.T) {
	fa := &fakeAdmin{stats: func(ctx context.Context) (*models.AdminStats, error) {
		return nil, assert.AnError
	}}
	r := newTestRouter(t, Deps{Admin: fa})

	w := do(r, http.MethodGet, "/api/admin/stats", adminToken, nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, internalMessage, decode(t, w)["error"])
}
