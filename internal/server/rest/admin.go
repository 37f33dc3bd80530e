package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (h *handler) adminUsers(c *gin.Context, _ *models.Principal) {
	users, err := h.deps.Admin.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]*userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) adminApplications(c *gin.Context, _ *models.Principal) {
	apps, err := h.deps.Admin.ListApplications(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *handler) adminResume(c *gin.Context, _ *models.Principal) {
	u, err := h.deps.Admin.ResumeDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, u)
}

func (h *handler) adminStats(c *gin.Context, _ *models.Principal) {
	stats, err := h.deps.Admin.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// updateApplicationStatus accepts a malformed body as an empty status so the
// caller still gets the list of valid statuses.
func (h *handler) updateApplicationStatus(c *gin.Context, _ *models.Principal) {
	var req statusRequest
	_ = c.ShouldBindJSON(&req)

	app, err := h.deps.Admin.UpdateApplicationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, statusUpdateView{Success: true, Application: app})
}
