package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handler) getProfile(c *gin.Context, p *models.Principal) {
	prof, err := h.deps.Profile.Get(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	apps := make([]*profileApplicationView, 0, len(prof.Applications))
	for _, a := range prof.Applications {
		apps = append(apps, &profileApplicationView{
			ApplicationID: a.ID,
			AppliedAt:     a.AppliedAt,
			Status:        a.Status,
			Job:           a.Job,
		})
	}
	c.JSON(http.StatusOK, profileView{User: newUserView(prof.User), Applications: apps, Stats: prof.Stats})
}

func (h *handler) updateProfile(c *gin.Context, p *models.Principal) {
	var req profileRequest
	if !bindJSON(c, &req, "Name is required") {
		return
	}
	user, err := h.deps.Profile.UpdateName(c.Request.Context(), p, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}
