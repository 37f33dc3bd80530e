package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *handler) submitApplication(c *gin.Context, p *models.Principal) {
	sub, err := parseApplicationForm(c)
	if err != nil {
		// the rest of the body is left unread
		c.Header("Connection", "close")
		fail(c, err)
		return
	}

	res, err := h.deps.Applications.Submit(c.Request.Context(), p, sub)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, submittedView{Application: res.Application, ResumeDownloadURL: res.ResumeDownloadURL})
}

func (h *handler) myApplications(c *gin.Context, p *models.Principal) {
	ctx := c.Request.Context()
	apps, err := h.deps.Applications.ListMine(ctx, p)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]*myApplicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, &myApplicationView{
			ID:                a.ID,
			Status:            a.Status,
			AppliedAt:         a.AppliedAt,
			ResumeURL:         a.ResumeURL,
			ResumeDownloadURL: h.deps.Applications.ResumeDownloadURL(ctx, &a.Application),
			Job:               summarize(a.Job),
		})
	}
	c.JSON(http.StatusOK, out)
}
