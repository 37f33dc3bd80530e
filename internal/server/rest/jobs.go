package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gin-gonic/gin"
)

type jobRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	SalaryRange  string `json:"salary_range"`
	Company      string `json:"company"`
	IsActive     *bool  `json:"is_active"`
}

func (r *jobRequest) fields() services.JobFields {
	return services.JobFields{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		SalaryRange:  r.SalaryRange,
		Company:      r.Company,
	}
}

// jobUpdateRequest leaves the optional fields nil when they are not sent, so
// a partial PUT keeps their stored values.
type jobUpdateRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Requirements *string `json:"requirements"`
	Location     *string `json:"location"`
	SalaryRange  *string `json:"salary_range"`
	Company      *string `json:"company"`
}

func (r *jobUpdateRequest) patch() models.JobPatch {
	return models.JobPatch{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		SalaryRange:  r.SalaryRange,
		Company:      r.Company,
	}
}

type jobStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *handler) listJobs(c *gin.Context) {
	jobs, err := h.deps.Jobs.ListActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *handler) getJob(c *gin.Context, p *models.Principal) {
	job, err := h.deps.Jobs.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *handler) createJob(c *gin.Context, p *models.Principal) {
	var req jobRequest
	if !bindJSON(c, &req, "Missing required fields") {
		return
	}
	job, err := h.deps.Jobs.Create(c.Request.Context(), p, req.fields(), req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *handler) updateJob(c *gin.Context, _ *models.Principal) {
	var req jobUpdateRequest
	if !bindJSON(c, &req, "Missing required fields") {
		return
	}
	job, err := h.deps.Jobs.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *handler) setJobStatus(c *gin.Context, _ *models.Principal) {
	var req jobStatusRequest
	if !bindJSON(c, &req, "is_active is required") {
		return
	}
	job, msg, err := h.deps.Jobs.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobStatusView{Job: job, StatusMessage: msg})
}

func (h *handler) deleteJob(c *gin.Context, _ *models.Principal) {
	if err := h.deps.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func (h *handler) listAllJobs(c *gin.Context, _ *models.Principal) {
	out, err := h.deps.Jobs.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobsOverviewView{Jobs: out.Jobs, Stats: out.Stats})
}
