package rest

import (
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type userView struct {
	*models.User
	ProfilePicture *string `json:"profile_picture"`
}

func newUserView(u *models.User) *userView {
	return &userView{User: u, ProfilePicture: u.ProfilePicture()}
}

type sessionView struct {
	Token string    `json:"token"`
	User  *userView `json:"user"`
}

type jobStatusView struct {
	*models.Job
	StatusMessage string `json:"status_message"`
}

type jobsOverviewView struct {
	Jobs  []*models.Job   `json:"jobs"`
	Stats models.JobStats `json:"stats"`
}

type submittedView struct {
	*models.Application
	ResumeDownloadURL string `json:"resume_download_url"`
}

type myApplicationView struct {
	ID                string                   `json:"id"`
	Status            models.ApplicationStatus `json:"status"`
	AppliedAt         time.Time                `json:"applied_at"`
	ResumeURL         string                   `json:"resume_url"`
	ResumeDownloadURL string                   `json:"resume_download_url"`
	Job               *models.JobSummary       `json:"jobs"`
}

type profileApplicationView struct {
	ApplicationID string                   `json:"application_id"`
	AppliedAt     time.Time                `json:"applied_at"`
	Status        models.ApplicationStatus `json:"status"`
	Job           *models.Job              `json:"job"`
}

type profileView struct {
	User         *userView                 `json:"user"`
	Applications []*profileApplicationView `json:"applications"`
	Stats        models.StatusCounts       `json:"stats"`
}

type statusUpdateView struct {
	Success     bool                `json:"success"`
	Application *models.Application `json:"application"`
}

func summarize(j *models.Job) *models.JobSummary {
	if j == nil {
		return nil
	}
	return &models.JobSummary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location}
}
