package models

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every valid status in display order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusPending, StatusReviewed, StatusApproved, StatusRejected}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplicantFields are the free-text fields supplied with a submission.
type ApplicantFields struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ExpectedSalary   string `json:"expected_salary"`
	CoverLetter      string `json:"cover_letter"`
	Location         string `json:"location"`
	City             string `json:"city"`
	Education        string `json:"education"`
	PositionApplying string `json:"position_applying"`
}

// Application is one user's application to one job; (JobID, UserID) is unique.
// ResumeKey is the storage key behind ResumeURL.
type Application struct {
	ID     string `json:"id"`
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`
	ApplicantFields
	ResumeURL string            `json:"resume_url"`
	ResumeKey string            `json:"-"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`
}

// ApplicationWithJob is an application joined with its full posting.
type ApplicationWithJob struct {
	Application
	Job *Job `json:"job"`
}

// AdminApplication is an application joined with applicant and posting summaries.
type AdminApplication struct {
	Application
	User *UserSummary `json:"users"`
	Job  *JobSummary  `json:"jobs"`
}

// JobApplicationCount is one row of the per-job application breakdown.
type JobApplicationCount struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Applications int    `json:"applications"`
}

type AdminStats struct {
	TotalUsers         int                    `json:"totalUsers"`
	TotalApplications  int                    `json:"totalApplications"`
	ApplicationsPerJob []*JobApplicationCount `json:"applicationsPerJob"`
}

// StatusCounts tallies a user's applications by status.
type StatusCounts struct {
	Total    int `json:"total_applications"`
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CountStatuses tallies apps by status.
func CountStatuses(apps []*ApplicationWithJob) StatusCounts {
	c := StatusCounts{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case StatusPending:
			c.Pending++
		case StatusReviewed:
			c.Reviewed++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		}
	}
	return c
}
