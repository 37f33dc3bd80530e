package models

import "time"

// Job is a posting. New postings are inactive unless explicitly activated,
// and only active postings are visible to non-admins.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	SalaryRange  string    `json:"salary_range"`
	Company      string    `json:"company"`
	IsActive     bool      `json:"is_active"`
	PostedBy     *string   `json:"posted_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobPatch is an edit of a posting. Title and Description are always
// replaced; a nil optional field keeps the stored value.
type JobPatch struct {
	ID           string
	Title        string
	Description  string
	Requirements *string
	Location     *string
	SalaryRange  *string
	Company      *string
}

// JobSummary is the posting part of joined application listings.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type JobStats struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
