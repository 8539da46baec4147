package model

import "time"

// PostingStatus is the moderation state of a job posting.
type PostingStatus string

const (
	PostingPending  PostingStatus = "pending"
	PostingApproved PostingStatus = "approved"
	PostingRejected PostingStatus = "rejected"
)

// Valid reports whether the status is one of the supported states.
func (s PostingStatus) Valid() bool {
	switch s {
	case PostingPending, PostingApproved, PostingRejected:
		return true
	default:
		return false
	}
}

// Posting is a job posting created by a recruiter. New postings start
// pending and become visible to students only once approved.
type Posting struct {
	ID          string        `db:"id"            json:"id"`
	RecruiterID int64         `db:"recruiter_id"  json:"recruiter_id"`
	CompanyName string        `db:"company_name"  json:"company_name"`
	Title       string        `db:"title"         json:"title"`
	Description string        `db:"description"   json:"description"`
	Location    string        `db:"location"      json:"location"`
	SalaryRange string        `db:"salary_range"  json:"salary_range,omitempty"`
	Status      PostingStatus `db:"status"        json:"status"`
	CreatedAt   time.Time     `db:"created_at"    json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"    json:"updated_at"`
}
