package report

import "time"

const StatusCompleted = "completed"

// Report is addressed to a client by internal user id. The joined client name
// is a display attribute, never an ownership key.
type Report struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	ClientID   string    `db:"client_id" json:"client_id"`
	ClientName string    `db:"client_name" json:"client_name,omitempty"`
	AIContext  string    `db:"ai_context" json:"ai_context"`
	Status     string    `db:"status" json:"status"`
	FileURL    string    `db:"file_url" json:"file_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CreateReportRequest captures payload for creating a report
type CreateReportRequest struct {
	Title     string `json:"title"`
	ClientID  string `json:"client_id"`
	AIContext string `json:"ai_context"`
	FileName  string `json:"file_name"`
}

// UpdateReportRequest captures payload for updating a report
type UpdateReportRequest struct {
	Title     *string `json:"title,omitempty"`
	AIContext *string `json:"ai_context,omitempty"`
	Status    *string `json:"status,omitempty"`
	FileName  *string `json:"file_name,omitempty"`
}
