package model

import "time"

const MaxProjectSourceLen = 100

// ErrorLog is an application error reported by an external project, or by
// this service about itself.
type ErrorLog struct {
	ID             string         `json:"id"`
	ProjectSource  string         `json:"project_source"`
	Timestamp      time.Time      `json:"timestamp"`  // caller supplied
	ErrorMessage   string         `json:"error_message"`
	AdditionalInfo map[string]any `json:"additional_info"`
	CreatedAt      time.Time      `json:"created_at"` // server receive time
}

// ErrorLogInput is the body of POST /log.
type ErrorLogInput struct {
	ProjectSource  string         `json:"project_source" binding:"required,max=100"`
	Timestamp      *ClientTime    `json:"timestamp"`
	ErrorMessage   string         `json:"error_message" binding:"required"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

type SubmitResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}
