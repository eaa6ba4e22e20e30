package models

// Submission is one user-provided feedback record, persisted as a single
// JSON object in the storage container. Records are immutable once created.
type Submission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"` // trimmed and lower-cased on receipt
	Category  string `json:"category"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // RFC3339 UTC, sortable

	// Optional: captured from the request for analytics, best effort
	UserAgent string `json:"userAgent,omitempty"`
	IP        string `json:"ip,omitempty"`

	// Attached at list time, never persisted with the record
	BlobName     string `json:"blobName,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// SubmitResponse is the envelope returned by the submit endpoint.
// SubmissionID is populated whenever a record was built, even if the
// storage write failed; callers must inspect Success.
type SubmitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// ListResponse is the envelope returned by the submissions listing endpoint.
type ListResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    []Submission `json:"data"`
	Count   int          `json:"count"`
}

// HealthResponse reports liveness and whether storage is configured.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"` // "connected" or "not configured"
}
