package models

// PaginatedAttemptsResponse is the response structure for a learner's quiz history.
type PaginatedAttemptsResponse struct {
	Data       []QuizAttempt   `json:"data"`
	Summary    ProgressSummary `json:"summary"`
	Pagination PaginationInfo  `json:"pagination"`
}

// PaginationInfo holds metadata for paginated responses.
type PaginationInfo struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}
