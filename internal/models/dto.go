package models

type UploadResponse struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	OriginalName  string `json:"original_name"`
	FileType      string `json:"file_type"`
	ParsingStatus string `json:"parsing_status"`
}

type CreateJobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type EvaluateRequest struct {
	ResumeID string `json:"resume_id"`
	JobID    string `json:"job_id"`
}

type BatchEvaluateRequest struct {
	JobID     string   `json:"job_id"`
	ResumeIDs []string `json:"resume_ids"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BatchEvaluateResponse struct {
	JobID       string             `json:"job_id"`
	Evaluations []EvaluateResponse `json:"evaluations"`
	Failures    []BatchFailure     `json:"failures,omitempty"`
}

type BatchFailure struct {
	ResumeID string `json:"resume_id"`
	Error    string `json:"error"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *ScoringResult  `json:"result,omitempty"`
	Feedback     *FeedbackBundle `json:"feedback,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}
