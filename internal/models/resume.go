package models

import (
	"time"

	"github.com/google/uuid"
)

type ParsingStatus string

const (
	ParsingPending    ParsingStatus = "pending"
	ParsingProcessing ParsingStatus = "processing"
	ParsingCompleted  ParsingStatus = "completed"
	ParsingFailed     ParsingStatus = "failed"
)

// Resume is the persisted upload plus the parsed snapshot once parsing
// completes. Parsed fields stay NULL while status is pending/failed.
type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileType         string    `gorm:"type:text" json:"file_type"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	FileSize         int64     `json:"file_size"`

	CandidateName *string `gorm:"type:text" json:"candidate_name,omitempty"`
	Email         *string `gorm:"type:text" json:"email,omitempty"`
	Phone         *string `gorm:"type:text" json:"phone,omitempty"`
	Location      *string `gorm:"type:text" json:"location,omitempty"`
	Summary       *string `gorm:"type:text" json:"summary,omitempty"`

	RawText     string `gorm:"type:text" json:"-"`
	CleanedText string `gorm:"type:text" json:"-"`

	Skills         []string          `gorm:"serializer:json;type:jsonb" json:"skills"`
	Experience     []ExperienceEntry `gorm:"serializer:json;type:jsonb" json:"experience"`
	Education      []EducationEntry  `gorm:"serializer:json;type:jsonb" json:"education"`
	Certifications []string          `gorm:"serializer:json;type:jsonb" json:"certifications"`
	Projects       []ProjectEntry    `gorm:"serializer:json;type:jsonb" json:"projects"`
	Languages      []string          `gorm:"serializer:json;type:jsonb" json:"languages"`

	ConfidenceScore  *float64 `json:"confidence_score,omitempty"`
	TextQualityScore *float64 `json:"text_quality_score,omitempty"`

	ParsingStatus ParsingStatus `gorm:"not null;default:'pending'" json:"parsing_status"`
	ParsingErrors *string       `gorm:"type:text" json:"parsing_errors,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

// Parsed rebuilds the scorer-facing snapshot from the stored columns.
func (r *Resume) Parsed() *ParsedResume {
	p := &ParsedResume{
		RawText:          r.RawText,
		CleanedText:      r.CleanedText,
		Skills:           r.Skills,
		Experience:       r.Experience,
		Education:        r.Education,
		Certifications:   r.Certifications,
		Projects:         r.Projects,
		Languages:        r.Languages,
		ConfidenceScore:  deref(r.ConfidenceScore),
		TextQualityScore: deref(r.TextQualityScore),
	}
	p.CandidateName = derefStr(r.CandidateName)
	p.Email = derefStr(r.Email)
	p.Phone = derefStr(r.Phone)
	p.Location = derefStr(r.Location)
	p.Summary = derefStr(r.Summary)
	return p
}

// ApplyParsed copies a parsed snapshot into the row's columns.
func (r *Resume) ApplyParsed(p *ParsedResume) {
	r.RawText = p.RawText
	r.CleanedText = p.CleanedText
	r.CandidateName = optStr(p.CandidateName)
	r.Email = optStr(p.Email)
	r.Phone = optStr(p.Phone)
	r.Location = optStr(p.Location)
	r.Summary = optStr(p.Summary)
	r.Skills = p.Skills
	r.Experience = p.Experience
	r.Education = p.Education
	r.Certifications = p.Certifications
	r.Projects = p.Projects
	r.Languages = p.Languages
	confidence := p.ConfidenceScore
	quality := p.TextQualityScore
	r.ConfidenceScore = &confidence
	r.TextQualityScore = &quality
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
