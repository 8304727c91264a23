package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a persisted job posting plus the analyzed snapshot computed at
// creation time from its description and requirements.
type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Company      string    `gorm:"type:text;not null" json:"company"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text;not null" json:"requirements"`

	CleanedText string `gorm:"type:text" json:"-"`

	SkillsRequired         []string        `gorm:"serializer:json;type:jsonb" json:"skills_required"`
	SkillsPreferred        []string        `gorm:"serializer:json;type:jsonb" json:"skills_preferred"`
	ExperienceLevel        ExperienceLevel `gorm:"type:text" json:"experience_level"`
	ExperienceYears        int             `json:"experience_years"`
	EducationRequired      *string         `gorm:"type:text" json:"education_required,omitempty"`
	CertificationsRequired []string        `gorm:"serializer:json;type:jsonb" json:"certifications_required"`
	JobType                JobType         `gorm:"type:text" json:"job_type"`
	Location               *string         `gorm:"type:text" json:"location,omitempty"`
	SalaryRange            *string         `gorm:"type:text" json:"salary_range,omitempty"`

	Keywords         []string `gorm:"serializer:json;type:jsonb" json:"keywords"`
	Responsibilities []string `gorm:"serializer:json;type:jsonb" json:"responsibilities"`
	Qualifications   []string `gorm:"serializer:json;type:jsonb" json:"qualifications"`

	ComplexityScore float64 `json:"complexity_score"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// Analyzed rebuilds the scorer-facing snapshot from the stored columns.
func (j *Job) Analyzed() *AnalyzedJob {
	return &AnalyzedJob{
		Title:                  j.Title,
		Company:                j.Company,
		RawText:                j.Description + "\n\n" + j.Requirements,
		CleanedText:            j.CleanedText,
		SkillsRequired:         j.SkillsRequired,
		SkillsPreferred:        j.SkillsPreferred,
		ExperienceLevel:        j.ExperienceLevel,
		ExperienceYears:        j.ExperienceYears,
		EducationRequired:      derefStr(j.EducationRequired),
		CertificationsRequired: j.CertificationsRequired,
		JobType:                j.JobType,
		Location:               derefStr(j.Location),
		SalaryRange:            derefStr(j.SalaryRange),
		Keywords:               j.Keywords,
		Responsibilities:       j.Responsibilities,
		Qualifications:         j.Qualifications,
		ComplexityScore:        j.ComplexityScore,
	}
}

// ApplyAnalyzed copies an analyzed snapshot into the row's columns.
func (j *Job) ApplyAnalyzed(a *AnalyzedJob) {
	j.CleanedText = a.CleanedText
	j.SkillsRequired = a.SkillsRequired
	j.SkillsPreferred = a.SkillsPreferred
	j.ExperienceLevel = a.ExperienceLevel
	j.ExperienceYears = a.ExperienceYears
	j.EducationRequired = optStr(a.EducationRequired)
	j.CertificationsRequired = a.CertificationsRequired
	j.JobType = a.JobType
	j.Location = optStr(a.Location)
	j.SalaryRange = optStr(a.SalaryRange)
	j.Keywords = a.Keywords
	j.Responsibilities = a.Responsibilities
	j.Qualifications = a.Qualifications
	j.ComplexityScore = a.ComplexityScore
}
