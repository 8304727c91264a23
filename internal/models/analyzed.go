package models

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// AnalyzedJob is the structured snapshot produced by the job analyzer from
// a job's description and requirements text. Immutable once computed.
type AnalyzedJob struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`

	RawText     string `json:"raw_text"`
	CleanedText string `json:"cleaned_text"`

	SkillsRequired         []string        `json:"skills_required"`
	SkillsPreferred        []string        `json:"skills_preferred"`
	ExperienceLevel        ExperienceLevel `json:"experience_level"`
	ExperienceYears        int             `json:"experience_years"` // 0 means not specified
	EducationRequired      string          `json:"education_required,omitempty"`
	CertificationsRequired []string        `json:"certifications_required"`
	JobType                JobType         `json:"job_type"`
	Location               string          `json:"location,omitempty"`
	SalaryRange            string          `json:"salary_range,omitempty"`

	Keywords         []string `json:"keywords"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`

	ComplexityScore float64 `json:"complexity_score"`
}
