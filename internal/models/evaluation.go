package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// Evaluation ties one resume to one job and holds the scoring result once
// the worker completes it. At most one non-superseded evaluation exists
// per (resume, job) pair; re-evaluation requires superseding the old one.
type Evaluation struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"resume_id"`
	JobID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"job_id"`
	Status     EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`
	Superseded bool             `gorm:"not null;default:false" json:"superseded"`

	RelevanceScore *float64 `gorm:"type:decimal(5,2)" json:"relevance_score,omitempty"`
	FitVerdict     *string  `gorm:"type:text" json:"fit_verdict,omitempty"`

	SkillsMatchScore        *float64 `gorm:"type:decimal(5,2)" json:"skills_match_score,omitempty"`
	ExperienceMatchScore    *float64 `gorm:"type:decimal(5,2)" json:"experience_match_score,omitempty"`
	EducationMatchScore     *float64 `gorm:"type:decimal(5,2)" json:"education_match_score,omitempty"`
	CertificationMatchScore *float64 `gorm:"type:decimal(5,2)" json:"certification_match_score,omitempty"`
	ProjectMatchScore       *float64 `gorm:"type:decimal(5,2)" json:"project_match_score,omitempty"`
	SemanticSimilarityScore *float64 `gorm:"type:decimal(5,2)" json:"semantic_similarity_score,omitempty"`

	MatchedSkills []string `gorm:"serializer:json;type:jsonb" json:"matched_skills"`
	MissingSkills []string `gorm:"serializer:json;type:jsonb" json:"missing_skills"`
	Strengths     []string `gorm:"serializer:json;type:jsonb" json:"strengths"`
	Weaknesses    []string `gorm:"serializer:json;type:jsonb" json:"weaknesses"`

	AIAnalysis   *string  `gorm:"type:text" json:"ai_analysis,omitempty"`
	AIConfidence *float64 `gorm:"type:decimal(3,2)" json:"ai_confidence,omitempty"`

	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
	Job    Job    `gorm:"foreignKey:JobID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// Result rebuilds the ScoringResult record from the stored columns.
// Returns nil unless the evaluation completed.
func (e *Evaluation) Result() *ScoringResult {
	if e.Status != StatusCompleted {
		return nil
	}
	return &ScoringResult{
		RelevanceScore:          deref(e.RelevanceScore),
		FitVerdict:              FitVerdict(derefStr(e.FitVerdict)),
		SkillsMatchScore:        deref(e.SkillsMatchScore),
		ExperienceMatchScore:    deref(e.ExperienceMatchScore),
		EducationMatchScore:     deref(e.EducationMatchScore),
		CertificationMatchScore: deref(e.CertificationMatchScore),
		ProjectMatchScore:       deref(e.ProjectMatchScore),
		SemanticSimilarityScore: deref(e.SemanticSimilarityScore),
		MatchedSkills:           e.MatchedSkills,
		MissingSkills:           e.MissingSkills,
		Strengths:               e.Strengths,
		Weaknesses:              e.Weaknesses,
		AIAnalysis:              derefStr(e.AIAnalysis),
		AIConfidence:            deref(e.AIConfidence),
	}
}

// FeedbackRecord is the persisted FeedbackBundle, 1:1 with its evaluation
// and invalidated together with it.
type FeedbackRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EvaluationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"evaluation_id"`

	Bundle FeedbackBundle `gorm:"serializer:json;type:jsonb" json:"bundle"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FeedbackRecord) TableName() string {
	return "feedback"
}
