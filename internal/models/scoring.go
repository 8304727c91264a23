package models

type FitVerdict string

const (
	FitHigh   FitVerdict = "high"
	FitMedium FitVerdict = "medium"
	FitLow    FitVerdict = "low"
)

// ScoringResult is the full output of the relevance scorer for one
// (resume, job) pair. All scores are reported on a 0-100 scale, rounded
// to two decimals. Numeric fields are deterministic for identical input
// snapshots; only AIAnalysis may vary call to call.
type ScoringResult struct {
	RelevanceScore float64    `json:"relevance_score"`
	FitVerdict     FitVerdict `json:"fit_verdict"`

	SkillsMatchScore        float64 `json:"skills_match_score"`
	ExperienceMatchScore    float64 `json:"experience_match_score"`
	EducationMatchScore     float64 `json:"education_match_score"`
	CertificationMatchScore float64 `json:"certification_match_score"`
	ProjectMatchScore       float64 `json:"project_match_score"`
	SemanticSimilarityScore float64 `json:"semantic_similarity_score"`

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`

	AIAnalysis   string  `json:"ai_analysis"`
	AIConfidence float64 `json:"ai_confidence"`
}
