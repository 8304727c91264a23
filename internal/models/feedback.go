package models

type FeedbackPriority string

const (
	PriorityLow    FeedbackPriority = "low"
	PriorityMedium FeedbackPriority = "medium"
	PriorityHigh   FeedbackPriority = "high"
)

type SkillImprovement struct {
	Skill        string   `json:"skill"`
	CurrentLevel string   `json:"current_level"`
	TargetLevel  string   `json:"target_level"`
	Suggestion   string   `json:"suggestion"`
	Timeline     string   `json:"timeline"`
	Resources    []string `json:"resources"`
}

type ExperienceImprovement struct {
	Area             string `json:"area"`
	CurrentSituation string `json:"current_situation"`
	TargetSituation  string `json:"target_situation"`
	Suggestion       string `json:"suggestion"`
	Timeline         string `json:"timeline"`
	Priority         string `json:"priority"`
}

type EducationImprovement struct {
	Area         string   `json:"area"`
	Requirement  string   `json:"requirement"`
	Suggestion   string   `json:"suggestion"`
	Alternatives []string `json:"alternatives"`
	Timeline     string   `json:"timeline"`
	Priority     string   `json:"priority"`
}

type CertificationSuggestion struct {
	Certification string   `json:"certification"`
	Importance    string   `json:"importance"`
	Suggestion    string   `json:"suggestion"`
	StudyTime     string   `json:"study_time"`
	Cost          string   `json:"cost"`
	Resources     []string `json:"resources"`
}

type ProjectSuggestion struct {
	ProjectType    string   `json:"project_type"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies"`
	Timeline       string   `json:"timeline"`
	Difficulty     string   `json:"difficulty"`
	PortfolioValue string   `json:"portfolio_value"`
}

type ActionItem struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Priority    string `json:"priority"`
}

type CareerGoal struct {
	Goal        string   `json:"goal"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	Milestones  []string `json:"milestones"`
}

type ResourceRecommendations struct {
	Courses     []string `json:"courses"`
	Books       []string `json:"books"`
	Platforms   []string `json:"platforms"`
	Communities []string `json:"communities"`
}

// FeedbackBundle is the candidate-facing feedback derived from exactly one
// ScoringResult plus the originating resume and job snapshots.
type FeedbackBundle struct {
	OverallFeedback string `json:"overall_feedback"`

	SkillImprovements        []SkillImprovement        `json:"skill_improvements"`
	ExperienceImprovements   []ExperienceImprovement   `json:"experience_improvements"`
	EducationImprovements    []EducationImprovement    `json:"education_improvements"`
	CertificationSuggestions []CertificationSuggestion `json:"certification_suggestions"`
	ProjectSuggestions       []ProjectSuggestion       `json:"project_suggestions"`

	ImmediateActions        []ActionItem            `json:"immediate_actions"`
	LongTermGoals           []CareerGoal            `json:"long_term_goals"`
	ResourceRecommendations ResourceRecommendations `json:"resource_recommendations"`

	FeedbackType string           `json:"feedback_type"`
	Priority     FeedbackPriority `json:"priority"`
}
