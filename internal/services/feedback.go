package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

// FeedbackGenerator turns a scoring result into candidate-facing
// guidance. Generation never fails: the narrative degrades to a verdict
// template when the backend or the guidance store is unavailable, and
// every structured suggestion list is built locally.
type FeedbackGenerator struct {
	generator        TextGenerator
	guidance         GuidanceStore
	embedder         Embedder
	prompts          *PromptBuilder
	narrativeTimeout time.Duration
	retryMaxAttempts int
}

func NewFeedbackGenerator(generator TextGenerator, guidance GuidanceStore, embedder Embedder, narrativeTimeout time.Duration, retryMaxAttempts int) *FeedbackGenerator {
	if narrativeTimeout <= 0 {
		narrativeTimeout = 30 * time.Second
	}
	if retryMaxAttempts <= 0 {
		retryMaxAttempts = 3
	}
	return &FeedbackGenerator{
		generator:        generator,
		guidance:         guidance,
		embedder:         embedder,
		prompts:          NewPromptBuilder(),
		narrativeTimeout: narrativeTimeout,
		retryMaxAttempts: retryMaxAttempts,
	}
}

// Generate builds the full feedback bundle for a completed evaluation.
func (g *FeedbackGenerator) Generate(ctx context.Context, result *models.ScoringResult, resume *models.ParsedResume, job *models.AnalyzedJob) *models.FeedbackBundle {
	return &models.FeedbackBundle{
		OverallFeedback:          g.overallFeedback(ctx, result, resume, job),
		SkillImprovements:        skillImprovements(result.MissingSkills),
		ExperienceImprovements:   experienceImprovements(resume, job),
		EducationImprovements:    educationImprovements(resume, job),
		CertificationSuggestions: certificationSuggestions(resume, job),
		ProjectSuggestions:       projectSuggestions(result.MissingSkills),
		ImmediateActions:         immediateActions(result.MissingSkills),
		LongTermGoals:            longTermGoals(),
		ResourceRecommendations:  resourceRecommendations(result.MissingSkills),
		FeedbackType:             "automatic",
		Priority:                 feedbackPriority(result.RelevanceScore, result.FitVerdict),
	}
}

// overallFeedback asks the narrative backend for a personalized message,
// optionally enriched with retrieved career guidance. Any failure falls
// back to a verdict-tier template.
func (g *FeedbackGenerator) overallFeedback(ctx context.Context, result *models.ScoringResult, resume *models.ParsedResume, job *models.AnalyzedJob) string {
	if g.generator == nil {
		return fallbackFeedback(result.RelevanceScore, result.FitVerdict)
	}

	guidanceContext := g.retrieveGuidance(ctx, result, job)
	prompt := g.prompts.BuildFeedbackPrompt(resume, job, result, guidanceContext)

	callCtx, cancel := context.WithTimeout(ctx, g.narrativeTimeout)
	defer cancel()

	feedback, err := g.generator.GenerateTextWithRetry(callCtx, prompt, 0.7, g.retryMaxAttempts)
	if err != nil {
		log.Printf("⚠️  Feedback narrative degraded to fallback: %v", err)
		return fallbackFeedback(result.RelevanceScore, result.FitVerdict)
	}
	return strings.TrimSpace(feedback)
}

// retrieveGuidance looks up reference career guidance relevant to the
// candidate's gaps. Missing store, missing embedder or a failed lookup
// all yield empty context.
func (g *FeedbackGenerator) retrieveGuidance(ctx context.Context, result *models.ScoringResult, job *models.AnalyzedJob) string {
	if g.guidance == nil || g.embedder == nil {
		return ""
	}

	query := fmt.Sprintf("career advice for a candidate targeting %s, needs to develop: %s",
		job.Title, strings.Join(result.MissingSkills, ", "))

	vector, err := g.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Guidance query embedding failed: %v", err)
		return ""
	}

	snippets, err := g.guidance.SearchSimilar(ctx, vector, 3)
	if err != nil {
		log.Printf("⚠️  Guidance retrieval failed: %v", err)
		return ""
	}

	return g.prompts.FormatGuidanceContext(snippets)
}

func fallbackFeedback(score float64, verdict models.FitVerdict) string {
	switch verdict {
	case models.FitHigh:
		return fmt.Sprintf("Congratulations! Your resume shows a strong match (%v%%) for this position. Your technical skills and experience align well with the job requirements. Continue building on your strengths and consider applying for similar roles.", score)
	case models.FitMedium:
		return fmt.Sprintf("Your resume shows a moderate match (%v%%) for this position. There are several areas where you can strengthen your candidacy. Focus on developing the missing skills and gaining relevant experience to improve your chances.", score)
	default:
		return fmt.Sprintf("While your current profile shows a lower match (%v%%) for this specific role, there are clear paths to improve your candidacy. Focus on developing the key skills and experience mentioned in the job requirements.", score)
	}
}

// skillImprovements suggests a development plan for the top 5 missing
// skills.
func skillImprovements(missingSkills []string) []models.SkillImprovement {
	top := missingSkills
	if len(top) > 5 {
		top = top[:5]
	}

	var improvements []models.SkillImprovement
	for _, skill := range top {
		improvements = append(improvements, models.SkillImprovement{
			Skill:        skill,
			CurrentLevel: "Not mentioned",
			TargetLevel:  "Proficient",
			Suggestion:   fmt.Sprintf("Focus on developing %s skills through hands-on projects and practice", skill),
			Timeline:     "3-6 months",
			Resources:    resourcesForSkill(skill),
		})
	}
	return improvements
}

// experienceImprovements flags a tenure gap when the job asks for more
// years than the resume's approximated tenure covers.
func experienceImprovements(resume *models.ParsedResume, job *models.AnalyzedJob) []models.ExperienceImprovement {
	if job.ExperienceYears == 0 || len(resume.Experience)*2 >= job.ExperienceYears {
		return nil
	}

	return []models.ExperienceImprovement{{
		Area:             "Work Experience",
		CurrentSituation: fmt.Sprintf("Currently have %d positions listed", len(resume.Experience)),
		TargetSituation:  fmt.Sprintf("Job requires %d years of experience", job.ExperienceYears),
		Suggestion:       "Consider gaining additional relevant work experience through internships, freelance projects, or volunteer work",
		Timeline:         "6-12 months",
		Priority:         "High",
	}}
}

// educationImprovements fires only when the job names a degree and the
// resume lists no education at all.
func educationImprovements(resume *models.ParsedResume, job *models.AnalyzedJob) []models.EducationImprovement {
	if job.EducationRequired == "" || len(resume.Education) > 0 {
		return nil
	}

	return []models.EducationImprovement{{
		Area:        "Education",
		Requirement: job.EducationRequired,
		Suggestion:  fmt.Sprintf("Consider pursuing %s to meet the job requirements", job.EducationRequired),
		Alternatives: []string{
			"Online courses and certifications",
			"Professional development programs",
			"Self-study with practical projects",
		},
		Timeline: "1-2 years",
		Priority: "Medium",
	}}
}

// certificationSuggestions covers each required certification the resume
// does not already list. Membership here is exact, unlike the scorer's
// substring overlap.
func certificationSuggestions(resume *models.ParsedResume, job *models.AnalyzedJob) []models.CertificationSuggestion {
	held := make(map[string]bool, len(resume.Certifications))
	for _, cert := range resume.Certifications {
		held[cert] = true
	}

	var suggestions []models.CertificationSuggestion
	for _, cert := range job.CertificationsRequired {
		if held[cert] {
			continue
		}
		suggestions = append(suggestions, models.CertificationSuggestion{
			Certification: cert,
			Importance:    "Required",
			Suggestion:    fmt.Sprintf("Obtain %s certification to meet job requirements", cert),
			StudyTime:     "2-4 months",
			Cost:          "Varies by certification",
			Resources:     resourcesForCertification(cert),
		})
	}
	return suggestions
}

// projectSuggestions proposes a portfolio project for each of the top 3
// missing skills.
func projectSuggestions(missingSkills []string) []models.ProjectSuggestion {
	top := missingSkills
	if len(top) > 3 {
		top = top[:3]
	}

	var suggestions []models.ProjectSuggestion
	for _, skill := range top {
		suggestions = append(suggestions, models.ProjectSuggestion{
			ProjectType:    fmt.Sprintf("%s Project", skill),
			Description:    fmt.Sprintf("Build a practical project using %s to demonstrate your skills", skill),
			Technologies:   []string{skill},
			Timeline:       "1-2 months",
			Difficulty:     "Intermediate",
			PortfolioValue: "High",
		})
	}
	return suggestions
}

func immediateActions(missingSkills []string) []models.ActionItem {
	actions := []models.ActionItem{{
		Action:      "Update Resume",
		Description: "Incorporate missing skills and keywords from job description",
		Timeline:    "1 week",
		Priority:    "High",
	}}

	if len(missingSkills) > 0 {
		actions = append(actions, models.ActionItem{
			Action:      "Start Skill Development",
			Description: fmt.Sprintf("Begin learning %s through online courses", missingSkills[0]),
			Timeline:    "2 weeks",
			Priority:    "High",
		})
	}

	actions = append(actions, models.ActionItem{
		Action:      "Network and Research",
		Description: "Connect with professionals in the field and research the company",
		Timeline:    "1 week",
		Priority:    "Medium",
	})
	return actions
}

func longTermGoals() []models.CareerGoal {
	return []models.CareerGoal{
		{
			Goal:        "Master Key Technologies",
			Description: "Develop expertise in the technologies most relevant to your target roles",
			Timeline:    "6-12 months",
			Milestones:  []string{"Complete 3 projects", "Obtain 2 certifications", "Contribute to open source"},
		},
		{
			Goal:        "Build Relevant Experience",
			Description: "Gain hands-on experience through projects, internships, or freelance work",
			Timeline:    "6-18 months",
			Milestones:  []string{"Complete 5 projects", "Work with 2 companies", "Build professional network"},
		},
		{
			Goal:        "Career Advancement",
			Description: "Position yourself for senior roles and leadership opportunities",
			Timeline:    "1-3 years",
			Milestones:  []string{"Lead a team project", "Mentor junior developers", "Speak at conferences"},
		},
	}
}

func resourceRecommendations(missingSkills []string) models.ResourceRecommendations {
	recs := models.ResourceRecommendations{
		Platforms:   append([]string(nil), learningPlatforms...),
		Communities: append([]string(nil), learningCommunities...),
	}

	top := missingSkills
	if len(top) > 3 {
		top = top[:3]
	}
	for _, skill := range top {
		recs.Courses = append(recs.Courses, resourcesForSkill(skill)...)
	}
	return recs
}

func feedbackPriority(score float64, verdict models.FitVerdict) models.FeedbackPriority {
	switch {
	case verdict == models.FitLow || score < 40:
		return models.PriorityHigh
	case verdict == models.FitMedium || score < 70:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
