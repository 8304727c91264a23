package services

import (
	"fmt"
	"strings"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

// PromptBuilder centralizes the prompt templates sent to the narrative
// backend so the scorer and feedback generator stay free of prompt text.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt asks for a short recruiter-style assessment of an
// already-computed score. The numbers are authoritative; the model only
// narrates them.
func (b *PromptBuilder) BuildAnalysisPrompt(resume *models.ParsedResume, job *models.AnalyzedJob, result *models.ScoringResult) string {
	var sb strings.Builder

	sb.WriteString("You are an experienced technical recruiter. Write a concise assessment (3-5 sentences) of how well this candidate fits the role.\n\n")
	sb.WriteString("Do not invent numbers; the scores below are final.\n\n")

	fmt.Fprintf(&sb, "## Role\nTitle: %s\nRequired skills: %s\nExperience level: %s\n", job.Title, strings.Join(job.SkillsRequired, ", "), job.ExperienceLevel)
	if job.ExperienceYears > 0 {
		fmt.Fprintf(&sb, "Years required: %d\n", job.ExperienceYears)
	}

	fmt.Fprintf(&sb, "\n## Candidate\nSkills: %s\n", strings.Join(resume.Skills, ", "))
	fmt.Fprintf(&sb, "Positions listed: %d\n", len(resume.Experience))
	if len(resume.Certifications) > 0 {
		fmt.Fprintf(&sb, "Certifications: %s\n", strings.Join(resume.Certifications, ", "))
	}

	fmt.Fprintf(&sb, "\n## Computed scores (0-100)\nOverall: %.2f (%s fit)\nSkills: %.2f\nExperience: %.2f\nEducation: %.2f\n",
		result.RelevanceScore, result.FitVerdict, result.SkillsMatchScore, result.ExperienceMatchScore, result.EducationMatchScore)

	if len(result.MatchedSkills) > 0 {
		fmt.Fprintf(&sb, "Matched skills: %s\n", strings.Join(result.MatchedSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		fmt.Fprintf(&sb, "Missing skills: %s\n", strings.Join(result.MissingSkills, ", "))
	}

	sb.WriteString("\nAssessment:")
	return sb.String()
}

// BuildFeedbackPrompt asks for actionable candidate-facing feedback.
// Optional guidance context retrieved from the reference store is
// appended verbatim.
func (b *PromptBuilder) BuildFeedbackPrompt(resume *models.ParsedResume, job *models.AnalyzedJob, result *models.ScoringResult, guidanceContext string) string {
	var sb strings.Builder

	sb.WriteString("You are a supportive career coach. Write encouraging, specific feedback (one short paragraph) for a candidate based on how their resume matched a job posting.\n\n")

	fmt.Fprintf(&sb, "Target role: %s\nMatch score: %.2f%% (%s fit)\n", job.Title, result.RelevanceScore, result.FitVerdict)
	if len(result.MatchedSkills) > 0 {
		fmt.Fprintf(&sb, "Skills that matched: %s\n", strings.Join(result.MatchedSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		fmt.Fprintf(&sb, "Skills to develop: %s\n", strings.Join(result.MissingSkills, ", "))
	}
	if len(result.Weaknesses) > 0 {
		fmt.Fprintf(&sb, "Gaps identified: %s\n", strings.Join(result.Weaknesses, "; "))
	}

	if guidanceContext != "" {
		sb.WriteString("\n## Reference career guidance\n")
		sb.WriteString(guidanceContext)
		sb.WriteString("\n")
	}

	sb.WriteString("\nFeedback:")
	return sb.String()
}

// FormatGuidanceContext renders retrieved guidance snippets as a numbered
// context block for the feedback prompt.
func (b *PromptBuilder) FormatGuidanceContext(snippets []GuidanceSnippet) string {
	if len(snippets) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, snippet := range snippets {
		fmt.Fprintf(&sb, "[%d] (%s) %s\n", i+1, snippet.Topic, strings.TrimSpace(snippet.Text))
	}
	return strings.TrimSpace(sb.String())
}
