package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

// Fixed component weights for the overall relevance score.
const (
	weightSkills        = 0.35
	weightExperience    = 0.25
	weightEducation     = 0.15
	weightCertification = 0.10
	weightProject       = 0.10
	weightSemantic      = 0.05
)

// FallbackAnalysis replaces the narrative when the generation backend is
// unavailable. The numeric score never depends on that call.
const FallbackAnalysis = "AI analysis unavailable at this time."

// levelMatrix maps resume-inferred level -> job-required level to a
// compatibility value. Diagonal is 1.0.
var levelMatrix = map[models.ExperienceLevel]map[models.ExperienceLevel]float64{
	models.LevelEntry:  {models.LevelEntry: 1.0, models.LevelMid: 0.7, models.LevelSenior: 0.4, models.LevelLead: 0.2},
	models.LevelMid:    {models.LevelEntry: 0.6, models.LevelMid: 1.0, models.LevelSenior: 0.8, models.LevelLead: 0.5},
	models.LevelSenior: {models.LevelEntry: 0.3, models.LevelMid: 0.7, models.LevelSenior: 1.0, models.LevelLead: 0.8},
	models.LevelLead:   {models.LevelEntry: 0.2, models.LevelMid: 0.5, models.LevelSenior: 0.8, models.LevelLead: 1.0},
}

// RelevanceScorer combines a parsed resume and an analyzed job into a
// ScoringResult. Numeric output is deterministic for identical input
// snapshots; only the narrative text may vary.
type RelevanceScorer struct {
	kb               *KnowledgeBase
	generator        TextGenerator
	prompts          *PromptBuilder
	narrativeTimeout time.Duration
	retryMaxAttempts int
}

func NewRelevanceScorer(kb *KnowledgeBase, generator TextGenerator, narrativeTimeout time.Duration, retryMaxAttempts int) *RelevanceScorer {
	if narrativeTimeout <= 0 {
		narrativeTimeout = 30 * time.Second
	}
	if retryMaxAttempts <= 0 {
		retryMaxAttempts = 3
	}
	return &RelevanceScorer{
		kb:               kb,
		generator:        generator,
		prompts:          NewPromptBuilder(),
		narrativeTimeout: narrativeTimeout,
		retryMaxAttempts: retryMaxAttempts,
	}
}

// Score produces a new ScoringResult for the (resume, job) pair. Returns
// a ValidationError for input that was never parsed/analyzed.
func (s *RelevanceScorer) Score(ctx context.Context, resume *models.ParsedResume, job *models.AnalyzedJob) (*models.ScoringResult, error) {
	if resume == nil || resume.CleanedText == "" {
		return nil, &ValidationError{Field: "resume", Reason: "resume has not been parsed"}
	}
	if job == nil || job.CleanedText == "" {
		return nil, &ValidationError{Field: "job", Reason: "job has not been analyzed"}
	}

	skillsScore := s.skillsMatchScore(resume, job)
	experienceScore := s.experienceMatchScore(resume, job)
	educationScore := s.educationMatchScore(resume, job)
	certificationScore := s.certificationMatchScore(resume, job)
	projectScore := s.projectMatchScore(resume, job)
	semanticScore := s.semanticSimilarity(resume, job)

	overall := skillsScore*weightSkills +
		experienceScore*weightExperience +
		educationScore*weightEducation +
		certificationScore*weightCertification +
		projectScore*weightProject +
		semanticScore*weightSemantic

	matched, missing := s.skillMatches(resume, job)

	result := &models.ScoringResult{
		RelevanceScore:          round2(overall * 100),
		FitVerdict:              fitVerdict(round2(overall * 100)),
		SkillsMatchScore:        round2(skillsScore * 100),
		ExperienceMatchScore:    round2(experienceScore * 100),
		EducationMatchScore:     round2(educationScore * 100),
		CertificationMatchScore: round2(certificationScore * 100),
		ProjectMatchScore:       round2(projectScore * 100),
		SemanticSimilarityScore: round2(semanticScore * 100),
		MatchedSkills:           matched,
		MissingSkills:           missing,
		Strengths:               s.identifyStrengths(resume, matched),
		Weaknesses:              s.identifyWeaknesses(resume, job, missing),
		AIConfidence:            aiConfidence(resume, job),
	}

	result.AIAnalysis = s.generateAnalysis(ctx, resume, job, result)
	return result, nil
}

// fitVerdict applies the fixed thresholds on the 0-100 scale.
func fitVerdict(score float64) models.FitVerdict {
	switch {
	case score >= 80:
		return models.FitHigh
	case score >= 60:
		return models.FitMedium
	default:
		return models.FitLow
	}
}

func (s *RelevanceScorer) skillsMatchScore(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	hasRequired := len(job.SkillsRequired) > 0
	hasPreferred := len(job.SkillsPreferred) > 0

	if !hasRequired && !hasPreferred {
		return 0.5
	}

	requiredMatch := skillOverlap(resume.Skills, job.SkillsRequired)
	preferredMatch := skillOverlap(resume.Skills, job.SkillsPreferred)

	switch {
	case hasRequired && hasPreferred:
		return requiredMatch*0.7 + preferredMatch*0.3
	case hasRequired:
		return requiredMatch
	default:
		return preferredMatch
	}
}

// skillOverlap is the fraction of job skills with a resume counterpart.
// A pair counts on exact match or either string containing the other,
// case-insensitive. The substring rule deliberately over-matches (e.g.
// "java" against "javascript"); kept for compatibility with the scoring
// contract.
func skillOverlap(resumeSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0.0
	}

	matches := 0
	for _, jobSkill := range jobSkills {
		if matchesAnySkill(jobSkill, resumeSkills) {
			matches++
		}
	}
	return float64(matches) / float64(len(jobSkills))
}

func matchesAnySkill(jobSkill string, resumeSkills []string) bool {
	js := strings.ToLower(strings.TrimSpace(jobSkill))
	for _, resumeSkill := range resumeSkills {
		rs := strings.ToLower(strings.TrimSpace(resumeSkill))
		if js == rs || strings.Contains(rs, js) || strings.Contains(js, rs) {
			return true
		}
	}
	return false
}

func (s *RelevanceScorer) experienceMatchScore(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	resumeLevel := s.resumeExperienceLevel(resume.Experience)

	levelScore := 0.5
	if row, ok := levelMatrix[resumeLevel]; ok {
		if v, ok := row[job.ExperienceLevel]; ok {
			levelScore = v
		}
	}

	yearsScore := yearsMatchScore(resumeExperienceYears(resume.Experience), job.ExperienceYears)

	return levelScore*0.6 + yearsScore*0.4
}

// resumeExperienceLevel infers a level from seniority keywords in the
// extracted titles, falling back to entry/mid/senior by entry count.
func (s *RelevanceScorer) resumeExperienceLevel(experience []models.ExperienceEntry) models.ExperienceLevel {
	if len(experience) == 0 {
		return models.LevelEntry
	}

	for _, group := range s.kb.SeniorityKeywords {
		for _, exp := range experience {
			title := strings.ToLower(exp.Title)
			for _, keyword := range group.Keywords {
				if strings.Contains(title, keyword) {
					return models.ExperienceLevel(group.Level)
				}
			}
		}
	}

	switch {
	case len(experience) >= 5:
		return models.LevelSenior
	case len(experience) >= 2:
		return models.LevelMid
	default:
		return models.LevelEntry
	}
}

// resumeExperienceYears approximates tenure as two years per listed
// entry, capped at 20. No date-range arithmetic is attempted.
func resumeExperienceYears(experience []models.ExperienceEntry) int {
	years := len(experience) * 2
	if years > 20 {
		years = 20
	}
	return years
}

func yearsMatchScore(resumeYears, jobYears int) float64 {
	if jobYears == 0 {
		return 1.0
	}
	if resumeYears >= jobYears {
		return 1.0
	}
	ratio := float64(resumeYears) / float64(jobYears)
	if ratio < 0 {
		return 0
	}
	return ratio
}

func (s *RelevanceScorer) educationMatchScore(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	if job.EducationRequired == "" {
		return 0.5
	}

	required := strings.ToLower(job.EducationRequired)
	for _, edu := range resume.Education {
		degree := strings.ToLower(edu.Degree)
		if strings.Contains(degree, required) || strings.Contains(required, degree) {
			return 1.0
		}
	}
	return 0.0
}

func (s *RelevanceScorer) certificationMatchScore(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	if len(job.CertificationsRequired) == 0 {
		return 0.5
	}
	return skillOverlap(resume.Certifications, job.CertificationsRequired)
}

func (s *RelevanceScorer) projectMatchScore(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	if len(resume.Projects) == 0 || len(job.Keywords) == 0 {
		return 0.5
	}

	var descriptions []string
	for _, proj := range resume.Projects {
		descriptions = append(descriptions, proj.Description)
	}

	return TextSimilarity(strings.Join(descriptions, " "), strings.Join(job.Keywords, " "), s.kb.Stopwords)
}

func (s *RelevanceScorer) semanticSimilarity(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	if resume.CleanedText == "" || job.CleanedText == "" {
		return 0.0
	}
	return TextSimilarity(resume.CleanedText, job.CleanedText, s.kb.Stopwords)
}

// skillMatches splits the job's required skills into matched and missing
// using the same substring-overlap rule as the skills score.
func (s *RelevanceScorer) skillMatches(resume *models.ParsedResume, job *models.AnalyzedJob) (matched, missing []string) {
	for _, jobSkill := range job.SkillsRequired {
		if matchesAnySkill(jobSkill, resume.Skills) {
			matched = append(matched, jobSkill)
		} else {
			missing = append(missing, jobSkill)
		}
	}
	return matched, missing
}

func (s *RelevanceScorer) identifyStrengths(resume *models.ParsedResume, matched []string) []string {
	var strengths []string
	if len(matched) > 5 {
		strengths = append(strengths, fmt.Sprintf("Strong technical skills match (%d skills)", len(matched)))
	}
	if len(resume.Experience) > 3 {
		strengths = append(strengths, fmt.Sprintf("Extensive work experience (%d positions)", len(resume.Experience)))
	}
	if len(resume.Certifications) > 0 {
		strengths = append(strengths, fmt.Sprintf("Relevant certifications (%d certs)", len(resume.Certifications)))
	}
	return strengths
}

func (s *RelevanceScorer) identifyWeaknesses(resume *models.ParsedResume, job *models.AnalyzedJob, missing []string) []string {
	var weaknesses []string

	if len(missing) > 0 {
		top := missing
		if len(top) > 3 {
			top = top[:3]
		}
		weaknesses = append(weaknesses, fmt.Sprintf("Missing key skills: %s", strings.Join(top, ", ")))
	}

	if job.ExperienceYears > 0 && resumeExperienceYears(resume.Experience) < job.ExperienceYears {
		weaknesses = append(weaknesses, fmt.Sprintf("May lack required experience (%d years)", job.ExperienceYears))
	}

	return weaknesses
}

// generateAnalysis asks the narrative backend for a short assessment.
// Any failure, including timeout or a missing backend, yields the fixed
// fallback string.
func (s *RelevanceScorer) generateAnalysis(ctx context.Context, resume *models.ParsedResume, job *models.AnalyzedJob, result *models.ScoringResult) string {
	if s.generator == nil {
		return FallbackAnalysis
	}

	prompt := s.prompts.BuildAnalysisPrompt(resume, job, result)

	callCtx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	analysis, err := s.generator.GenerateTextWithRetry(callCtx, prompt, 0.7, s.retryMaxAttempts)
	if err != nil {
		log.Printf("⚠️  AI analysis degraded to fallback: %v", err)
		return FallbackAnalysis
	}
	return strings.TrimSpace(analysis)
}

// aiConfidence reflects data completeness: 0.5 base plus 0.1 per signal,
// capped at 1.0.
func aiConfidence(resume *models.ParsedResume, job *models.AnalyzedJob) float64 {
	confidence := 0.5
	if len(resume.Skills) > 0 {
		confidence += 0.1
	}
	if len(resume.Experience) > 0 {
		confidence += 0.1
	}
	if len(resume.Education) > 0 {
		confidence += 0.1
	}
	if len(job.SkillsRequired) > 0 {
		confidence += 0.1
	}
	if job.RawText != "" {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
