package services

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

// JobAnalyzer extracts structured requirements from job description text.
// Like the resume parser it is pure over its text input and the static
// knowledge base, and tolerates empty input.
type JobAnalyzer struct {
	kb  *KnowledgeBase
	ner EntityRecognizer
}

func NewJobAnalyzer(kb *KnowledgeBase, ner EntityRecognizer) *JobAnalyzer {
	return &JobAnalyzer{kb: kb, ner: ner}
}

// Analyze builds the AnalyzedJob snapshot from a job's description and
// requirements text.
func (a *JobAnalyzer) Analyze(description, requirements string) *models.AnalyzedJob {
	fullText := description + "\n\n" + requirements
	cleaned := NormalizeText(fullText)

	job := &models.AnalyzedJob{
		RawText:                fullText,
		CleanedText:            cleaned,
		SkillsRequired:         a.extractRequiredSkills(cleaned),
		SkillsPreferred:        a.extractPreferredSkills(cleaned),
		ExperienceLevel:        a.extractExperienceLevel(cleaned),
		ExperienceYears:        a.ExtractExperienceYears(cleaned),
		EducationRequired:      a.extractEducationRequirement(cleaned),
		CertificationsRequired: a.extractCertificationRequirements(cleaned),
		JobType:                a.extractJobType(cleaned),
		Location:               a.extractLocation(cleaned),
		SalaryRange:            a.extractSalaryRange(cleaned),
		Keywords:               a.extractKeywords(cleaned),
		Responsibilities:       a.extractByPatterns(cleaned, a.kb.ResponsibilityPatterns, 10),
		Qualifications:         a.extractByPatterns(cleaned, a.kb.QualificationPatterns, 5),
	}

	job.ComplexityScore = a.CalculateComplexityScore(cleaned)
	return job
}

// extractRequiredSkills combines taxonomy hits with skill words following
// "required:"-style triggers.
func (a *JobAnalyzer) extractRequiredSkills(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]string)

	for _, cat := range a.kb.SkillCategories {
		for _, skill := range cat.Skills {
			if a.kb.MatchSkill(textLower, skill) {
				seen[strings.ToLower(skill)] = titleCase(skill)
			}
		}
	}

	a.collectTriggeredSkills(textLower, a.kb.RequiredTriggers, seen)

	return sortedValues(seen)
}

// extractPreferredSkills keeps only skill words following "preferred:"
// style triggers.
func (a *JobAnalyzer) extractPreferredSkills(text string) []string {
	seen := make(map[string]string)
	a.collectTriggeredSkills(strings.ToLower(text), a.kb.PreferredTriggers, seen)
	return sortedValues(seen)
}

func (a *JobAnalyzer) collectTriggeredSkills(textLower string, triggers []*regexp.Regexp, seen map[string]string) {
	for _, re := range triggers {
		for _, match := range re.FindAllStringSubmatch(textLower, -1) {
			if len(match) < 2 {
				continue
			}
			for _, word := range tokenRe.FindAllString(match[1], -1) {
				if len(word) > 2 && !a.kb.Stopwords[word] {
					seen[word] = titleCase(word)
				}
			}
		}
	}
}

func (a *JobAnalyzer) extractExperienceLevel(text string) models.ExperienceLevel {
	textLower := strings.ToLower(text)
	for _, lp := range a.kb.ExperienceLevels {
		for _, keyword := range lp.Keywords {
			if strings.Contains(textLower, keyword) {
				return models.ExperienceLevel(lp.Level)
			}
		}
	}
	return models.LevelMid
}

// ExtractExperienceYears returns the first year figure in the plausible
// 0..20 range, or 0 when the job specifies none.
func (a *JobAnalyzer) ExtractExperienceYears(text string) int {
	textLower := strings.ToLower(text)
	for _, re := range a.kb.YearPatterns {
		for _, match := range re.FindAllStringSubmatch(textLower, -1) {
			if len(match) < 2 {
				continue
			}
			years, err := strconv.Atoi(match[1])
			if err == nil && years >= 0 && years <= 20 {
				return years
			}
		}
	}
	return 0
}

func (a *JobAnalyzer) extractEducationRequirement(text string) string {
	for _, re := range a.kb.DegreePatterns {
		if match := re.FindString(text); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

func (a *JobAnalyzer) extractCertificationRequirements(text string) []string {
	seen := make(map[string]bool)
	var certs []string

	for _, re := range a.kb.CertPatterns {
		for _, match := range re.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			key := strings.ToLower(match)
			if !seen[key] {
				seen[key] = true
				certs = append(certs, match)
			}
		}
	}
	return certs
}

func (a *JobAnalyzer) extractJobType(text string) models.JobType {
	textLower := strings.ToLower(text)
	for _, jt := range a.kb.JobTypePatterns {
		for _, re := range jt.Patterns {
			if re.MatchString(textLower) {
				return models.JobType(jt.Type)
			}
		}
	}
	return models.JobFullTime
}

func (a *JobAnalyzer) extractLocation(text string) string {
	if a.ner == nil {
		return ""
	}
	place, err := a.ner.FirstEntity(text, "GPE")
	if err != nil {
		log.Printf("⚠️  Job location extraction degraded: %v", err)
		return ""
	}
	return place
}

func (a *JobAnalyzer) extractSalaryRange(text string) string {
	for _, re := range a.kb.SalaryPatterns {
		if match := re.FindString(text); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

// extractKeywords ranks the top 20 terms by mean TF-IDF over the job's
// sentences.
func (a *JobAnalyzer) extractKeywords(text string) []string {
	sentences := SplitSentences(text)
	return TopKeywords(sentences, a.kb.Stopwords, 20)
}

func (a *JobAnalyzer) extractByPatterns(text string, patterns []*regexp.Regexp, minLen int) []string {
	var results []string
	seen := make(map[string]bool)

	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			fragment := match[0]
			if len(match) > 1 && match[1] != "" {
				fragment = match[1]
			}
			fragment = strings.TrimSpace(fragment)
			if len(fragment) <= minLen || seen[fragment] {
				continue
			}
			seen[fragment] = true
			results = append(results, fragment)
			if len(results) >= 10 {
				return results
			}
		}
	}
	return results
}

// CalculateComplexityScore weighs seniority, technical and management
// signals plus years of experience, capped at 1.0.
func (a *JobAnalyzer) CalculateComplexityScore(text string) float64 {
	textLower := strings.ToLower(text)
	complexity := 0.0

	if containsAny(textLower, a.kb.SeniorityComplexityKeywords) {
		complexity += 0.3
	}
	if containsAny(textLower, a.kb.TechComplexityKeywords) {
		complexity += 0.2
	}
	if containsAny(textLower, a.kb.ManagementKeywords) {
		complexity += 0.2
	}

	if years := a.ExtractExperienceYears(textLower); years > 0 {
		bonus := float64(years) / 20
		if bonus > 0.3 {
			bonus = 0.3
		}
		complexity += bonus
	}

	if complexity > 1.0 {
		complexity = 1.0
	}
	return complexity
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func sortedValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
