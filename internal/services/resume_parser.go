package services

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
)

// ResumeParser extracts structured fields from resume text using the
// static knowledge base plus named-entity recognition. All extraction is
// pure with respect to the text input: empty input yields empty results,
// never an error.
type ResumeParser struct {
	kb  *KnowledgeBase
	ner EntityRecognizer
}

func NewResumeParser(kb *KnowledgeBase, ner EntityRecognizer) *ResumeParser {
	return &ResumeParser{kb: kb, ner: ner}
}

// ParseText builds the full ParsedResume snapshot from raw resume text.
func (p *ResumeParser) ParseText(rawText string) *models.ParsedResume {
	cleaned := NormalizeText(rawText)

	parsed := &models.ParsedResume{
		RawText:        rawText,
		CleanedText:    cleaned,
		CandidateName:  p.extractName(cleaned),
		Email:          extractEmail(cleaned),
		Phone:          extractPhone(cleaned),
		Location:       p.extractLocation(cleaned),
		Summary:        p.extractSummary(cleaned),
		Skills:         p.ExtractSkills(cleaned),
		Experience:     p.extractExperience(cleaned),
		Education:      p.extractEducation(cleaned),
		Certifications: p.extractCertifications(cleaned),
		Projects:       p.extractProjects(cleaned),
		Languages:      p.extractLanguages(cleaned),
	}

	parsed.ConfidenceScore = calculateConfidence(parsed)
	parsed.TextQualityScore = textQualityScore(cleaned)
	return parsed
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

func extractPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// extractName looks for the first PERSON entity in the leading portion of
// the text. A missing NER model degrades to "not found".
func (p *ResumeParser) extractName(text string) string {
	if p.ner == nil {
		return ""
	}
	head := text
	if len(head) > 1000 {
		head = head[:1000]
	}
	name, err := p.ner.FirstEntity(head, "PERSON")
	if err != nil {
		log.Printf("⚠️  Name extraction degraded: %v", err)
		return ""
	}
	return name
}

func (p *ResumeParser) extractLocation(text string) string {
	if p.ner == nil {
		return ""
	}
	place, err := p.ner.FirstEntity(text, "GPE")
	if err != nil {
		log.Printf("⚠️  Location extraction degraded: %v", err)
		return ""
	}
	return place
}

func (p *ResumeParser) extractSummary(text string) string {
	sentences := SplitSentences(text)
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, keyword := range p.kb.SummaryKeywords {
			if strings.Contains(lower, keyword) {
				return sentence
			}
		}
	}

	if len(sentences) > 0 {
		first := sentences[0]
		if len(first) > 500 {
			first = first[:500]
		}
		return first
	}
	return ""
}

// ExtractSkills matches the taxonomy and the soft-skill patterns against
// the text. Results are title-cased, deduplicated case-insensitively and
// returned sorted for determinism.
func (p *ResumeParser) ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]string)

	for _, cat := range p.kb.SkillCategories {
		for _, skill := range cat.Skills {
			if p.kb.MatchSkill(textLower, skill) {
				seen[strings.ToLower(skill)] = titleCase(skill)
			}
		}
	}

	for _, re := range p.kb.SoftSkillPatterns {
		for _, match := range re.FindAllString(textLower, -1) {
			seen[strings.ToLower(match)] = titleCase(match)
		}
	}

	skills := make([]string, 0, len(seen))
	for _, titled := range seen {
		skills = append(skills, titled)
	}
	sort.Strings(skills)
	return skills
}

// extractExperience finds job-title pattern hits with ±100 characters of
// context and the match offset, sorted by text position, capped at 10.
func (p *ResumeParser) extractExperience(text string) []models.ExperienceEntry {
	var entries []models.ExperienceEntry
	seen := make(map[int]bool)

	for _, re := range p.kb.JobTitlePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if seen[loc[0]] {
				continue
			}
			seen[loc[0]] = true
			entries = append(entries, models.ExperienceEntry{
				Title:    strings.TrimSpace(text[loc[0]:loc[1]]),
				Context:  contextWindow(text, loc[0], loc[1], 100),
				Position: loc[0],
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}

// extractEducation finds degree pattern hits with ±50 characters of
// context, first-found order, capped at 5.
func (p *ResumeParser) extractEducation(text string) []models.EducationEntry {
	var entries []models.EducationEntry

	for _, re := range p.kb.DegreePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			entries = append(entries, models.EducationEntry{
				Degree:  strings.TrimSpace(text[loc[0]:loc[1]]),
				Context: contextWindow(text, loc[0], loc[1], 50),
			})
			if len(entries) >= 5 {
				return entries
			}
		}
	}
	return entries
}

func (p *ResumeParser) extractCertifications(text string) []string {
	seen := make(map[string]bool)
	var certs []string

	for _, re := range p.kb.CertPatterns {
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

// extractProjects keeps sentences mentioning project action verbs, in
// text order, capped at 10.
func (p *ResumeParser) extractProjects(text string) []models.ProjectEntry {
	var projects []models.ProjectEntry

	for _, sentence := range SplitSentences(text) {
		lower := strings.ToLower(sentence)
		var keywords []string
		for _, kw := range p.kb.ProjectKeywords {
			if strings.Contains(lower, kw) {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) > 0 {
			projects = append(projects, models.ProjectEntry{
				Description: sentence,
				Keywords:    keywords,
			})
			if len(projects) >= 10 {
				break
			}
		}
	}
	return projects
}

func (p *ResumeParser) extractLanguages(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var languages []string

	add := func(lang string) {
		key := strings.ToLower(lang)
		if !seen[key] {
			seen[key] = true
			languages = append(languages, titleCase(lang))
		}
	}

	for _, lang := range p.kb.ProgrammingLanguages {
		if p.kb.MatchSkill(textLower, lang) {
			add(lang)
		}
	}
	for _, lang := range p.kb.HumanLanguages {
		if p.kb.MatchSkill(textLower, lang) {
			add(lang)
		}
	}
	return languages
}

// calculateConfidence scores parsing completeness: 0.2 per essential
// signal present, capped at 1.0.
func calculateConfidence(parsed *models.ParsedResume) float64 {
	confidence := 0.0
	if parsed.Email != "" {
		confidence += 0.2
	}
	if parsed.Phone != "" {
		confidence += 0.2
	}
	if len(parsed.Skills) > 0 {
		confidence += 0.2
	}
	if len(parsed.Experience) > 0 {
		confidence += 0.2
	}
	if len(parsed.Education) > 0 {
		confidence += 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
