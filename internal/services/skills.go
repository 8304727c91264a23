package services

import (
	"regexp"
	"strings"
	"unicode"
)

// SkillCategory is one bucket of the static skills taxonomy.
type SkillCategory struct {
	Name   string
	Skills []string
}

// KnowledgeBase bundles the static taxonomy and pattern lists used by the
// extractors and the scorer. Built once at startup and passed explicitly;
// safe for concurrent use since nothing mutates it after construction.
type KnowledgeBase struct {
	SkillCategories []SkillCategory
	skillPatterns   map[string]*regexp.Regexp

	SoftSkillPatterns []*regexp.Regexp

	DegreePatterns   []*regexp.Regexp
	JobTitlePatterns []*regexp.Regexp
	CertPatterns     []*regexp.Regexp

	ExperienceLevels []levelPatterns
	JobTypePatterns  []jobTypePatterns

	SeniorityKeywords []seniorityGroup

	RequiredTriggers  []*regexp.Regexp
	PreferredTriggers []*regexp.Regexp

	ResponsibilityPatterns []*regexp.Regexp
	QualificationPatterns  []*regexp.Regexp

	SalaryPatterns []*regexp.Regexp
	YearPatterns   []*regexp.Regexp

	SeniorityComplexityKeywords []string
	TechComplexityKeywords      []string
	ManagementKeywords          []string

	SummaryKeywords []string
	ProjectKeywords []string

	ProgrammingLanguages []string
	HumanLanguages       []string

	Stopwords map[string]bool
}

type levelPatterns struct {
	Level    string
	Keywords []string
}

type jobTypePatterns struct {
	Type     string
	Patterns []*regexp.Regexp
}

type seniorityGroup struct {
	Level    string
	Keywords []string
}

// NewKnowledgeBase compiles the static taxonomy and pattern lists.
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{
		SkillCategories: []SkillCategory{
			{Name: "programming_languages", Skills: []string{
				"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
				"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "sql",
				"html", "css", "sass", "scss", "dart", "perl", "bash", "powershell",
			}},
			{Name: "frameworks", Skills: []string{
				"react", "angular", "vue", "django", "flask", "spring", "express",
				"laravel", "rails", "asp.net", "node.js", "fastapi", "gin", "echo",
				"tensorflow", "pytorch", "keras", "pandas", "numpy",
			}},
			{Name: "databases", Skills: []string{
				"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
				"oracle", "sqlite", "dynamodb", "neo4j", "influxdb", "couchdb",
			}},
			{Name: "cloud_platforms", Skills: []string{
				"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean", "linode",
			}},
			{Name: "tools", Skills: []string{
				"docker", "kubernetes", "jenkins", "git", "github", "gitlab", "jira",
				"confluence", "slack", "trello", "figma", "sketch", "postman", "swagger",
			}},
			{Name: "methodologies", Skills: []string{
				"agile", "scrum", "kanban", "devops", "ci/cd", "tdd", "bdd",
				"microservices", "rest", "graphql", "serverless",
			}},
		},
		skillPatterns: make(map[string]*regexp.Regexp),
	}

	for _, cat := range kb.SkillCategories {
		for _, skill := range cat.Skills {
			kb.skillPatterns[skill] = keywordPattern(skill)
		}
	}

	kb.SoftSkillPatterns = compileAll(
		`leadership`, `communication`, `teamwork`, `problem.solving`,
		`analytical`, `creative`, `adaptable`, `organized`,
		`management`, `collaboration`, `presentation`, `negotiation`,
		`mentoring`, `coaching`,
	)

	kb.DegreePatterns = compileAll(
		`(?i)(?:bachelor|master|phd|doctorate|diploma|certificate)\s+(?:of|in)?\s*(?:science|arts|engineering|technology|computer|business|management)`,
		`(?i)\b(?:b\.?s\.?|m\.?s\.?|ph\.?d\.?|m\.?b\.?a\.?|b\.?e\.?|m\.?e\.?)\b`,
		`(?i)(?:computer|software|information|data|artificial intelligence|machine learning)\s+(?:science|engineering|technology)`,
	)

	kb.JobTitlePatterns = compileAll(
		`(?i)(?:software|web|mobile|data|devops|cloud|ai|ml|full.?stack|front.?end|back.?end)\s+(?:engineer|developer|architect|analyst|scientist|specialist)`,
		`(?i)(?:senior|lead|principal|staff)\s+(?:software|web|mobile|data|devops|cloud|ai|ml|full.?stack|front.?end|back.?end)\s+(?:engineer|developer|architect|analyst|scientist|specialist)`,
		`(?i)\b(?:manager|director|head|vp|cto|cfo|ceo)\b`,
		`(?i)\b(?:intern|trainee|junior|associate)\b`,
	)

	kb.CertPatterns = compileAll(
		`(?i)(?:aws|azure|gcp|google cloud|microsoft|oracle|cisco|comptia|pmp|scrum|agile)\s+(?:certified|certification)`,
		`(?i)(?:certified|certification|certificate)\s+(?:in|for)?\s*(?:aws|azure|gcp|google cloud|microsoft|oracle|cisco|comptia|pmp|scrum|agile)`,
		`(?i)\b(?:cissp|cisa|cism|itil|prince2|six sigma)\b`,
	)

	// Checked in order; first level with a matching keyword wins.
	kb.ExperienceLevels = []levelPatterns{
		{Level: "entry", Keywords: []string{"entry", "junior", "trainee", "intern", "graduate", "0-2", "0-1", "1-2"}},
		{Level: "mid", Keywords: []string{"mid", "intermediate", "2-4", "3-5", "2-5", "3-4"}},
		{Level: "senior", Keywords: []string{"senior", "lead", "principal", "5+", "6+", "7+", "5-8", "6-10"}},
		{Level: "lead", Keywords: []string{"lead", "principal", "staff", "architect", "manager", "director", "8+", "10+"}},
	}

	kb.JobTypePatterns = []jobTypePatterns{
		{Type: "full_time", Patterns: compileAll(`full.time`, `permanent`, `regular`, `fulltime`)},
		{Type: "part_time", Patterns: compileAll(`part.time`, `parttime`, `contractor`)},
		{Type: "contract", Patterns: compileAll(`contract`, `consultant`, `freelance`, `temporary`)},
		{Type: "internship", Patterns: compileAll(`intern`, `internship`, `trainee`, `co.op`)},
	}

	// Checked in order; the most senior signal wins.
	kb.SeniorityKeywords = []seniorityGroup{
		{Level: "lead", Keywords: []string{"lead", "principal", "staff", "architect", "manager", "director"}},
		{Level: "senior", Keywords: []string{"senior", "sr", "lead"}},
		{Level: "mid", Keywords: []string{"mid", "intermediate", "experienced"}},
		{Level: "entry", Keywords: []string{"junior", "jr", "entry", "trainee", "intern"}},
	}

	kb.RequiredTriggers = compileAll(
		`required[:\s]+([^.]{2,50})`,
		`must have[:\s]+([^.]{2,50})`,
		`essential[:\s]+([^.]{2,50})`,
		`mandatory[:\s]+([^.]{2,50})`,
	)

	kb.PreferredTriggers = compileAll(
		`preferred[:\s]+([^.]{2,50})`,
		`nice to have[:\s]+([^.]{2,50})`,
		`bonus[:\s]+([^.]{2,50})`,
		`plus[:\s]+([^.]{2,50})`,
	)

	kb.ResponsibilityPatterns = compileAll(
		`(?i)(?:responsible|responsibility|duties|tasks)[:\s]*([^.]{10,200})`,
		`(?i)(?:develop|design|implement|manage|lead|create|build)[^.]{10,100}`,
		`(?i)(?:will|should|must)[^.]{10,100}`,
	)

	kb.QualificationPatterns = compileAll(
		`(?i)(?:qualification|requirement|must have|should have)[:\s]*([^.]{10,200})`,
		`(?i)(?:degree|experience|skill|knowledge|ability)[^.]{5,100}`,
		`(?i)(?:proven|demonstrated|strong|excellent)[^.]{5,100}`,
	)

	kb.SalaryPatterns = compileAll(
		`(?i)\$[\d,]+[\s-]*\$?[\d,]*`,
		`(?i)[\d,]+[\s-]*[\d,]*\s*(?:lpa|lakh|k|thousand|million)`,
		`(?i)(?:salary|compensation|pay)[:\s]*\$?[\d,]+[\s-]*\$?[\d,]*`,
	)

	kb.YearPatterns = compileAll(
		`(\d+)[\s-]*(?:\d+)?\s*years?`,
		`(\d+)[\s-]*(?:\d+)?\s*yr`,
		`(\d+)\+?\s*years?`,
	)

	kb.SeniorityComplexityKeywords = []string{"senior", "lead", "principal", "architect", "manager", "director"}
	kb.TechComplexityKeywords = []string{"microservices", "distributed", "scalable", "performance", "optimization"}
	kb.ManagementKeywords = []string{"team", "mentor", "lead", "manage", "coordinate"}

	kb.SummaryKeywords = []string{"summary", "objective", "profile", "about", "overview"}
	kb.ProjectKeywords = []string{"project", "developed", "built", "created", "implemented", "designed"}

	kb.ProgrammingLanguages = []string{"python", "java", "javascript", "c++", "c#", "go", "rust", "php", "ruby", "swift"}
	kb.HumanLanguages = []string{"english", "spanish", "french", "german", "chinese", "japanese", "hindi", "tamil", "telugu"}

	kb.Stopwords = buildStopwords()

	return kb
}

// MatchSkill reports whether the text mentions the given taxonomy skill as
// a standalone keyword.
func (kb *KnowledgeBase) MatchSkill(textLower, skill string) bool {
	re, ok := kb.skillPatterns[skill]
	if !ok {
		re = keywordPattern(skill)
	}
	return re.MatchString(textLower)
}

// keywordPattern builds a case-insensitive pattern for a taxonomy entry,
// anchored on word boundaries where the entry starts/ends with a word
// character. Keeps one-letter skills like "r" or "go" from matching inside
// unrelated words.
func keywordPattern(skill string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.ToLower(skill))
	pre, post := "", ""
	runes := []rune(skill)
	if len(runes) > 0 {
		if isWordRune(runes[0]) {
			pre = `\b`
		}
		if isWordRune(runes[len(runes)-1]) {
			post = `\b`
		}
	}
	return regexp.MustCompile(`(?i)` + pre + quoted + post)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

func buildStopwords() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "did", "do",
		"does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "i", "if", "in", "into",
		"is", "it", "its", "itself", "just", "me", "more", "most", "my",
		"myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only",
		"or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"same", "she", "should", "so", "some", "such", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "you", "your", "yours",
		"yourself", "yourselves",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
