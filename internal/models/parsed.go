package models

// ExperienceEntry is one job-title hit found in resume text, with the
// surrounding context and the character offset of the match.
type ExperienceEntry struct {
	Title    string `json:"title"`
	Context  string `json:"context"`
	Position int    `json:"position"`
}

// EducationEntry pairs a matched degree with up to 50 characters of
// surrounding text on each side for provenance.
type EducationEntry struct {
	Degree  string `json:"degree"`
	Context string `json:"context"`
}

// ProjectEntry is a sentence that mentioned project work, plus the action
// keywords that qualified it.
type ProjectEntry struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// ParsedResume is the structured snapshot produced by the resume parser.
// It is immutable once parsing succeeds; a failed parse yields no
// ParsedResume at all.
type ParsedResume struct {
	RawText       string `json:"raw_text"`
	CleanedText   string `json:"cleaned_text"`
	CandidateName string `json:"candidate_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Location      string `json:"location,omitempty"`
	Summary       string `json:"summary,omitempty"`

	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
	Projects       []ProjectEntry    `json:"projects"`
	Languages      []string          `json:"languages"`

	ConfidenceScore  float64 `json:"confidence_score"`
	TextQualityScore float64 `json:"text_quality_score"`
}
