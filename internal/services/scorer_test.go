package services

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

// stubGenerator records the last prompt and retry budget and returns a
// canned response or error.
type stubGenerator struct {
	response    string
	err         error
	lastPrompt  string
	lastRetries int
	calls       int
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	s.lastPrompt = prompt
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	s.lastRetries = maxRetries
	return s.GenerateText(ctx, prompt, temperature)
}

func newTestScorer(generator TextGenerator) *RelevanceScorer {
	return NewRelevanceScorer(NewKnowledgeBase(), generator, time.Second, 2)
}

func testResume(skills []string, experience int) *models.ParsedResume {
	entries := make([]models.ExperienceEntry, experience)
	for i := range entries {
		entries[i] = models.ExperienceEntry{Title: "Software Engineer", Position: i * 100}
	}
	return &models.ParsedResume{
		RawText:     "resume text",
		CleanedText: "resume text",
		Skills:      skills,
		Experience:  entries,
	}
}

func testJob(required []string, years int, level models.ExperienceLevel) *models.AnalyzedJob {
	return &models.AnalyzedJob{
		Title:           "Backend Engineer",
		RawText:         "job text",
		CleanedText:     "job text",
		SkillsRequired:  required,
		ExperienceYears: years,
		ExperienceLevel: level,
	}
}

func TestScoreRejectsUnparsedInput(t *testing.T) {
	scorer := newTestScorer(nil)
	ctx := context.Background()

	var verr *ValidationError

	_, err := scorer.Score(ctx, nil, testJob(nil, 0, models.LevelMid))
	if !errors.As(err, &verr) {
		t.Errorf("Score(nil resume) error = %v, want ValidationError", err)
	}

	_, err = scorer.Score(ctx, &models.ParsedResume{}, testJob(nil, 0, models.LevelMid))
	if !errors.As(err, &verr) {
		t.Errorf("Score(unparsed resume) error = %v, want ValidationError", err)
	}

	_, err = scorer.Score(ctx, testResume(nil, 0), nil)
	if !errors.As(err, &verr) {
		t.Errorf("Score(nil job) error = %v, want ValidationError", err)
	}
}

func TestSkillsMatchHalfOverlap(t *testing.T) {
	scorer := newTestScorer(nil)

	result, err := scorer.Score(context.Background(),
		testResume([]string{"Python"}, 1),
		testJob([]string{"Python", "SQL"}, 0, models.LevelMid))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if result.SkillsMatchScore != 50.0 {
		t.Errorf("SkillsMatchScore = %f, want 50.0", result.SkillsMatchScore)
	}
	if !reflect.DeepEqual(result.MatchedSkills, []string{"Python"}) {
		t.Errorf("MatchedSkills = %v, want [Python]", result.MatchedSkills)
	}
	if !reflect.DeepEqual(result.MissingSkills, []string{"SQL"}) {
		t.Errorf("MissingSkills = %v, want [SQL]", result.MissingSkills)
	}
}

func TestSkillsMatchNeutralWithoutJobSkills(t *testing.T) {
	scorer := newTestScorer(nil)

	result, err := scorer.Score(context.Background(),
		testResume([]string{"Python"}, 1),
		testJob(nil, 0, models.LevelMid))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if result.SkillsMatchScore != 50.0 {
		t.Errorf("SkillsMatchScore = %f, want neutral 50.0", result.SkillsMatchScore)
	}
}

func TestSkillOverlapSubstringRule(t *testing.T) {
	// "java" matches "javascript" in either direction; deliberate.
	if got := skillOverlap([]string{"JavaScript"}, []string{"Java"}); got != 1.0 {
		t.Errorf("skillOverlap = %f, want 1.0 for substring match", got)
	}
	if got := skillOverlap([]string{"Python"}, []string{"Kubernetes"}); got != 0.0 {
		t.Errorf("skillOverlap = %f, want 0.0 for disjoint skills", got)
	}
}

func TestExperienceYearsShortfall(t *testing.T) {
	scorer := newTestScorer(nil)

	// 1 entry approximates 2 years against a 10 year requirement.
	resume := testResume([]string{"Python"}, 1)
	job := testJob([]string{"Python"}, 10, models.LevelSenior)

	result, err := scorer.Score(context.Background(), resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	// level entry vs senior = 0.4, years 2/10 = 0.2
	want := round2((0.4*0.6 + 0.2*0.4) * 100)
	if result.ExperienceMatchScore != want {
		t.Errorf("ExperienceMatchScore = %f, want %f", result.ExperienceMatchScore, want)
	}

	found := false
	for _, w := range result.Weaknesses {
		if w == "May lack required experience (10 years)" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Weaknesses = %v, want the experience shortfall flag", result.Weaknesses)
	}
}

func TestResumeExperienceLevelFromTitles(t *testing.T) {
	scorer := newTestScorer(nil)

	tests := []struct {
		titles []string
		want   models.ExperienceLevel
	}{
		{[]string{"Principal Engineer"}, models.LevelLead},
		{[]string{"Senior Developer"}, models.LevelSenior},
		{[]string{"Junior Analyst"}, models.LevelEntry},
		{[]string{"Engineer", "Engineer"}, models.LevelMid},        // 2 entries, no keyword
		{[]string{"E", "E", "E", "E", "E"}, models.LevelSenior},    // 5 entries
		{[]string{"Engineer"}, models.LevelEntry},                  // 1 entry
		{nil, models.LevelEntry},                                   // no history
	}

	for _, tt := range tests {
		entries := make([]models.ExperienceEntry, len(tt.titles))
		for i, title := range tt.titles {
			entries[i] = models.ExperienceEntry{Title: title}
		}
		if got := scorer.resumeExperienceLevel(entries); got != tt.want {
			t.Errorf("resumeExperienceLevel(%v) = %q, want %q", tt.titles, got, tt.want)
		}
	}
}

func TestEducationMatch(t *testing.T) {
	scorer := newTestScorer(nil)
	ctx := context.Background()

	resume := testResume([]string{"Python"}, 1)
	resume.Education = []models.EducationEntry{{Degree: "Bachelor of Science"}}

	job := testJob([]string{"Python"}, 0, models.LevelMid)
	job.EducationRequired = "Bachelor"

	result, err := scorer.Score(ctx, resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.EducationMatchScore != 100.0 {
		t.Errorf("EducationMatchScore = %f, want 100.0", result.EducationMatchScore)
	}

	// Mismatched degree scores zero, not neutral.
	resume.Education = []models.EducationEntry{{Degree: "Master of Arts"}}
	result, err = scorer.Score(ctx, resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.EducationMatchScore != 0.0 {
		t.Errorf("EducationMatchScore = %f, want 0.0", result.EducationMatchScore)
	}

	// No requirement stays neutral.
	job.EducationRequired = ""
	result, err = scorer.Score(ctx, resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.EducationMatchScore != 50.0 {
		t.Errorf("EducationMatchScore = %f, want neutral 50.0", result.EducationMatchScore)
	}
}

func TestFitVerdictThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  models.FitVerdict
	}{
		{85, models.FitHigh},
		{80, models.FitHigh},
		{79.99, models.FitMedium},
		{65, models.FitMedium},
		{60, models.FitMedium},
		{59.99, models.FitLow},
		{40, models.FitLow},
		{0, models.FitLow},
	}

	for _, tt := range tests {
		if got := fitVerdict(tt.score); got != tt.want {
			t.Errorf("fitVerdict(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreEndToEnd(t *testing.T) {
	parser := newTestParser(nil)
	scorer := newTestScorer(nil)

	parsed := parser.ParseText("Experienced Python developer with AWS and Docker skills, " +
		"Bachelor of Science in Computer Science, 3 years as Software Engineer")

	job := testJob([]string{"Python", "AWS", "Kubernetes"}, 2, models.LevelMid)
	job.EducationRequired = "Bachelor"
	job.CleanedText = "python aws kubernetes backend role"

	result, err := scorer.Score(context.Background(), parsed, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if got := round2(2.0 / 3.0 * 100); result.SkillsMatchScore != got {
		t.Errorf("SkillsMatchScore = %f, want %f (2 of 3 required)", result.SkillsMatchScore, got)
	}
	if result.EducationMatchScore != 100.0 {
		t.Errorf("EducationMatchScore = %f, want 100.0", result.EducationMatchScore)
	}
	// One title entry infers entry level: 0.7 against mid, years satisfied.
	if result.ExperienceMatchScore != 82.0 {
		t.Errorf("ExperienceMatchScore = %f, want 82.0", result.ExperienceMatchScore)
	}
	if result.CertificationMatchScore != 50.0 {
		t.Errorf("CertificationMatchScore = %f, want neutral 50.0", result.CertificationMatchScore)
	}
	if result.ProjectMatchScore != 50.0 {
		t.Errorf("ProjectMatchScore = %f, want neutral 50.0", result.ProjectMatchScore)
	}

	if !reflect.DeepEqual(result.MissingSkills, []string{"Kubernetes"}) {
		t.Errorf("MissingSkills = %v, want [Kubernetes]", result.MissingSkills)
	}
	if result.FitVerdict != models.FitMedium {
		t.Errorf("FitVerdict = %q, want medium (score %f)", result.FitVerdict, result.RelevanceScore)
	}
}

func TestScoreDeterministicWhenGeneratorFails(t *testing.T) {
	stub := &stubGenerator{err: errors.New("backend down")}
	scorer := newTestScorer(stub)
	ctx := context.Background()

	resume := testResume([]string{"Python", "Docker"}, 2)
	job := testJob([]string{"Python", "Kubernetes"}, 3, models.LevelMid)

	first, err := scorer.Score(ctx, resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := scorer.Score(ctx, resume, job)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if first.AIAnalysis != FallbackAnalysis {
		t.Errorf("AIAnalysis = %q, want fallback on generator failure", first.AIAnalysis)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring not deterministic across runs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScoreUsesGeneratedAnalysis(t *testing.T) {
	stub := &stubGenerator{response: "Solid candidate for the role."}
	scorer := newTestScorer(stub)

	result, err := scorer.Score(context.Background(),
		testResume([]string{"Python"}, 1),
		testJob([]string{"Python"}, 0, models.LevelMid))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if result.AIAnalysis != "Solid candidate for the role." {
		t.Errorf("AIAnalysis = %q, want the generated text", result.AIAnalysis)
	}
	if !strings.Contains(stub.lastPrompt, "Backend Engineer") {
		t.Errorf("prompt should carry the job title, got: %s", stub.lastPrompt)
	}
}

func TestScoreNarrativeUsesRetryBudget(t *testing.T) {
	stub := &stubGenerator{response: "ok"}
	scorer := NewRelevanceScorer(NewKnowledgeBase(), stub, time.Second, 4)

	_, err := scorer.Score(context.Background(),
		testResume([]string{"Python"}, 1),
		testJob([]string{"Python"}, 0, models.LevelMid))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if stub.lastRetries != 4 {
		t.Errorf("narrative retry budget = %d, want 4", stub.lastRetries)
	}
}

func TestAIConfidence(t *testing.T) {
	resume := testResume([]string{"Python"}, 1)
	resume.Education = []models.EducationEntry{{Degree: "BS"}}
	job := testJob([]string{"Python"}, 0, models.LevelMid)

	// All five signals present.
	if got := aiConfidence(resume, job); got != 1.0 {
		t.Errorf("aiConfidence = %f, want 1.0", got)
	}

	bare := &models.ParsedResume{CleanedText: "text"}
	bareJob := &models.AnalyzedJob{CleanedText: "text"}
	if got := aiConfidence(bare, bareJob); got != 0.5 {
		t.Errorf("aiConfidence = %f, want base 0.5", got)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(2.0 / 3.0 * 100); got != 66.67 {
		t.Errorf("round2 = %f, want 66.67", got)
	}
	if got := round2(50.0); got != 50.0 {
		t.Errorf("round2 = %f, want 50.0", got)
	}
	if math.Signbit(round2(0)) {
		t.Error("round2(0) produced negative zero")
	}
}
