package services

import (
	"strings"
	"testing"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

func newTestAnalyzer() *JobAnalyzer {
	return NewJobAnalyzer(NewKnowledgeBase(), nil)
}

func TestAnalyzeRequiredSkills(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze(
		"We are looking for a backend developer.",
		"Required: Python and Django experience. Kubernetes knowledge is essential.",
	)

	for _, want := range []string{"Python", "Django", "Kubernetes"} {
		found := false
		for _, s := range job.SkillsRequired {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("SkillsRequired missing %q, got %v", want, job.SkillsRequired)
		}
	}
}

func TestAnalyzePreferredSkills(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze(
		"Backend role.",
		"Nice to have: terraform and grafana",
	)

	found := false
	for _, s := range job.SkillsPreferred {
		if s == "Terraform" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("SkillsPreferred missing %q, got %v", "Terraform", job.SkillsPreferred)
	}
}

func TestExtractExperienceLevel(t *testing.T) {
	analyzer := newTestAnalyzer()

	tests := []struct {
		text string
		want models.ExperienceLevel
	}{
		{"junior developer position", models.LevelEntry},
		{"mid-level developer role", models.LevelMid},
		{"senior backend engineer", models.LevelSenior},
		{"backend developer wanted", models.LevelMid}, // default when unspecified
	}

	for _, tt := range tests {
		if got := analyzer.extractExperienceLevel(tt.text); got != tt.want {
			t.Errorf("extractExperienceLevel(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractExperienceYears(t *testing.T) {
	analyzer := newTestAnalyzer()

	tests := []struct {
		text string
		want int
	}{
		{"at least 5 years of experience", 5},
		{"10+ years in backend development", 10},
		{"2 yrs minimum", 2},
		{"no tenure requirement", 0},
		{"founded in 1995", 0}, // implausible figure ignored
	}

	for _, tt := range tests {
		if got := analyzer.ExtractExperienceYears(tt.text); got != tt.want {
			t.Errorf("ExtractExperienceYears(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestExtractJobType(t *testing.T) {
	analyzer := newTestAnalyzer()

	tests := []struct {
		text string
		want models.JobType
	}{
		{"this is a part-time role", models.JobPartTime},
		{"freelance engagement", models.JobContract},
		{"summer internship opening", models.JobInternship},
		{"backend engineer wanted", models.JobFullTime}, // default
	}

	for _, tt := range tests {
		if got := analyzer.extractJobType(tt.text); got != tt.want {
			t.Errorf("extractJobType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractEducationRequirement(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze("Backend role.", "Bachelor of Science required.")
	if !strings.Contains(strings.ToLower(job.EducationRequired), "bachelor") {
		t.Errorf("EducationRequired = %q, want a bachelor match", job.EducationRequired)
	}

	job = analyzer.Analyze("Backend role.", "No formal education needed.")
	if job.EducationRequired != "" {
		t.Errorf("EducationRequired = %q, want empty", job.EducationRequired)
	}
}

func TestExtractSalaryRange(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze("Backend role.", "Compensation 80,000 - 100,000 USD")
	if job.SalaryRange == "" {
		t.Error("SalaryRange not extracted")
	}
}

func TestExtractCertificationRequirements(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze("Cloud role.", "AWS certified candidates preferred. CISSP a bonus.")
	if len(job.CertificationsRequired) < 2 {
		t.Errorf("CertificationsRequired = %v, want both the AWS and CISSP matches", job.CertificationsRequired)
	}
}

func TestCalculateComplexityScore(t *testing.T) {
	analyzer := newTestAnalyzer()

	high := analyzer.CalculateComplexityScore(
		"senior engineer building distributed microservices, mentor the team, 10+ years required",
	)
	if high != 1.0 {
		t.Errorf("complexity = %f, want capped 1.0", high)
	}

	low := analyzer.CalculateComplexityScore("entry level support role")
	if low != 0.0 {
		t.Errorf("complexity = %f, want 0.0", low)
	}

	if mid := analyzer.CalculateComplexityScore("senior engineer"); mid != 0.3 {
		t.Errorf("complexity = %f, want 0.3 for seniority only", mid)
	}
}

func TestAnalyzeKeywordsAndSections(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := analyzer.Analyze(
		"Responsible for designing payment services. You will develop APIs that handle settlement flows.",
		"Requirements: strong knowledge of distributed systems and message queues.",
	)

	if len(job.Keywords) == 0 {
		t.Error("Keywords not extracted")
	}
	if len(job.Keywords) > 20 {
		t.Errorf("Keywords = %d entries, want at most 20", len(job.Keywords))
	}
	if len(job.Responsibilities) == 0 {
		t.Error("Responsibilities not extracted")
	}
	if job.CleanedText == "" {
		t.Error("CleanedText empty")
	}
}
