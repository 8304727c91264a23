package services

import "strings"

type skillResource struct {
	Skill   string
	Courses []string
}

// learningResources maps well-known skills to curated course lists, used
// by the feedback generator. Ordered so lookup is deterministic when a
// skill name overlaps several entries.
var learningResources = []skillResource{
	// programming languages
	{Skill: "python", Courses: []string{"Python for Data Science - Coursera", "Automate the Boring Stuff with Python", "Python.org Official Tutorial"}},
	{Skill: "javascript", Courses: []string{"JavaScript: The Complete Guide - Udemy", "MDN Web Docs - JavaScript Guide", "Eloquent JavaScript Book"}},
	{Skill: "java", Courses: []string{"Java Programming Masterclass - Udemy", "Oracle Java Tutorials", "Effective Java by Joshua Bloch"}},

	// frameworks
	{Skill: "react", Courses: []string{"React Official Documentation", "React - The Complete Guide - Udemy", "React Patterns and Best Practices"}},
	{Skill: "django", Courses: []string{"Django Girls Tutorial", "Django Official Documentation", "Two Scoops of Django Book"}},

	// cloud platforms
	{Skill: "aws", Courses: []string{"AWS Certified Solutions Architect - A Cloud Guru", "AWS Free Tier Hands-on Labs", "AWS Well-Architected Framework"}},
	{Skill: "azure", Courses: []string{"Microsoft Learn - Azure Fundamentals", "Azure Architecture Center", "Azure Certification Paths"}},

	// soft skills
	{Skill: "leadership", Courses: []string{"Leadership and Management - Coursera", "The 7 Habits of Highly Effective People", "Harvard Business Review Leadership Articles"}},
	{Skill: "communication", Courses: []string{"Effective Communication - Coursera", "Crucial Conversations Book", "Toastmasters International"}},
}

// certificationResources maps cloud vendors to study resources for the
// certification suggestions. Anything unrecognized gets the generic set.
var certificationResources = []struct {
	Vendors   []string
	Resources []string
}{
	{Vendors: []string{"aws"}, Resources: []string{"AWS Training and Certification", "A Cloud Guru", "Linux Academy"}},
	{Vendors: []string{"azure"}, Resources: []string{"Microsoft Learn", "Pluralsight", "Cloud Academy"}},
	{Vendors: []string{"gcp", "google"}, Resources: []string{"Google Cloud Training", "Coursera", "Qwiklabs"}},
}

var genericCertResources = []string{"Official certification website", "Study guides", "Practice exams"}

var learningPlatforms = []string{
	"Coursera - Online courses from top universities",
	"Udemy - Practical skill-based courses",
	"LinkedIn Learning - Professional development",
	"edX - Free courses from universities",
}

var learningCommunities = []string{
	"GitHub - Open source contributions",
	"Stack Overflow - Technical Q&A",
	"Reddit - r/programming, r/cscareerquestions",
	"Discord - Developer communities",
}

// resourcesForSkill returns the curated course list for a skill, or nil.
// Lookup is by bidirectional substring so "Python Programming" still hits
// the "python" entry.
func resourcesForSkill(skill string) []string {
	key := strings.ToLower(strings.TrimSpace(skill))
	if key == "" {
		return nil
	}
	for _, entry := range learningResources {
		if strings.Contains(key, entry.Skill) || strings.Contains(entry.Skill, key) {
			return entry.Courses
		}
	}
	return nil
}

// resourcesForCertification returns vendor study resources for a
// certification name.
func resourcesForCertification(cert string) []string {
	key := strings.ToLower(cert)
	for _, entry := range certificationResources {
		for _, vendor := range entry.Vendors {
			if strings.Contains(key, vendor) {
				return entry.Resources
			}
		}
	}
	return genericCertResources
}
