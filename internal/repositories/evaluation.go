package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anupamakannur/resume-relevance/internal/models"
)

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByID(id uuid.UUID) (*models.Evaluation, error)
	FindActiveByPair(resumeID, jobID uuid.UUID) (*models.Evaluation, error)
	Supersede(resumeID, jobID uuid.UUID) error
	UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error
	UpdateResult(id uuid.UUID, result *models.ScoringResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// FindActiveByPair returns the single non-superseded evaluation for a
// (resume, job) pair, or ErrNotFound.
func (r *evaluationRepository) FindActiveByPair(resumeID, jobID uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.
		Where("resume_id = ? AND job_id = ? AND superseded = false", resumeID, jobID).
		First(&eval).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation for pair (%s, %s): %w", resumeID, jobID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// Supersede retires any active evaluation for the pair so a fresh one can
// become the pair's single active record.
func (r *evaluationRepository) Supersede(resumeID, jobID uuid.UUID) error {
	err := r.db.Model(&models.Evaluation{}).
		Where("resume_id = ? AND job_id = ? AND superseded = false", resumeID, jobID).
		Updates(map[string]interface{}{
			"superseded": true,
			"updated_at": time.Now(),
		}).Error

	if err != nil {
		return fmt.Errorf("failed to supersede evaluations: %w", err)
	}
	return nil
}

func (r *evaluationRepository) UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateResult stores the full scoring result and marks the evaluation
// completed. Struct-based update so the JSON serializer applies to the
// list columns; explicit Select so cleared fields still write.
func (r *evaluationRepository) UpdateResult(id uuid.UUID, result *models.ScoringResult) error {
	verdict := string(result.FitVerdict)

	updates := models.Evaluation{
		Status:                  models.StatusCompleted,
		RelevanceScore:          &result.RelevanceScore,
		FitVerdict:              &verdict,
		SkillsMatchScore:        &result.SkillsMatchScore,
		ExperienceMatchScore:    &result.ExperienceMatchScore,
		EducationMatchScore:     &result.EducationMatchScore,
		CertificationMatchScore: &result.CertificationMatchScore,
		ProjectMatchScore:       &result.ProjectMatchScore,
		SemanticSimilarityScore: &result.SemanticSimilarityScore,
		MatchedSkills:           result.MatchedSkills,
		MissingSkills:           result.MissingSkills,
		Strengths:               result.Strengths,
		Weaknesses:              result.Weaknesses,
		AIAnalysis:              &result.AIAnalysis,
		AIConfidence:            &result.AIConfidence,
		UpdatedAt:               time.Now(),
	}

	res := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Select("status", "relevance_score", "fit_verdict",
			"skills_match_score", "experience_match_score", "education_match_score",
			"certification_match_score", "project_match_score", "semantic_similarity_score",
			"matched_skills", "missing_skills", "strengths", "weaknesses",
			"ai_analysis", "ai_confidence", "error_message", "updated_at").
		Updates(updates)

	if res.Error != nil {
		return fmt.Errorf("failed to update result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *evaluationRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *evaluationRepository) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Where("status = ? AND superseded = false", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return evals, nil
}
