package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/models"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
)

// EvaluatorService runs the two asynchronous pipeline stages: parsing an
// uploaded resume and scoring a (resume, job) pair. Both are invoked by
// the worker, never by handlers directly.
type EvaluatorService interface {
	ParseResume(ctx context.Context, resumeID uuid.UUID) error
	EvaluatePair(ctx context.Context, evalID uuid.UUID) error
}

type evaluatorService struct {
	resumeRepo   repositories.ResumeRepository
	jobRepo      repositories.JobRepository
	evalRepo     repositories.EvaluationRepository
	feedbackRepo repositories.FeedbackRepository

	extractor DocumentExtractor
	parser    *ResumeParser
	scorer    *RelevanceScorer
	feedback  *FeedbackGenerator
}

func NewEvaluatorService(
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	evalRepo repositories.EvaluationRepository,
	feedbackRepo repositories.FeedbackRepository,
	extractor DocumentExtractor,
	parser *ResumeParser,
	scorer *RelevanceScorer,
	feedback *FeedbackGenerator,
) EvaluatorService {
	return &evaluatorService{
		resumeRepo:   resumeRepo,
		jobRepo:      jobRepo,
		evalRepo:     evalRepo,
		feedbackRepo: feedbackRepo,
		extractor:    extractor,
		parser:       parser,
		scorer:       scorer,
		feedback:     feedback,
	}
}

// ParseResume extracts text from the stored file and persists the parsed
// snapshot. Extraction or parsing failure marks the resume failed with
// the error recorded; the upload itself is kept.
func (e *evaluatorService) ParseResume(ctx context.Context, resumeID uuid.UUID) error {
	if err := e.resumeRepo.UpdateStatus(resumeID, models.ParsingProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Parsing resume %s\n", resumeID)

	resume, err := e.resumeRepo.FindByID(resumeID)
	if err != nil {
		e.resumeRepo.UpdateError(resumeID, err.Error())
		return fmt.Errorf("failed to get resume: %w", err)
	}

	rawText, err := e.extractor.ExtractText(resume.FilePath, resume.FileType)
	if err != nil {
		e.resumeRepo.UpdateError(resumeID, fmt.Sprintf("text extraction failed: %v", err))
		return fmt.Errorf("failed to extract text: %w", err)
	}

	parsed := e.parser.ParseText(rawText)
	resume.ApplyParsed(parsed)

	if err := e.resumeRepo.UpdateParsed(resume); err != nil {
		return fmt.Errorf("failed to save parsed resume: %w", err)
	}

	log.Printf("✅ Resume %s parsed (%d skills, confidence %.2f)\n", resumeID, len(parsed.Skills), parsed.ConfidenceScore)
	return nil
}

// EvaluatePair scores the evaluation's (resume, job) pair and persists
// the result plus the derived feedback bundle.
func (e *evaluatorService) EvaluatePair(ctx context.Context, evalID uuid.UUID) error {
	if err := e.evalRepo.UpdateStatus(evalID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting evaluation %s\n", evalID)

	evaluation, err := e.evalRepo.FindByID(evalID)
	if err != nil {
		e.evalRepo.UpdateError(evalID, err.Error())
		return fmt.Errorf("failed to get evaluation: %w", err)
	}

	resume, err := e.resumeRepo.FindByID(evaluation.ResumeID)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("resume not found: %v", err))
		return fmt.Errorf("failed to get resume: %w", err)
	}

	if resume.ParsingStatus != models.ParsingCompleted {
		msg := fmt.Sprintf("resume %s has not been parsed (status %s)", resume.ID, resume.ParsingStatus)
		e.evalRepo.UpdateError(evalID, msg)
		return &ValidationError{Field: "resume_id", Reason: msg}
	}

	job, err := e.jobRepo.FindByID(evaluation.JobID)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("job not found: %v", err))
		return fmt.Errorf("failed to get job: %w", err)
	}

	parsedResume := resume.Parsed()
	analyzedJob := job.Analyzed()

	log.Println("📊 Scoring resume against job...")
	result, err := e.scorer.Score(ctx, parsedResume, analyzedJob)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("scoring failed: %v", err))
		return fmt.Errorf("failed to score: %w", err)
	}

	log.Println("💬 Generating feedback...")
	bundle := e.feedback.Generate(ctx, result, parsedResume, analyzedJob)

	log.Println("💾 Saving evaluation results...")
	if err := e.evalRepo.UpdateResult(evalID, result); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	record := &models.FeedbackRecord{
		EvaluationID: evalID,
		Bundle:       *bundle,
	}
	if err := e.feedbackRepo.Upsert(record); err != nil {
		// Result is already saved; feedback can be regenerated later.
		log.Printf("⚠️  Failed to save feedback for %s: %v\n", evalID, err)
	}

	log.Printf("✅ Evaluation %s completed: %.2f%% (%s fit)\n", evalID, result.RelevanceScore, result.FitVerdict)
	return nil
}
