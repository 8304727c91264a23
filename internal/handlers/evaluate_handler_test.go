package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/models"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
)

// stubResumeRepo serves canned resumes keyed by ID.
type stubResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
}

func (s *stubResumeRepo) Create(resume *models.Resume) error { return nil }

func (s *stubResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	if r, ok := s.resumes[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range ids {
		if r, ok := s.resumes[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubResumeRepo) UpdateStatus(id uuid.UUID, status models.ParsingStatus) error { return nil }
func (s *stubResumeRepo) UpdateParsed(resume *models.Resume) error                     { return nil }
func (s *stubResumeRepo) UpdateError(id uuid.UUID, errorMsg string) error              { return nil }
func (s *stubResumeRepo) FindPendingParses(limit int) ([]models.Resume, error)         { return nil, nil }

type stubJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func (s *stubJobRepo) Create(job *models.Job) error { return nil }

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	if j, ok := s.jobs[id]; ok {
		return j, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubJobRepo) List(limit, offset int) ([]models.Job, error) { return nil, nil }

// stubEvalRepo tracks created and superseded evaluations in memory so
// tests can assert on the uniqueness invariant.
type stubEvalRepo struct {
	byID           map[uuid.UUID]*models.Evaluation
	active         map[[2]uuid.UUID]*models.Evaluation
	created        []*models.Evaluation
	supersedeCalls int
}

func newStubEvalRepo() *stubEvalRepo {
	return &stubEvalRepo{
		byID:   make(map[uuid.UUID]*models.Evaluation),
		active: make(map[[2]uuid.UUID]*models.Evaluation),
	}
}

func (s *stubEvalRepo) addActive(eval *models.Evaluation) {
	s.byID[eval.ID] = eval
	if !eval.Superseded {
		s.active[[2]uuid.UUID{eval.ResumeID, eval.JobID}] = eval
	}
}

func (s *stubEvalRepo) Create(eval *models.Evaluation) error {
	s.created = append(s.created, eval)
	s.addActive(eval)
	return nil
}

func (s *stubEvalRepo) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	if e, ok := s.byID[id]; ok {
		return e, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubEvalRepo) FindActiveByPair(resumeID, jobID uuid.UUID) (*models.Evaluation, error) {
	if e, ok := s.active[[2]uuid.UUID{resumeID, jobID}]; ok {
		return e, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubEvalRepo) Supersede(resumeID, jobID uuid.UUID) error {
	s.supersedeCalls++
	key := [2]uuid.UUID{resumeID, jobID}
	if e, ok := s.active[key]; ok {
		e.Superseded = true
		delete(s.active, key)
	}
	return nil
}

func (s *stubEvalRepo) UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error { return nil }
func (s *stubEvalRepo) UpdateResult(id uuid.UUID, result *models.ScoringResult) error   { return nil }
func (s *stubEvalRepo) UpdateError(id uuid.UUID, errorMsg string) error                 { return nil }
func (s *stubEvalRepo) FindPendingJobs(limit int) ([]models.Evaluation, error)          { return nil, nil }

type stubWorker struct {
	parses      []uuid.UUID
	evaluations []uuid.UUID
}

func (s *stubWorker) Start(ctx context.Context)          {}
func (s *stubWorker) Stop()                              {}
func (s *stubWorker) EnqueueParse(resumeID uuid.UUID)    { s.parses = append(s.parses, resumeID) }
func (s *stubWorker) EnqueueEvaluation(evalID uuid.UUID) { s.evaluations = append(s.evaluations, evalID) }

func completedResume(id uuid.UUID) *models.Resume {
	return &models.Resume{ID: id, ParsingStatus: models.ParsingCompleted}
}

func newEvaluateTestApp(resumes *stubResumeRepo, jobs *stubJobRepo, evals *stubEvalRepo, worker *stubWorker) *fiber.App {
	app := fiber.New()
	handler := NewEvaluationHandler(evals, resumes, jobs, worker)
	app.Post("/evaluate", handler.HandleEvaluate)
	app.Post("/evaluate/batch", handler.HandleBatchEvaluate)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestEvaluateQueuesCompletedResume(t *testing.T) {
	resumeID := uuid.New()
	jobID := uuid.New()

	resumes := &stubResumeRepo{resumes: map[uuid.UUID]*models.Resume{resumeID: completedResume(resumeID)}}
	jobs := &stubJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}}
	evals := newStubEvalRepo()
	worker := &stubWorker{}
	app := newEvaluateTestApp(resumes, jobs, evals, worker)

	resp := postJSON(t, app, "/evaluate", models.EvaluateRequest{
		ResumeID: resumeID.String(),
		JobID:    jobID.String(),
	})
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	if len(evals.created) != 1 {
		t.Fatalf("created %d evaluations, want 1", len(evals.created))
	}
	created := evals.created[0]
	if created.ResumeID != resumeID || created.JobID != jobID {
		t.Errorf("created evaluation pairs (%s, %s), want (%s, %s)", created.ResumeID, created.JobID, resumeID, jobID)
	}
	if len(worker.evaluations) != 1 || worker.evaluations[0] != created.ID {
		t.Errorf("enqueued %v, want the created evaluation ID %s", worker.evaluations, created.ID)
	}
}

func TestEvaluateRejectsExistingActivePair(t *testing.T) {
	resumeID := uuid.New()
	jobID := uuid.New()

	resumes := &stubResumeRepo{resumes: map[uuid.UUID]*models.Resume{resumeID: completedResume(resumeID)}}
	jobs := &stubJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}}
	evals := newStubEvalRepo()
	evals.addActive(&models.Evaluation{
		ID:       uuid.New(),
		ResumeID: resumeID,
		JobID:    jobID,
		Status:   models.StatusCompleted,
	})
	worker := &stubWorker{}
	app := newEvaluateTestApp(resumes, jobs, evals, worker)

	resp := postJSON(t, app, "/evaluate", models.EvaluateRequest{
		ResumeID: resumeID.String(),
		JobID:    jobID.String(),
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409 while an active evaluation exists", resp.StatusCode)
	}

	if evals.supersedeCalls != 0 {
		t.Errorf("supersede called %d times, want 0", evals.supersedeCalls)
	}
	if len(evals.created) != 0 {
		t.Errorf("created %d evaluations, want 0", len(evals.created))
	}
	if len(worker.evaluations) != 0 {
		t.Errorf("enqueued %d evaluations, want 0", len(worker.evaluations))
	}
}

func TestEvaluateRejectsUnparsedResume(t *testing.T) {
	jobID := uuid.New()
	jobs := &stubJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}}

	for _, status := range []models.ParsingStatus{
		models.ParsingPending,
		models.ParsingProcessing,
		models.ParsingFailed,
	} {
		resumeID := uuid.New()
		resumes := &stubResumeRepo{resumes: map[uuid.UUID]*models.Resume{
			resumeID: {ID: resumeID, ParsingStatus: status},
		}}
		evals := newStubEvalRepo()
		worker := &stubWorker{}
		app := newEvaluateTestApp(resumes, jobs, evals, worker)

		resp := postJSON(t, app, "/evaluate", models.EvaluateRequest{
			ResumeID: resumeID.String(),
			JobID:    jobID.String(),
		})
		if resp.StatusCode != fiber.StatusUnprocessableEntity {
			t.Errorf("status for %s resume = %d, want 422", status, resp.StatusCode)
		}
		if len(evals.created) != 0 {
			t.Errorf("created %d evaluations for %s resume, want 0", len(evals.created), status)
		}
	}
}

func TestBatchEvaluateFailuresAreIndependent(t *testing.T) {
	jobID := uuid.New()
	okA := uuid.New()
	okB := uuid.New()
	missing := uuid.New()
	unparsed := uuid.New()

	resumes := &stubResumeRepo{resumes: map[uuid.UUID]*models.Resume{
		okA:      completedResume(okA),
		okB:      completedResume(okB),
		unparsed: {ID: unparsed, ParsingStatus: models.ParsingFailed},
	}}
	jobs := &stubJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}}
	evals := newStubEvalRepo()
	worker := &stubWorker{}
	app := newEvaluateTestApp(resumes, jobs, evals, worker)

	resp := postJSON(t, app, "/evaluate/batch", models.BatchEvaluateRequest{
		JobID:     jobID.String(),
		ResumeIDs: []string{okA.String(), missing.String(), unparsed.String(), okB.String(), "not-a-uuid"},
	})
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body models.BatchEvaluateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if len(body.Evaluations) != 2 {
		t.Fatalf("queued %d evaluations, want 2: %+v", len(body.Evaluations), body)
	}
	if len(body.Failures) != 3 {
		t.Fatalf("reported %d failures, want 3: %+v", len(body.Failures), body.Failures)
	}

	// One independent record per succeeding resume, each bound to its own
	// (resume, job) pair.
	if len(evals.created) != 2 {
		t.Fatalf("created %d evaluations, want 2", len(evals.created))
	}
	wantPairs := map[uuid.UUID]bool{okA: false, okB: false}
	for _, created := range evals.created {
		if created.JobID != jobID {
			t.Errorf("evaluation %s bound to job %s, want %s", created.ID, created.JobID, jobID)
		}
		seen, ok := wantPairs[created.ResumeID]
		if !ok || seen {
			t.Errorf("unexpected or duplicated resume binding %s", created.ResumeID)
		}
		wantPairs[created.ResumeID] = true
	}
	if len(worker.evaluations) != 2 {
		t.Errorf("enqueued %d evaluations, want 2", len(worker.evaluations))
	}
}
