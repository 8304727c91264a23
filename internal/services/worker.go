package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Anupamakannur/resume-relevance/internal/repositories"
)

type TaskKind string

const (
	TaskParseResume TaskKind = "parse_resume"
	TaskEvaluate    TaskKind = "evaluate"
)

// Task is one unit of asynchronous work: either parsing a resume or
// scoring an evaluation.
type Task struct {
	Kind TaskKind
	ID   uuid.UUID
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueParse(resumeID uuid.UUID)
	EnqueueEvaluation(evalID uuid.UUID)
}

type worker struct {
	resumeRepo       repositories.ResumeRepository
	evalRepo         repositories.EvaluationRepository
	evaluatorService EvaluatorService
	taskQueue        chan Task
	concurrency      int
	wg               sync.WaitGroup
	stopChan         chan struct{}
}

func NewWorker(
	resumeRepo repositories.ResumeRepository,
	evalRepo repositories.EvaluationRepository,
	evaluatorService EvaluatorService,
	concurrency int,
) Worker {
	return &worker{
		resumeRepo:       resumeRepo,
		evalRepo:         evalRepo,
		evaluatorService: evaluatorService,
		taskQueue:        make(chan Task, 100),
		concurrency:      concurrency,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processTasks(ctx, i+1)
	}

	// Poller picks up tasks that were queued but never enqueued, e.g.
	// after a restart.
	w.wg.Add(1)
	go w.pollPendingTasks(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueParse implements Worker.
func (w *worker) EnqueueParse(resumeID uuid.UUID) {
	w.enqueue(Task{Kind: TaskParseResume, ID: resumeID})
}

// EnqueueEvaluation implements Worker.
func (w *worker) EnqueueEvaluation(evalID uuid.UUID) {
	w.enqueue(Task{Kind: TaskEvaluate, ID: evalID})
}

func (w *worker) enqueue(task Task) {
	select {
	case w.taskQueue <- task:
		log.Printf("📥 Task %s/%s enqueued\n", task.Kind, task.ID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue task %s/%s\n", task.Kind, task.ID)
	}
}

func (w *worker) processTasks(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing tasks\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case task := <-w.taskQueue:
			log.Printf("👷 Worker #%d processing task %s/%s\n", workerID, task.Kind, task.ID)
			if err := w.runTask(ctx, task); err != nil {
				log.Printf("❌ Worker #%d failed task %s/%s: %v\n", workerID, task.Kind, task.ID, err)
			} else {
				log.Printf("✅ Worker #%d completed task %s/%s\n", workerID, task.Kind, task.ID)
			}
		}
	}
}

func (w *worker) runTask(ctx context.Context, task Task) error {
	switch task.Kind {
	case TaskParseResume:
		return w.evaluatorService.ParseResume(ctx, task.ID)
	default:
		return w.evaluatorService.EvaluatePair(ctx, task.ID)
	}
}

func (w *worker) pollPendingTasks(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending tasks poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending tasks poller stopped")
			return
		case <-ticker.C:
			pendingResumes, err := w.resumeRepo.FindPendingParses(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending resumes: %v\n", err)
			} else {
				if len(pendingResumes) > 0 {
					log.Printf("📋 Found %d pending resumes\n", len(pendingResumes))
				}
				for _, resume := range pendingResumes {
					w.EnqueueParse(resume.ID)
				}
			}

			pendingEvals, err := w.evalRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending evaluations: %v\n", err)
				continue
			}
			if len(pendingEvals) > 0 {
				log.Printf("📋 Found %d pending evaluations\n", len(pendingEvals))
			}
			for _, eval := range pendingEvals {
				w.EnqueueEvaluation(eval.ID)
			}
		}
	}
}
