package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/assistant/pipeline"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/websearch"

	"github.com/google/uuid"
)

// IResearchService runs the multi-agent research pipeline and persists runs
type IResearchService interface {
	Run(ctx context.Context, request *dto.RunResearchRequest) (*dto.ResearchRunResponse, error)
	ListRuns(ctx context.Context) ([]*dto.ResearchRunResponse, error)
}

type researchService struct {
	uowFactory unitofwork.RepositoryFactory
	executor   *pipeline.Executor
	publisher  IPublisherService
}

func NewResearchService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	searchProvider websearch.SearchProvider,
	searchMaxResults int,
	publisher IPublisherService,
) IResearchService {
	return &researchService{
		uowFactory: uowFactory,
		executor:   pipeline.NewExecutor(llmProvider, searchProvider, searchMaxResults, initPipelineLogger()),
		publisher:  publisher,
	}
}

func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// Run executes Plan, Search and Write for a topic. The run is persisted
// only when every stage succeeded.
func (rs *researchService) Run(ctx context.Context, request *dto.RunResearchRequest) (*dto.ResearchRunResponse, error) {
	state, err := rs.executor.Run(ctx, request.Topic)
	if err != nil {
		return nil, err
	}

	run := entity.ResearchRun{
		Id:            uuid.New(),
		Topic:         state.Topic,
		SubQuestions:  state.Plan.SubQuestions,
		OutputFormat:  state.Plan.OutputFormat,
		SearchResults: state.SearchResults,
		FinalSummary:  state.FinalSummary,
		CreatedAt:     time.Now(),
	}

	uow := rs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ResearchRunRepository().Create(ctx, &run); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if rs.publisher != nil {
		if err := rs.publisher.Publish(ctx, constant.EventResearchRunCompleted, map[string]interface{}{
			"run_id": run.Id.String(),
			"topic":  run.Topic,
		}); err != nil {
			log.Printf("[WARN] Failed to publish %s: %v", constant.EventResearchRunCompleted, err)
		}
	}

	return runToResponse(&run), nil
}

// ListRuns returns persisted runs, newest first
func (rs *researchService) ListRuns(ctx context.Context) ([]*dto.ResearchRunResponse, error) {
	uow := rs.uowFactory.NewUnitOfWork(ctx)

	runs, err := uow.ResearchRunRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ResearchRunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, runToResponse(run))
	}

	return response, nil
}

func runToResponse(run *entity.ResearchRun) *dto.ResearchRunResponse {
	return &dto.ResearchRunResponse{
		Id:            run.Id,
		Topic:         run.Topic,
		SubQuestions:  run.SubQuestions,
		OutputFormat:  run.OutputFormat,
		SearchResults: run.SearchResults,
		FinalSummary:  run.FinalSummary,
		CreatedAt:     run.CreatedAt,
	}
}
