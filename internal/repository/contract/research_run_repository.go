package contract

import (
	"context"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
)

type ResearchRunRepository interface {
	Create(ctx context.Context, run *entity.ResearchRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
