package implementation

import (
	"context"
	"errors"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/mapper"
	"research-assistant-be/internal/model"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ResearchRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResearchMapper
}

func NewResearchRunRepository(db *gorm.DB) contract.ResearchRunRepository {
	return &ResearchRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewResearchMapper(),
	}
}

func (r *ResearchRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResearchRunRepositoryImpl) Create(ctx context.Context, run *entity.ResearchRun) error {
	m, err := r.mapper.ResearchRunToModel(run)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ResearchRunToEntity(m)
	if err != nil {
		return err
	}
	*run = *e
	return nil
}

func (r *ResearchRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchRun, error) {
	var m model.ResearchRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ResearchRunToEntity(&m)
}

func (r *ResearchRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchRun, error) {
	var models []*model.ResearchRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ResearchRun, len(models))
	for i, m := range models {
		e, err := r.mapper.ResearchRunToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (r *ResearchRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ResearchRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
