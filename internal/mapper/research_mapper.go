package mapper

import (
	"encoding/json"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ResearchMapper struct{}

func NewResearchMapper() *ResearchMapper {
	return &ResearchMapper{}
}

func (m *ResearchMapper) ResearchRunToEntity(r *model.ResearchRun) (*entity.ResearchRun, error) {
	if r == nil {
		return nil, nil
	}

	var subQuestions []string
	if len(r.SubQuestions) > 0 {
		if err := json.Unmarshal(r.SubQuestions, &subQuestions); err != nil {
			return nil, err
		}
	}

	var searchResults map[string]string
	if len(r.SearchResults) > 0 {
		if err := json.Unmarshal(r.SearchResults, &searchResults); err != nil {
			return nil, err
		}
	}

	return &entity.ResearchRun{
		Id:            r.Id,
		Topic:         r.Topic,
		SubQuestions:  subQuestions,
		OutputFormat:  r.OutputFormat,
		SearchResults: searchResults,
		FinalSummary:  r.FinalSummary,
		CreatedAt:     r.CreatedAt,
	}, nil
}

func (m *ResearchMapper) ResearchRunToModel(r *entity.ResearchRun) (*model.ResearchRun, error) {
	if r == nil {
		return nil, nil
	}

	subQuestions, err := json.Marshal(r.SubQuestions)
	if err != nil {
		return nil, err
	}

	searchResults, err := json.Marshal(r.SearchResults)
	if err != nil {
		return nil, err
	}

	return &model.ResearchRun{
		Id:            r.Id,
		Topic:         r.Topic,
		SubQuestions:  datatypes.JSON(subQuestions),
		OutputFormat:  r.OutputFormat,
		SearchResults: datatypes.JSON(searchResults),
		FinalSummary:  r.FinalSummary,
		CreatedAt:     r.CreatedAt,
	}, nil
}
