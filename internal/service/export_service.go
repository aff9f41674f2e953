package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// ResultsTable - результаты опроса в табличном виде: строка на результат, столбец на вопрос
type ResultsTable struct {
	SurveyName string
	Headers    []string
	Rows       [][]string
}

// ExportService готовит результаты опроса к выгрузке в CSV/XLSX
type ExportService struct {
	access       *surveyAccess
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	defaultLang  string
}

// NewExportService создает сервис экспорта
func NewExportService(
	surveyRepo repository.SurveyRepository,
	adminRepo repository.SurveyAdminRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	defaultLang string,
) *ExportService {
	return &ExportService{
		access:       &surveyAccess{surveyRepo: surveyRepo, adminRepo: adminRepo},
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		defaultLang:  defaultLang,
	}
}

// ResultsTable собирает все результаты опроса. Доступно тем, кто управляет опросом.
func (s *ExportService) ResultsTable(ctx context.Context, actor Actor, surveyID uuid.UUID, lang string) (*ResultsTable, error) {
	survey, err := s.access.manageable(ctx, actor, surveyID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	results, err := s.resultRepo.List(ctx, repository.ResultFilters{SurveyID: &surveyID, WithUser: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	table := &ResultsTable{
		SurveyName: survey.Translation(lang, s.defaultLang).Name,
		Headers:    []string{"Result ID", "User", "Timestamp"},
		Rows:       make([][]string, 0, len(results)),
	}
	column := make(map[uuid.UUID]int, len(questions))
	for i, q := range questions {
		column[q.ID] = i
		table.Headers = append(table.Headers, q.Translation(lang, s.defaultLang).Question)
	}

	for _, r := range results {
		row := make([]string, 3+len(questions))
		row[0] = r.ID.String()
		row[1] = resultUsername(&r)
		row[2] = r.Timestamp.UTC().Format(time.RFC3339)
		for _, a := range r.Answers {
			if i, ok := column[a.QuestionID]; ok {
				row[3+i] = a.Text
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func resultUsername(r *entity.Result) string {
	if r.User != nil {
		return r.User.Username
	}
	return r.UserID.String()
}
