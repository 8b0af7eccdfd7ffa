package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
	"github.com/saat-labs/saat-api/pkg/ai"
)

// ErrAnalysisFailed indicates the model produced no usable verdict.
var ErrAnalysisFailed = errors.New("analysis failed")

// Verdict schemas the model responses are validated against. Responses
// with the wrong shape are rejected rather than stored.
const (
	fileNamingSchema = `{
		"type": "object",
		"required": ["status"],
		"properties": {
			"status": {"enum": ["Yes", "No"]},
			"invalid_files": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["file_name", "reason"],
					"properties": {
						"file_name": {"type": "string"},
						"path": {"type": "string"},
						"reason": {"type": "string"}
					}
				}
			}
		}
	}`

	codeNamingSchema = `{
		"type": "object",
		"required": ["status"],
		"properties": {
			"status": {"enum": ["Yes", "No"]},
			"issues": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["file_path", "reason"],
					"properties": {
						"file_path": {"type": "string"},
						"line_number": {"type": "integer"},
						"element_type": {"type": "string"},
						"element_name": {"type": "string"},
						"suggested_name": {"type": "string"},
						"reason": {"type": "string"}
					}
				}
			}
		}
	}`

	commentAccuracySchema = `{
		"type": "object",
		"required": ["status"],
		"properties": {
			"status": {"enum": ["Pass", "Fail"]},
			"issues": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["file_path", "issue"],
					"properties": {
						"file_path": {"type": "string"},
						"line_number": {"type": "integer"},
						"comment_type": {"type": "string"},
						"actual_comment": {"type": "string"},
						"issue": {"type": "string"},
						"suggestion": {"type": "string"}
					}
				}
			}
		}
	}`
)

// AnalysisService runs AI convention audits over linked repositories and
// persists the verdicts on the code submission.
type AnalysisService interface {
	FileNaming(ctx context.Context, payload dto.AnalysisRequest) (map[string]interface{}, error)
	CodeNaming(ctx context.Context, payload dto.AnalysisRequest) (map[string]interface{}, error)
	CommentAccuracy(ctx context.Context, payload dto.CommentCheckRequest) (map[string]interface{}, error)
	FileNamingResults(ctx context.Context, codeID string) (map[string]interface{}, error)
	CodeNamingResults(ctx context.Context, codeID string) (map[string]interface{}, error)
}

type analysisService struct {
	codes     repository.CodeRepository
	generator ai.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time

	fileNaming      *jsonschema.Schema
	codeNaming      *jsonschema.Schema
	commentAccuracy *jsonschema.Schema
}

// NewAnalysisService constructs an AnalysisService instance.
func NewAnalysisService(codes repository.CodeRepository, generator ai.Generator, validate *validator.Validate, logger zerolog.Logger) (AnalysisService, error) {
	compile := func(name, raw string) (*jsonschema.Schema, error) {
		return jsonschema.CompileString(name, raw)
	}

	fileNaming, err := compile("file_naming.json", fileNamingSchema)
	if err != nil {
		return nil, fmt.Errorf("compile file naming schema: %w", err)
	}
	codeNaming, err := compile("code_naming.json", codeNamingSchema)
	if err != nil {
		return nil, fmt.Errorf("compile code naming schema: %w", err)
	}
	commentAccuracy, err := compile("comment_accuracy.json", commentAccuracySchema)
	if err != nil {
		return nil, fmt.Errorf("compile comment accuracy schema: %w", err)
	}

	return &analysisService{
		codes:           codes,
		generator:       generator,
		validator:       validate,
		logger:          logger.With().Str("component", "analysis_service").Logger(),
		now:             time.Now,
		fileNaming:      fileNaming,
		codeNaming:      codeNaming,
		commentAccuracy: commentAccuracy,
	}, nil
}

func (s *analysisService) FileNaming(ctx context.Context, payload dto.AnalysisRequest) (map[string]interface{}, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	verdict, err := s.analyze(ctx, ai.BuildFileNamingPrompt(payload.RepoURL), s.fileNaming)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, payload.CodeID, func(code *models.Code) {
		code.FileNamingResults = verdict
	}); err != nil {
		return nil, err
	}

	return verdict, nil
}

func (s *analysisService) CodeNaming(ctx context.Context, payload dto.AnalysisRequest) (map[string]interface{}, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	verdict, err := s.analyze(ctx, ai.BuildCodeNamingPrompt(payload.RepoURL), s.codeNaming)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, payload.CodeID, func(code *models.Code) {
		code.CodeNamingResults = verdict
	}); err != nil {
		return nil, err
	}

	return verdict, nil
}

// CommentAccuracy is stateless: the verdict goes back to the caller and
// nothing is persisted.
func (s *analysisService) CommentAccuracy(ctx context.Context, payload dto.CommentCheckRequest) (map[string]interface{}, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}
	return s.analyze(ctx, ai.BuildCommentAccuracyPrompt(payload.RepoURL), s.commentAccuracy)
}

// FileNamingResults returns the stored file naming verdict for a code
// submission, or nil when no analysis has run yet.
func (s *analysisService) FileNamingResults(ctx context.Context, codeID string) (map[string]interface{}, error) {
	code, err := s.codes.Get(ctx, codeID)
	if err != nil {
		return nil, ErrCodeNotFound
	}
	return code.FileNamingResults, nil
}

// CodeNamingResults returns the stored code naming verdict for a code
// submission, or nil when no analysis has run yet.
func (s *analysisService) CodeNamingResults(ctx context.Context, codeID string) (map[string]interface{}, error) {
	code, err := s.codes.Get(ctx, codeID)
	if err != nil {
		return nil, ErrCodeNotFound
	}
	return code.CodeNamingResults, nil
}

func (s *analysisService) analyze(ctx context.Context, prompt string, schema *jsonschema.Schema) (map[string]interface{}, error) {
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("analysis request failed")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	cleaned := ai.CleanJSONResponse(raw)

	var verdict map[string]interface{}
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()
	if err := decoder.Decode(&verdict); err != nil {
		s.logger.Error().Err(err).Msg("analysis response is not JSON")
		return nil, fmt.Errorf("%w: invalid JSON response", ErrAnalysisFailed)
	}

	// jsonschema wants the document decoded with UseNumber.
	if err := schema.Validate(verdict); err != nil {
		s.logger.Error().Err(err).Msg("analysis response failed schema validation")
		return nil, fmt.Errorf("%w: response does not match expected shape", ErrAnalysisFailed)
	}

	return normalizeNumbers(verdict).(map[string]interface{}), nil
}

func (s *analysisService) persist(ctx context.Context, codeID string, apply func(*models.Code)) error {
	code, err := s.codes.Get(ctx, codeID)
	if err != nil {
		return ErrCodeNotFound
	}
	apply(&code)
	code.UpdatedAt = s.now()
	return s.codes.Update(ctx, &code)
}

// normalizeNumbers converts json.Number values to float64 so the verdict
// round-trips through the JSON column without type surprises.
func normalizeNumbers(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = normalizeNumbers(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}
