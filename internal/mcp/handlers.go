package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/ops"
	"github.com/hpungsan/leitner/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
// The store has a single writer, so every call holds mu from load to save.
type Handlers struct {
	backend store.Backend
	logger  *slog.Logger

	mu sync.Mutex
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(backend store.Backend, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{backend: backend, logger: logger}
}

// Request types for each tool

// AddRequest represents the arguments for fact_add.
type AddRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ListRequest represents the arguments for fact_list.
type ListRequest struct {
	Level  *int `json:"level,omitempty"`
	Limit  int  `json:"limit,omitempty"`
	Offset int  `json:"offset,omitempty"`
}

// DueRequest represents the arguments for fact_due.
type DueRequest struct {
	Date        string `json:"date,omitempty"`
	SortByLevel bool   `json:"sort_by_level,omitempty"`
	HideAnswers bool   `json:"hide_answers,omitempty"`
}

// ReviewRequest represents the arguments for fact_review.
type ReviewRequest struct {
	ID      string `json:"id"`
	Correct *bool  `json:"correct"`
	Date    string `json:"date,omitempty"`
}

// StatsRequest represents the arguments for fact_stats.
type StatsRequest struct {
	Date string `json:"date,omitempty"`
}

// ScheduleRequest represents the arguments for schedule_show.
type ScheduleRequest struct {
	Format string `json:"format,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Handler implementations

// HandleAdd handles the fact_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, true, func(repo *store.Repository) (any, error) {
		return ops.Add(repo, ops.AddInput{
			Question: input.Question,
			Answer:   input.Answer,
		})
	})
}

// HandleList handles the fact_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, false, func(repo *store.Repository) (any, error) {
		return ops.List(repo, ops.ListInput{
			Level:  input.Level,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
	})
}

// HandleDue handles the fact_due tool call.
func (h *Handlers) HandleDue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, false, func(repo *store.Repository) (any, error) {
		date, err := ops.ParseDate(input.Date, repo.CreatedAt())
		if err != nil {
			return nil, err
		}
		return ops.Due(repo, ops.DueInput{
			Date:        date,
			SortByLevel: input.SortByLevel,
			HideAnswers: input.HideAnswers,
		})
	})
}

// HandleReview handles the fact_review tool call.
func (h *Handlers) HandleReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReviewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, true, func(repo *store.Repository) (any, error) {
		at, err := ops.ParseDate(input.Date, repo.CreatedAt())
		if err != nil {
			return nil, err
		}
		return ops.Review(repo, ops.ReviewInput{
			ID:      input.ID,
			Correct: input.Correct,
			At:      at,
		})
	})
}

// HandleStats handles the fact_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StatsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, false, func(repo *store.Repository) (any, error) {
		date, err := ops.ParseDate(input.Date, repo.CreatedAt())
		if err != nil {
			return nil, err
		}
		return ops.Stats(repo, ops.StatsInput{Date: date})
	})
}

// HandleSchedule handles the schedule_show tool call.
func (h *Handlers) HandleSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScheduleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.withRepo(ctx, false, func(repo *store.Repository) (any, error) {
		date, err := ops.ParseDate(input.Date, repo.CreatedAt())
		if err != nil {
			return nil, err
		}
		return ops.ShowSchedule(repo, ops.ScheduleInput{
			Format: input.Format,
			Date:   date,
		})
	})
}

// withRepo loads the repository, runs fn, and saves when mutate is set.
// Nothing is saved if fn fails.
func (h *Handlers) withRepo(ctx context.Context, mutate bool, fn func(*store.Repository) (any, error)) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	repo, err := h.backend.Load(ctx)
	if err != nil {
		return h.failure(err), nil
	}

	result, err := fn(repo)
	if err != nil {
		return h.failure(err), nil
	}

	if mutate {
		if err := h.backend.Save(ctx, repo); err != nil {
			return h.failure(err), nil
		}
	}

	return successResult(result)
}

// failure logs internal errors before converting them to a result.
func (h *Handlers) failure(err error) *mcp.CallToolResult {
	if !isClientError(err) {
		h.logger.Error("tool call failed", "error", err)
	}
	return errorResult(err)
}

func isClientError(err error) bool {
	var lErr *errors.LeitnerError
	return stderrors.As(err, &lErr) && lErr.Code != errors.ErrInternal
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var lErr *errors.LeitnerError
	if stderrors.As(err, &lErr) {
		// keep any wrapping context ahead of the message
		message := lErr.Message
		if err != error(lErr) {
			message = strings.TrimSuffix(err.Error(), lErr.Error()) + lErr.Message
		}
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": message,
			"status":  lErr.Status,
		}
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			errorObj["details"] = lErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
