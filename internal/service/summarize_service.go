package service

import (
	"careerai/internal/llm"
	"careerai/internal/metrics"
	"careerai/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// UpstreamError is returned when the model call fails, returns non-success or times out
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the model reply is not a JSON object
type MalformedResponseError struct {
	Reply string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SummarizeService turns a formatted questionnaire into an IkigaiResult
type SummarizeService struct {
	model   llm.Model
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSummarizeService creates a new summarize service. A zero timeout disables the deadline.
func NewSummarizeService(m llm.Model, timeout time.Duration, mt *metrics.Metrics, logger *zap.Logger) *SummarizeService {
	return &SummarizeService{
		model:   m,
		timeout: timeout,
		metrics: mt,
		logger:  logger,
	}
}

// Timeout returns the upstream deadline
func (s *SummarizeService) Timeout() time.Duration {
	return s.timeout
}

// Summarize sends the request upstream and parses the single reply.
// Absent fields in the reply stay empty; only unparseable replies fail.
func (s *SummarizeService) Summarize(ctx context.Context, req model.SummarizationRequest) (*model.IkigaiResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal summarization request: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	provider := s.model.Name()
	start := time.Now()
	reply, err := s.model.Complete(ctx, systemPrompt(), string(body))
	took := time.Since(start)
	if err != nil {
		s.metrics.ObserveSummarize(provider, metrics.OutcomeUpstream, took)
		s.logger.Warn("summarization upstream failed",
			zap.String("provider", provider), zap.Duration("took", took), zap.Error(err))
		return nil, &UpstreamError{Provider: provider, Err: err}
	}

	result, err := parseReply(reply)
	if err != nil {
		s.metrics.ObserveSummarize(provider, metrics.OutcomeMalformed, took)
		s.logger.Warn("summarization reply malformed",
			zap.String("provider", provider), zap.String("reply", truncate(reply, 512)), zap.Error(err))
		return nil, &MalformedResponseError{Reply: reply, Err: err}
	}

	s.metrics.ObserveSummarize(provider, metrics.OutcomeOK, took)
	s.logger.Debug("summarization complete", zap.String("provider", provider), zap.Duration("took", took))
	return result, nil
}

// parseReply extracts the five known fields. Fields of the wrong type are treated as absent.
func parseReply(reply string) (*model.IkigaiResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("reply is null, expected an object")
	}

	result := &model.IkigaiResult{}
	decodeField(fields, "summary", &result.Summary)
	decodeField(fields, "sentiment", &result.Sentiment)
	decodeField(fields, "themes", &result.Themes)
	decodeField(fields, "suggested_roles", &result.Suggestions)
	decodeField(fields, "suggested_paths", &result.Paths)
	return result, nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// cleanJSON removes a surrounding Markdown code fence
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// truncate keeps at most n bytes of s without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
