// Package pipeline runs one extraction request end to end: document
// validation, the model call, response parsing, profile normalization and
// quality assessment, strictly in that order.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/document"
	"github.com/jonathan/profile-card/internal/jsontree"
	"github.com/jonathan/profile-card/internal/llm"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/parsing"
	"github.com/jonathan/profile-card/internal/profile"
	"github.com/jonathan/profile-card/internal/quality"
	"github.com/jonathan/profile-card/internal/schemas"
	"github.com/jonathan/profile-card/internal/types"
)

// Stage names reported through ProgressEvent.
const (
	StageValidate  = "validate_document"
	StageExtract   = "extract"
	StageParse     = "parse_response"
	StageNormalize = "normalize_profile"
	StageAssess    = "assess_quality"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures an Extractor.
type Options struct {
	Limits     config.Limits
	Logger     *logrus.Logger
	OnProgress ProgressCallback
}

// Extractor turns an uploaded PDF into a validated profile plus warnings.
// It holds no per-request state and is safe for concurrent use.
type Extractor struct {
	client     llm.Extractor
	validator  *document.Validator
	parser     *parsing.Parser
	normalizer *profile.Normalizer
	thresholds quality.Thresholds
	limits     config.Limits
	logger     *logrus.Logger
	onProgress ProgressCallback
}

// New creates an Extractor that calls client for the model step.
func New(client llm.Extractor, opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{
		client:     client,
		validator:  document.NewValidator(opts.Limits),
		parser:     parsing.NewParser(opts.Limits.ResponsePrefixChars),
		normalizer: profile.NewNormalizer(opts.Limits),
		thresholds: quality.ThresholdsFromLimits(opts.Limits),
		limits:     opts.Limits,
		logger:     logger,
		onProgress: opts.OnProgress,
	}
}

// Run executes every stage for upload and returns the first failure
// unchanged: *document.InvalidError, *llm.APICallError,
// *llm.EmptyResponseError, *parsing.ParseError or *profile.ValidationError.
func (e *Extractor) Run(ctx context.Context, upload *document.Upload) (*types.ExtractionResult, error) {
	ctx, reqID := logging.EnsureRequestID(ctx)
	log := e.logger.WithField("req_id", reqID)
	start := time.Now()

	e.emit(reqID, StageValidate, "validating upload")
	doc, err := e.validator.Validate(upload)
	if err != nil {
		var invalid *document.InvalidError
		if errors.As(err, &invalid) {
			log.WithField("code", invalid.Code).Info("extract.rejected")
		} else {
			log.WithError(err).Error("extract.read_failed")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"filename": doc.Filename,
		"bytes":    len(doc.Bytes),
		"model":    e.client.Model(),
	}).Info("extract.start")

	e.emit(reqID, StageExtract, "sending document to model")
	raw, err := e.client.Extract(ctx, doc.Bytes)
	if err != nil {
		log.WithError(err).Error("extract.upstream_failed")
		return nil, err
	}

	trimmed := strings.TrimSpace(raw)
	log.WithFields(logrus.Fields{
		"length": len(trimmed),
		"prefix": logging.Truncate(trimmed, e.limits.ResponsePrefixChars),
	}).Info("extract.response")

	e.emit(reqID, StageParse, "parsing model response")
	tree, err := e.parser.Parse(raw)
	if err != nil {
		fields := logrus.Fields{}
		var parseErr *parsing.ParseError
		if errors.As(err, &parseErr) {
			fields["raw_prefix"] = parseErr.RawPrefix
		}
		log.WithFields(fields).WithError(err).Error("extract.parse_failed")
		return nil, err
	}

	e.logDrift(log, tree)

	e.emit(reqID, StageNormalize, "validating extracted profile")
	p, err := e.normalizer.Normalize(tree)
	if err != nil {
		log.WithFields(logrus.Fields{
			"keys":    strings.Join(tree.Keys(), ","),
			"preview": e.preview(tree),
		}).WithError(err).Error("extract.validation_failed")
		return nil, err
	}

	e.emit(reqID, StageAssess, "assessing profile quality")
	warnings := quality.Assess(p, e.thresholds)

	log.WithFields(logrus.Fields{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"rating":     p.OverallRating,
		"warnings":   len(warnings),
	}).Info("extract.ok")

	return &types.ExtractionResult{Profile: p, Warnings: warnings}, nil
}

func (e *Extractor) logDrift(log *logrus.Entry, tree jsontree.Value) {
	drift, err := schemas.ProfileDrift(tree)
	if err != nil {
		log.WithError(err).Warn("extract.schema_unavailable")
		return
	}
	if len(drift) == 0 {
		return
	}

	parts := make([]string, 0, len(drift))
	for _, fe := range drift {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	log.WithFields(logrus.Fields{
		"count":  len(drift),
		"fields": strings.Join(parts, "; "),
	}).Warn("extract.schema_drift")
}

func (e *Extractor) preview(tree jsontree.Value) string {
	data, err := json.MarshalIndent(tree.Interface(), "", "  ")
	if err != nil {
		return ""
	}
	return logging.Truncate(string(data), e.limits.ValidationPreviewChars)
}

// emit calls the progress callback if configured
func (e *Extractor) emit(reqID, step, message string) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{Step: step, Message: message, RequestID: reqID})
	}
}
