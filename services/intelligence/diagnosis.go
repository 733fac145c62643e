// File: services/intelligence/diagnosis.go
package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	DiagnosisPrompt = "You are an expert appliance technician. Identify this appliance and diagnose the potential issue based on the visual evidence. If no specific issue is visible, list common problems for this appliance type. Keep it brief (under 50 words) and helpful for a quote estimation."

	FallbackUnavailable = "AI Diagnosis unavailable. Please describe the issue."
	FallbackEmpty       = "Could not analyze image. Please provide details manually."
)

type DefaultDiagnosisService struct {
	analyzer ImageAnalyzer
	cache    DiagnosisCache
	logger   *zap.Logger
}

// NewDiagnosisService builds the service. analyzer may be nil when no API key
// is configured; cache may be nil to disable caching.
func NewDiagnosisService(analyzer ImageAnalyzer, cache DiagnosisCache, logger *zap.Logger) *DefaultDiagnosisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDiagnosisService{analyzer: analyzer, cache: cache, logger: logger}
}

func (s *DefaultDiagnosisService) Diagnose(ctx context.Context, image []byte, mimeType string) string {
	if s.analyzer == nil {
		s.logger.Warn("Diagnosis requested but no analyzer is configured")
		return FallbackUnavailable
	}
	if len(image) == 0 {
		s.logger.Warn("Diagnosis requested with an empty image")
		return FallbackUnavailable
	}

	key := ImageKey(image)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Diagnosis cache read failed", zap.Error(err))
		} else if ok {
			s.logger.Debug("Diagnosis cache hit", zap.String("key", key))
			return cached
		}
	}

	text, err := s.analyzer.AnalyzeImage(ctx, image, imageFormat(mimeType), DiagnosisPrompt)
	if err != nil {
		s.logger.Error("Diagnosis failed", zap.Error(err))
		return FallbackUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text); err != nil {
			s.logger.Warn("Diagnosis cache write failed", zap.Error(err))
		}
	}
	return text
}

// imageFormat reduces a MIME type such as "image/png" to its subtype.
func imageFormat(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || strings.Contains(format, "/") {
		return "jpeg"
	}
	return format
}
