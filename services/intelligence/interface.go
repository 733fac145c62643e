// File: services/intelligence/interface.go
package ai

import "context"

// ImageAnalyzer is the model backend used for photo diagnosis.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, format, prompt string) (string, error)
}

// DiagnosisCache remembers diagnoses for images already seen.
type DiagnosisCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, diagnosis string) error
}

// DiagnosisService turns an appliance photo into a short diagnosis. It never
// fails; problems degrade to a fixed fallback message.
type DiagnosisService interface {
	Diagnose(ctx context.Context, image []byte, mimeType string) string
}
