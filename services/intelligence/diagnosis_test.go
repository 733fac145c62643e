package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeImage(ctx context.Context, image []byte, format, prompt string) (string, error) {
	args := m.Called(ctx, image, format, prompt)
	return args.String(0), args.Error(1)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, diagnosis string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = diagnosis
	return nil
}

var photo = []byte{0xff, 0xd8, 0xff, 0xe0, 'f', 'r', 'i', 'd', 'g', 'e'}

func TestDiagnose_ReturnsModelAnswer(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("AnalyzeImage", mock.Anything, photo, "png", DiagnosisPrompt).
		Return("  Split AC. Likely clogged filter.  ", nil)

	svc := NewDiagnosisService(analyzer, nil, nil)
	got := svc.Diagnose(context.Background(), photo, "image/png")

	assert.Equal(t, "Split AC. Likely clogged filter.", got)
	analyzer.AssertExpectations(t)
}

func TestDiagnose_Fallbacks(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, FallbackUnavailable, NewDiagnosisService(nil, nil, nil).Diagnose(ctx, photo, "image/jpeg"))

	failing := new(mockAnalyzer)
	failing.On("AnalyzeImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))
	assert.Equal(t, FallbackUnavailable, NewDiagnosisService(failing, nil, nil).Diagnose(ctx, photo, "image/jpeg"))
	failing.AssertNumberOfCalls(t, "AnalyzeImage", 1)

	assert.Equal(t, FallbackUnavailable, NewDiagnosisService(failing, nil, nil).Diagnose(ctx, nil, "image/jpeg"))

	empty := new(mockAnalyzer)
	empty.On("AnalyzeImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("   ", nil)
	assert.Equal(t, FallbackEmpty, NewDiagnosisService(empty, nil, nil).Diagnose(ctx, photo, "image/jpeg"))
}

func TestDiagnose_CachesSuccessOnly(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()

	analyzer := new(mockAnalyzer)
	analyzer.On("AnalyzeImage", mock.Anything, photo, "jpeg", DiagnosisPrompt).Return("Front-load washer. Drain pump blocked.", nil).Once()

	svc := NewDiagnosisService(analyzer, cache, nil)
	first := svc.Diagnose(ctx, photo, "image/jpeg")
	second := svc.Diagnose(ctx, photo, "image/jpeg")

	assert.Equal(t, first, second)
	analyzer.AssertNumberOfCalls(t, "AnalyzeImage", 1)

	other := []byte("other photo")
	failing := new(mockAnalyzer)
	failing.On("AnalyzeImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	NewDiagnosisService(failing, cache, nil).Diagnose(ctx, other, "image/jpeg")
	_, ok, _ := cache.Get(ctx, ImageKey(other))
	assert.False(t, ok)
}

func TestDiagnose_IgnoresCacheErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	analyzer := new(mockAnalyzer)
	analyzer.On("AnalyzeImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("RO purifier. Replace sediment filter.", nil)

	svc := NewDiagnosisService(analyzer, NewRedisDiagnosisCache(client, time.Hour), nil)
	got := svc.Diagnose(context.Background(), photo, "image/webp")

	assert.Equal(t, "RO purifier. Replace sediment filter.", got)
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "png", imageFormat("image/png"))
	assert.Equal(t, "jpeg", imageFormat("IMAGE/JPEG; charset=binary"))
	assert.Equal(t, "jpeg", imageFormat(""))
	assert.Equal(t, "jpeg", imageFormat("application/octet-stream"))
}

func TestImageKey(t *testing.T) {
	assert.Len(t, ImageKey(photo), 64)
	assert.Equal(t, ImageKey(photo), ImageKey(append([]byte{}, photo...)))
	assert.NotEqual(t, ImageKey(photo), ImageKey([]byte("x")))
}
