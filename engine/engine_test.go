package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/registry"
)

// upperOp is a trivial reversible operation used by tests below: it
// uppercases a UTF-8 string, which is enough to let the engine walk one
// extra depth and exercise fingerprinting/cycle detection.
type upperOp struct{}

func upperInvoke(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s, ok := input.TryUTF8()
	if !ok {
		return nil, errors.New("not utf8")
	}
	out := make([]byte, 0, len(s))
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, byte(c))
	}
	return buffer.New(out), nil
}

func alwaysFailInvoke(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	return nil, errors.New("boom")
}

func newTestRegistry() registry.Registry {
	return registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "Uppercase", InputType: registry.Utf8String, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: true,
			},
			Invoke: upperInvoke,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "AlwaysFails", InputType: registry.Utf8String, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: true,
			},
			Invoke: alwaysFailInvoke,
		},
	)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	e := New(newTestRegistry())
	report, err := e.Analyze(context.Background(), nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.False(t, report.Truncated)
	assert.False(t, report.Cancelled)
}

func TestAnalyzeNegativeDepthIsConfigError(t *testing.T) {
	e := New(newTestRegistry())
	_, err := e.Analyze(context.Background(), []byte("hello"), Config{Depth: -1})
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "depth", cfgErr.Field)
}

func TestAnalyzeInvalidCribRegexIsConfigError(t *testing.T) {
	e := New(newTestRegistry())
	_, err := e.Analyze(context.Background(), []byte("hello"), Config{Depth: 1, CribRegex: "(unclosed"})
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "crib_regex", cfgErr.Field)
}

func TestAnalyzeCancellation(t *testing.T) {
	e := New(newTestRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := e.Analyze(ctx, []byte("the quick brown fox jumps over the lazy dog"), Config{Depth: 3})
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
}

func TestAnalyzeFailingOperationIsDiscarded(t *testing.T) {
	e := New(newTestRegistry())
	report, err := e.Analyze(context.Background(), []byte("the quick brown fox"), Config{Depth: 1, Intensive: true})
	require.NoError(t, err)
	for _, res := range report.Results {
		for _, step := range res.Recipe {
			assert.NotEqual(t, "AlwaysFails", step.OpName)
		}
	}
}

func TestAnalyzeMaxNodesTruncates(t *testing.T) {
	e := New(newTestRegistry())
	cfg := Config{Depth: 3, Intensive: true, MaxNodes: 1, KeepTopK: 10}
	report, err := e.Analyze(context.Background(), []byte("the quick brown fox"), cfg)
	require.NoError(t, err)
	assert.True(t, report.Truncated)
}

func TestAnalyzeTargetMatchWins(t *testing.T) {
	e := New(newTestRegistry())
	cfg := Config{Depth: 1, CribRegex: `FLAG\{[A-Z]+\}`}
	report, err := e.Analyze(context.Background(), []byte("noise before FLAG{SECRET} noise after"), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, report.Results)
	assert.True(t, report.Results[0].Interesting)
	assert.True(t, report.Results[0].Score.MatchesTarget)
}

func TestAnalyzeNoInterestingFallsBackToBest(t *testing.T) {
	e := New(newTestRegistry())
	cfg := Config{Depth: 0}
	report, err := e.Analyze(context.Background(), []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe}, cfg)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Interesting)
}
