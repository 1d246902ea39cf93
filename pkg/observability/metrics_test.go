package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/pkg/observability"
	"github.com/aretw0/argot/pkg/schema"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng, err := argot.New(argot.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)

	usage := schema.Usage{
		{Type: schema.Types("string")},
		{Type: schema.Types("number"), Optional: true},
	}
	ctx := context.Background()

	_, err = eng.Parse(ctx, []any{"a", "1"}, usage)
	require.NoError(t, err)
	_, err = eng.Parse(ctx, []any{"a"}, usage)
	require.NoError(t, err)
	_, err = eng.Parse(ctx, []any{1}, usage)
	require.Error(t, err)

	expected := `
# HELP argot_parse_total Total number of parse calls by outcome
# TYPE argot_parse_total counter
argot_parse_total{outcome="failure"} 1
argot_parse_total{outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "argot_parse_total"))

	expected = `
# HELP argot_parse_errors_total Total number of failed parse calls by error kind
# TYPE argot_parse_errors_total counter
argot_parse_errors_total{kind="token_validation"} 1
# HELP argot_slots_resolved_total Total number of slots resolved by winning type
# TYPE argot_slots_resolved_total counter
argot_slots_resolved_total{type="number"} 1
argot_slots_resolved_total{type="string"} 2
`
	// The skipped optional slot is not counted
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"argot_parse_errors_total", "argot_slots_resolved_total"))

	n, err := testutil.GatherAndCount(reg, "argot_parse_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng, err := argot.New(argot.WithLifecycleHooks(observability.LogHooks(logger)))
	require.NoError(t, err)

	_, err = eng.Parse(context.Background(), []any{"x"}, schema.Usage{{Type: schema.Types("number")}})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "parse started")
	assert.Contains(t, out, "parse failed")
	assert.Contains(t, out, "kind=token_validation")
}
