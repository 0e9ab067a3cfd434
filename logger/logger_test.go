package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/code19m/errx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/foodcatalog/meta"
)

func observed() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger{zap.New(core).Sugar()}, logs
}

func TestErrorx_ExpandsFields(t *testing.T) {
	log, logs := observed()

	log.Errorx(errx.New("db is down",
		errx.WithCode("STORE_ERROR"),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"table": "foods"}),
	))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	ctx := entry.ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "STORE_ERROR", ctx["error_code"])
	assert.Equal(t, errx.T_Internal.String(), ctx["error_type"])
	assert.Contains(t, ctx["error_details"], "table")
}

func TestWarnx_PlainError(t *testing.T) {
	log, logs := observed()

	log.Warnx(assert.AnError)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.NotContains(t, logs.All()[0].ContextMap(), "error_code")
}

func TestWithContext_AddsMeta(t *testing.T) {
	log, logs := observed()

	ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
		meta.TraceID:   "trace-1",
		meta.Operation: "GET /api/foods",
	})
	log.WithContext(ctx).Named("food.api").Info("listed")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "trace-1", entry.ContextMap()["trace_id"])
	assert.Equal(t, "GET /api/foods", entry.ContextMap()["operation"])
	assert.Equal(t, "food.api", entry.LoggerName)
}

func TestNew(t *testing.T) {
	for _, enc := range []string{encJSON, encPretty} {
		l, err := New(Config{Level: "info", Encoding: enc})
		require.NoError(t, err)
		assert.NotNil(t, l)
	}

	_, err := New(Config{Level: "loud", Encoding: encJSON})
	require.Error(t, err)

	l, err := New(Config{Disable: true})
	require.NoError(t, err)
	l.Info("dropped")
}

func TestPrettyEncoder(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	enc := newPrettyEncoder(zapcore.EncoderConfig{
		MessageKey:  messageKey,
		LevelKey:    levelKey,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	})

	buf, err := enc.EncodeEntry(
		zapcore.Entry{Level: zapcore.WarnLevel, Message: "slow query"},
		[]zapcore.Field{zap.Int("duration_ms", 250)},
	)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "slow query")
	assert.Contains(t, lines[0], "\x1b[")
	assert.Contains(t, out, `"duration_ms": 250`)

	buf, err = enc.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Message: "ok"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
