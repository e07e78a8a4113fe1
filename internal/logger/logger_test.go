package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	log, err := New(&Config{Level: "debug", Encoding: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)

	// Chained helpers return usable loggers.
	log.WithComponent("test").
		WithSource("lemonde").
		WithError(errors.New("boom")).
		WithDuration(time.Second).
		Info("hello", "key", "value")
}

func TestNew_EmptyConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	log, err := New(&Config{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestGetLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("unknown"))
}

func TestToZapFields(t *testing.T) {
	t.Parallel()

	fields := toZapFields([]any{"source", "lemonde", "count", 3})
	assert.Equal(t, []zap.Field{zap.String("source", "lemonde"), zap.Int("count", 3)}, fields)
}

func TestToZapFields_Irregular(t *testing.T) {
	t.Parallel()

	assert.Nil(t, toZapFields(nil))

	// A trailing key without a value is kept, not dropped.
	fields := toZapFields([]any{"orphan"})
	require.Len(t, fields, 1)
	assert.Equal(t, zap.String("missing_value", "orphan"), fields[0])

	// Ready-made zap fields pass through.
	fields = toZapFields([]any{zap.Bool("ready", true)})
	assert.Equal(t, []zap.Field{zap.Bool("ready", true)}, fields)

	// A non-string key is flagged rather than panicking.
	fields = toZapFields([]any{42, "value"})
	require.Len(t, fields, 2)
	assert.Equal(t, "invalid_key", fields[0].Key)
}
