package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := (&Logger{Logger: zap.New(core)}).With(StringField("workspace", "forex"))

	l.Error("close failed", ErrorField(errors.New("boom")), Int64Field("trade_id", 7))

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "forex", ctx["workspace"])
	assert.Equal(t, int64(7), ctx["trade_id"])
	assert.Equal(t, "boom", ctx["error"])
}
