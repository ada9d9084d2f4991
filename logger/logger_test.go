package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zap.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, ParseLevel("verbose"))
}

func TestSet_RoutesPackageFunctions(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Info("dropped")
	Warn("cache unavailable", zap.String("backend", "redis"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "cache unavailable", entries[0].Message)
		assert.Equal(t, "redis", entries[0].ContextMap()["backend"])
	}
}
