package stderr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPump(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lines := make(chan string, 10)

	pump(strings.NewReader("ALSA lib pcm.c: underrun\n\n   \n  second line  \n"), zap.New(core), lines)

	var got []string
	for l := range lines {
		got = append(got, l)
	}
	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second line"}, got)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "ALSA lib pcm.c: underrun", entries[0].ContextMap()["line"])
	}
}

func TestPump_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lines := make(chan string, 1)

	pump(strings.NewReader("one\ntwo\nthree\n"), zap.New(core), lines)

	assert.Equal(t, "one", <-lines)
	_, open := <-lines
	assert.False(t, open)
	assert.Equal(t, 3, logs.Len(), "every line is logged even when dropped")
}
