package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn)

	log.Debugf("hidden %d", 1)
	log.Infof("hidden %d", 2)
	log.Warnf("shown %d", 3)
	log.Errorf("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3\n")
	assert.Contains(t, out, "[ERROR] shown 4\n")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelError)

	log.Infof("dropped")
	log.SetLevel(LevelDebug)
	log.Debugf("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "[DEBUG] kept\n")
}

func TestDiscard(t *testing.T) {
	// Should not panic and should emit nothing anywhere visible.
	log := Discard()
	log.Errorf("nothing")
}

func TestLogger_IndependentInstances(t *testing.T) {
	var a, b bytes.Buffer
	la := New(&a, LevelDebug)
	lb := New(&b, LevelError)

	la.Debugf("only a")
	lb.Errorf("only b")

	assert.Contains(t, a.String(), "only a")
	assert.NotContains(t, a.String(), "only b")
	assert.Contains(t, b.String(), "only b")
	assert.NotContains(t, b.String(), "only a")
}
