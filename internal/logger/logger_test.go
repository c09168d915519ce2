package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("component", "warehouse").Msg("client ready")

	out := buf.String()
	if !strings.Contains(out, `"message":"client ready"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"component":"warehouse"`) {
		t.Errorf("output missing field: %s", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("output missing level: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("through context")
	if !strings.Contains(buf.String(), "through context") {
		t.Errorf("context logger did not write to the original writer: %s", buf.String())
	}
}

func TestFromContext_MissingLogger(t *testing.T) {
	// Must not panic and must return a usable logger.
	log := FromContext(context.Background())
	log.Debug().Msg("fallback logger")
}
