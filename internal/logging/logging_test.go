package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = New(&buf, true)
	logger.Debug("visible", Operation("delete"), ID("abc"))
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "operation=delete")
	assert.Contains(t, buf.String(), "id=abc")
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	logger := New(&buf, true)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Info("nil error", Err(nil))
	assert.NotContains(t, buf.String(), KeyError+"=")

	logger.Info("with error", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), "error=boom")
}
