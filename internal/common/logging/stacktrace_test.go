package logging

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wrappedError struct {
	err error
}

func (w *wrappedError) Error() string { return "wrapped: " + w.err.Error() }

func (w *wrappedError) Cause() error { return w.err }

func TestExtractStack(t *testing.T) {
	withStack := errors.New("boom")

	tests := map[string]struct {
		err       error
		wantStack bool
	}{
		"nil":                   {err: nil},
		"plain error":           {err: stderrors.New("boom")},
		"pkg/errors error":      {err: withStack, wantStack: true},
		"behind a causer":       {err: &wrappedError{err: withStack}, wantStack: true},
		"behind fmt wrapping":   {err: fmt.Errorf("context: %w", withStack), wantStack: true},
		"causer without stack":  {err: &wrappedError{err: stderrors.New("boom")}},
		"fmt wrapping no stack": {err: fmt.Errorf("context: %w", stderrors.New("boom"))},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stack := ExtractStack(tc.err)
			if tc.wantStack {
				assert.NotEmpty(t, stack)
			} else {
				assert.Nil(t, stack)
			}
		})
	}
}

func TestWithStacktrace(t *testing.T) {
	logger, hook := test.NewNullLogger()

	WithStacktrace(logger, errors.New("boom")).Error("failed")
	WithStacktrace(logger, stderrors.New("boom")).Error("failed")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Data, Stacktrace)
	assert.NotContains(t, entries[1].Data, Stacktrace)
	assert.EqualError(t, entries[1].Data["error"].(error), "boom")
}
