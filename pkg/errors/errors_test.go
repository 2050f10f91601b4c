package errors_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	xe "github.com/flowkit/flowkit/pkg/errors"
)

type rootErr struct{}

func (rootErr) Error() string {
	return "error type for test"
}

func newTraced(message string) error {
	return xe.New(message)
}

func TestNew(t *testing.T) {
	t.Run("it knows the location where it is created", func(t *testing.T) {
		testee := newTraced("test error")
		errMessage := testee.Error()

		_, thisFile, _, _ := runtime.Caller(0)

		if !strings.Contains(errMessage, "newTraced") {
			t.Errorf("it does not know the function name: %s", errMessage)
		}
		if !strings.Contains(errMessage, thisFile) {
			t.Errorf("it does not know the file (%s): %s", thisFile, errMessage)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("it supports the errors protocol", func(t *testing.T) {
		cause := rootErr{}

		err := xe.Wrap(
			fmt.Errorf("%w", fmt.Errorf("%w", cause)),
		)

		if !errors.Is(err, cause) {
			t.Error("it does not support unwrapping")
		}

		var re rootErr
		if !errors.As(err, &re) {
			t.Error("it does not support errors.As")
		}
	})

	t.Run("it chains messages of nested wraps", func(t *testing.T) {
		err := xe.Wrap(xe.WrapWithNote("inner mark", rootErr{}))

		message := err.Error()
		if !strings.Contains(message, "inner mark") {
			t.Errorf("note is lost: %s", message)
		}
		if strings.Count(message, " <- ") < 2 {
			t.Errorf("wrap trail is broken: %s", message)
		}
	})
}
