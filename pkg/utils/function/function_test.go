package function_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flowkit/flowkit/pkg/cmp"
	"github.com/flowkit/flowkit/pkg/utils/function"
)

type countingHook struct {
	calls int
	extra map[string]string
}

func (h *countingHook) Execute(
	ctx context.Context, next function.Func[int, int], in int,
) (int, error) {
	h.calls += 1
	return next(ctx, in)
}

func (h *countingHook) ExtraConfig() map[string]string {
	return h.extra
}

func double(_ context.Context, in int) (int, error) {
	return in * 2, nil
}

func TestWrap(t *testing.T) {
	t.Run("it runs the hook in place of the wrapped function", func(t *testing.T) {
		hook := &countingHook{}
		testee := function.Wrap(double, hook)

		ret, err := testee.Call(context.Background(), 21)
		if err != nil {
			t.Fatal(err)
		}
		if ret != 42 {
			t.Errorf("wrong result: (actual, expected) = (%d, %d)", ret, 42)
		}
		if hook.calls != 1 {
			t.Errorf("hook should run once per call: %d", hook.calls)
		}
	})

	t.Run("errors from the wrapped function propagate unchanged", func(t *testing.T) {
		expected := errors.New("expected failure")
		failing := func(context.Context, int) (int, error) { return 0, expected }

		testee := function.Wrap(failing, &countingHook{})

		if _, err := testee.Call(context.Background(), 0); !errors.Is(err, expected) {
			t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, expected)
		}
	})

	t.Run("it exposes the hook's extra config", func(t *testing.T) {
		extra := map[string]string{
			function.LinkTypeKey: "vscode",
			function.PortKey:     "8080",
		}
		testee := function.Wrap(double, &countingHook{extra: extra})

		if !cmp.MapEq(testee.ExtraConfig(), extra) {
			t.Errorf("wrong extra config: %v", testee.ExtraConfig())
		}
	})
}

func TestConfigured(t *testing.T) {
	t.Run("it captures the hook first and wraps later", func(t *testing.T) {
		hook := &countingHook{}
		decorate := function.Configured[int, int](hook)

		a := decorate(double)
		b := decorate(func(_ context.Context, in int) (int, error) { return in + 1, nil })

		if ret, _ := a.Call(context.Background(), 2); ret != 4 {
			t.Errorf("wrong result from a: %d", ret)
		}
		if ret, _ := b.Call(context.Background(), 2); ret != 3 {
			t.Errorf("wrong result from b: %d", ret)
		}
		if hook.calls != 2 {
			t.Errorf("hook should observe both calls: %d", hook.calls)
		}
	})
}
