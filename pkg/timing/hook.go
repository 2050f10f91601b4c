package timing

import (
	"context"
	"log"

	"github.com/flowkit/flowkit/pkg/utils/function"
)

// Hook decorates a function (via pkg/utils/function) so that every call
// runs under its own timing scope.
//
// When Timeline is nil, the timeline bound to the call's context is used.
type Hook[T any, R any] struct {
	Name     string
	Timeline *Timeline
	Logger   *log.Logger
}

var _ function.Hook[struct{}, struct{}] = Hook[struct{}, struct{}]{}

func (h Hook[T, R]) Execute(ctx context.Context, next function.Func[T, R], in T) (R, error) {
	tl := h.Timeline
	if tl == nil {
		tl = From(ctx)
	}
	w := Start(h.Name, tl, h.Logger)
	defer w.Stop()
	return next(ctx, in)
}

func (h Hook[T, R]) ExtraConfig() map[string]string {
	return nil
}
