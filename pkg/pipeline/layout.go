package pipeline

import (
	"context"

	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/observability"
)

// ComputeLayout validates opts and computes the page grid for count symbols.
// It is pure apart from hook and log output.
func (r *Runner) ComputeLayout(ctx context.Context, count int, opts Options) (grid.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return grid.Layout{}, err
	}
	l, err := grid.Compute(opts.LayoutParams(), count)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, count, 0, err)
		return grid.Layout{}, err
	}
	observability.Pipeline().OnLayoutComplete(ctx, count, l.TotalPages, nil)
	return l, nil
}
