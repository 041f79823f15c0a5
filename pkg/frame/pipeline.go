package frame

import (
	"context"
	"fmt"
	"log/slog"
)

// Transform is a mutation or filter applied to a Frame. Implementations
// return a new frame and leave their input untouched.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline(steps ...Transform) *Pipeline { return &Pipeline{steps: steps} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		slog.DebugContext(ctx, "pipeline step",
			"step", t.Name(),
			"rows_in", cur.Rows(), "cols_in", cur.Cols(),
			"rows_out", out.Rows(), "cols_out", out.Cols())
		cur = out
	}
	return cur, nil
}
