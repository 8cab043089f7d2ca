package script

import (
	"context"
	"strconv"

	"github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/mount"
)

// StepResult is the outcome of rendering one step.
type StepResult struct {
	Name       string          `json:"name"`
	HTML       string          `json:"html"`
	Mutations  mount.Mutations `json:"mutations"`
	Generation uint64          `json:"generation"`
}

// StepName returns the step's name, or "step N" (1-based) when unnamed.
func (s *Script) StepName(i int) string {
	if s.Steps[i].Name != "" {
		return s.Steps[i].Name
	}
	return "step " + strconv.Itoa(i+1)
}

// Run renders every step into m in order. It stops at the first failing step
// and returns the results collected so far together with the error.
func (s *Script) Run(ctx context.Context, m *mount.Mount) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	for i := range s.Steps {
		name := s.StepName(i)
		res, err := m.Render(ctx, s.Steps[i].Build())
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			return results, errors.New("E100").WithMessagef("step %q", name).Wrap(err)
		}
		results = append(results, StepResult{
			Name:       name,
			HTML:       m.HTML(),
			Mutations:  res.Mutations,
			Generation: res.Generation,
		})
	}
	return results, nil
}
