package satsolve

import (
	"context"
	"fmt"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// Solve runs the SAT encoding for p through ext and decodes the first
// model into a built Aedificium. It implements the common solver contract
// shared with pkg/anneal and pkg/fingerprint (see pkg/orchestrator),
// returning ErrUnsat unchanged when the external solver proves no layout
// is consistent with the observations.
func Solve(ctx context.Context, ext *ExternalSolver, p Problem) (*aedificium.Aedificium, error) {
	enc, err := Encode(p)
	if err != nil {
		return nil, fmt.Errorf("satsolve: %w", err)
	}
	a, err := ext.Solve(ctx, enc.Builder)
	if err != nil {
		return nil, err
	}
	layout := Decode(enc, p, a)
	built, err := layout.Build(p.N())
	if err != nil {
		return nil, fmt.Errorf("satsolve: decoded layout failed validation: %w", err)
	}
	return built, nil
}
