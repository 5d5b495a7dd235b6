package aedificium

import "fmt"

// CheckInvariants re-verifies, independently of Build, the structural
// properties that matter for a physically consistent layout: step is an
// involution, every door is a key, and (for duplicated graphs) labels
// repeat with period k. It returns every violation found rather than
// stopping at the first one, which is more useful for debugging a
// candidate than Build's fail-fast checks.
func (a *Aedificium) CheckInvariants(k int) []error {
	var errs []error
	n := a.N()

	for r := 0; r < n; r++ {
		for p := 0; p < Doors; p++ {
			d := Door{Room: r, Port: p}
			back := a.Step(a.Step(d))
			if back != d {
				errs = append(errs, fmt.Errorf("step is not an involution at %s", d))
			}
		}
	}

	if k > 0 && k != n {
		for r := 0; r < n; r++ {
			if a.Label(r) != a.Label(r%k) {
				errs = append(errs, fmt.Errorf("label coherence violated: label(%d)=%d != label(%d)=%d",
					r, a.Label(r), r%k, a.Label(r%k)))
			}
		}
	}

	return errs
}
