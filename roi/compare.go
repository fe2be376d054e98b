package roi

import (
	"fmt"
	"sort"
)

// Plan is a named input set, e.g. one degree option a family is weighing.
type Plan struct {
	Name        string
	Description string
	Inputs      Inputs
}

// Ranked is a projected plan with its position in a comparison (1 = best).
type Ranked struct {
	Rank       int
	Plan       Plan
	Projection Projection
}

// Compare projects every plan and orders them by ROI, highest first.
// Ties fall back to the earlier break-even year, then to the plan name.
// Plans whose ROI is undefined sort after all plans with a defined ROI.
func Compare(plans []Plan) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(plans))
	for _, p := range plans {
		proj, err := Project(p.Inputs)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", p.Name, err)
		}
		ranked = append(ranked, Ranked{Plan: p, Projection: proj})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Projection.Result, ranked[j].Projection.Result
		if a.ROIDefined() != b.ROIDefined() {
			return a.ROIDefined()
		}
		if a.ROIDefined() {
			if c := a.ROIPercentage.Cmp(*b.ROIPercentage); c != 0 {
				return c > 0
			}
		}
		if ab, bb := breakEvenKey(a), breakEvenKey(b); ab != bb {
			return ab < bb
		}
		return ranked[i].Plan.Name < ranked[j].Plan.Name
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// breakEvenKey sorts plans that never break even after those that do.
func breakEvenKey(r Result) int {
	if !r.BreakEvenReached() {
		return MaxCareerLength + 1
	}
	return r.BreakEvenYear
}
