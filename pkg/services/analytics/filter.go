package analytics

import (
	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

type dealPredicate func(domain.Deal) (bool, error)

// filterDeals applies every supplied predicate of f in order and returns a new slice.
func filterDeals(deals []domain.Deal, f domain.DealFilter) ([]domain.Deal, error) {
	predicates, err := buildPredicates(f)
	if err != nil {
		return nil, err
	}
	return applyPredicates(deals, predicates...)
}

func buildPredicates(f domain.DealFilter) ([]dealPredicate, error) {
	var predicates []dealPredicate

	if f.TransportationMode != "" {
		predicates = append(predicates, func(d domain.Deal) (bool, error) {
			return d.TransportationMode == f.TransportationMode, nil
		})
	}

	if f.SalesRep != "" {
		predicates = append(predicates, func(d domain.Deal) (bool, error) {
			return d.SalesRep == f.SalesRep, nil
		})
	}

	if f.DealSizeCategory != "" {
		// unknown categories impose no constraint
		if category, ok := domain.ParseSizeCategory(f.DealSizeCategory); ok {
			predicates = append(predicates, func(d domain.Deal) (bool, error) {
				return category.Contains(d.Value), nil
			})
		}
	}

	if f.StartDate != "" {
		start, err := domain.ParseDate("startDate", f.StartDate)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, func(d domain.Deal) (bool, error) {
			closeDate, err := domain.ParseDate("expected_close_date", d.ExpectedCloseDate)
			if err != nil {
				return false, err
			}
			return !closeDate.Before(start), nil
		})
	}

	if f.EndDate != "" {
		end, err := domain.ParseDate("endDate", f.EndDate)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, func(d domain.Deal) (bool, error) {
			closeDate, err := domain.ParseDate("expected_close_date", d.ExpectedCloseDate)
			if err != nil {
				return false, err
			}
			return !closeDate.After(end), nil
		})
	}

	return predicates, nil
}

func applyPredicates(deals []domain.Deal, predicates ...dealPredicate) ([]domain.Deal, error) {
	out := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		keep := true
		for _, p := range predicates {
			ok, err := p(d)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, d)
		}
	}
	return out, nil
}

func stageIs(stage domain.Stage) dealPredicate {
	return func(d domain.Deal) (bool, error) {
		return d.Stage == stage, nil
	}
}

func closedOnly(d domain.Deal) (bool, error) {
	return d.Stage.Closed(), nil
}

func openOnly(d domain.Deal) (bool, error) {
	return !d.Stage.Closed(), nil
}
