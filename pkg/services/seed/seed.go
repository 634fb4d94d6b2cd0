package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/store/file"
	"github.com/rs/zerolog"
)

//go:embed deals.yaml
var sampleDeals []byte

// Deals returns the sample book: closed 2024 deals followed by an open 2025 pipeline.
func Deals() ([]domain.Deal, error) {
	return file.DecodeBytes(sampleDeals, file.FormatYAML)
}

type Replacer interface {
	Replace(ctx context.Context, deals []store.Deal) error
}

type Service struct {
	store Replacer
}

func NewService(store Replacer) *Service {
	return &Service{store: store}
}

// Seed swaps the store contents for the sample book and returns the number of deals written.
func (s *Service) Seed(ctx context.Context) (int, error) {
	deals, err := Deals()
	if err != nil {
		return 0, fmt.Errorf("load sample deals: %w", err)
	}

	records, err := adapters.MapDomainDealsToStore(deals)
	if err != nil {
		return 0, fmt.Errorf("map sample deals: %w", err)
	}

	if err := s.store.Replace(ctx, records); err != nil {
		return 0, fmt.Errorf("replace deals: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("count", len(records)).Msg("seeded sample deals")
	return len(records), nil
}
