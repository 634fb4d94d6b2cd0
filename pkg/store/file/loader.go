package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/models/store"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported deal file extension: %q", filepath.Ext(path))
	}
}

// record is the on-disk deal shape, keyed like the deals table.
type record struct {
	ID                 int64   `json:"id" yaml:"id"`
	DealID             string  `json:"deal_id" yaml:"deal_id"`
	CompanyName        string  `json:"company_name" yaml:"company_name"`
	ContactName        string  `json:"contact_name" yaml:"contact_name"`
	TransportationMode string  `json:"transportation_mode" yaml:"transportation_mode"`
	Stage              string  `json:"stage" yaml:"stage"`
	Value              float64 `json:"value" yaml:"value"`
	Probability        float64 `json:"probability" yaml:"probability"`
	CreatedDate        string  `json:"created_date" yaml:"created_date"`
	UpdatedDate        string  `json:"updated_date" yaml:"updated_date"`
	ExpectedCloseDate  string  `json:"expected_close_date" yaml:"expected_close_date"`
	SalesRep           string  `json:"sales_rep" yaml:"sales_rep"`
	OriginCity         string  `json:"origin_city" yaml:"origin_city"`
	DestinationCity    string  `json:"destination_city" yaml:"destination_city"`
	CargoType          string  `json:"cargo_type" yaml:"cargo_type"`
}

func (r record) toDomain() domain.Deal {
	return domain.Deal{
		ID:                 r.ID,
		DealID:             r.DealID,
		CompanyName:        r.CompanyName,
		ContactName:        r.ContactName,
		TransportationMode: r.TransportationMode,
		Stage:              domain.Stage(r.Stage),
		Value:              r.Value,
		Probability:        r.Probability,
		CreatedDate:        r.CreatedDate,
		UpdatedDate:        r.UpdatedDate,
		ExpectedCloseDate:  r.ExpectedCloseDate,
		SalesRep:           r.SalesRep,
		OriginCity:         r.OriginCity,
		DestinationCity:    r.DestinationCity,
		CargoType:          r.CargoType,
	}
}

// Decode reads a list of deals. Dates are kept as written and validated by the caller.
func Decode(r io.Reader, format Format) ([]domain.Deal, error) {
	var records []record

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json deals: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml deals: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported deal file format: %q", format)
	}

	deals := make([]domain.Deal, 0, len(records))
	for _, rec := range records {
		deals = append(deals, rec.toDomain())
	}
	return deals, nil
}

func DecodeBytes(data []byte, format Format) ([]domain.Deal, error) {
	return Decode(bytes.NewReader(data), format)
}

func Load(path string) ([]domain.Deal, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deal file: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Store serves a deal file as a read-only deal store.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) List(_ context.Context) ([]store.Deal, error) {
	deals, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	return adapters.MapDomainDealsToStore(deals)
}
