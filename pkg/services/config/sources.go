package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	DefaultSourceDriver = "pgx"
	DefaultSourcesFile  = ".dealatlascfg"
)

// DefaultSourcesPath is $HOME/.dealatlascfg, or the bare file name when the home
// directory is unknown.
func DefaultSourcesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultSourcesFile
	}
	return filepath.Join(home, DefaultSourcesFile)
}

// Source is a named CRM connection read from the sources file.
type Source struct {
	Name   string
	Driver string
	DSN    string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSource(ctx context.Context, profile string) (Source, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads an ini file with one section per profile:
//
//	[crm]
//	driver = pgx
//	dsn    = postgres://reader@crm.internal:5432/sales
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetSource(_ context.Context, profile string) (Source, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return Source{}, fmt.Errorf("profile %s not found", profile)
	}

	dsn := section.Key("dsn").String()
	if dsn == "" {
		return Source{}, fmt.Errorf("profile %s has no dsn", profile)
	}

	return Source{
		Name:   profile,
		Driver: section.Key("driver").MustString(DefaultSourceDriver),
		DSN:    dsn,
	}, nil
}
