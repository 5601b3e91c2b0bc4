// Package config holds the catalog service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/missil/internal/blob"
	"github.com/abgdnv/missil/pkg/config"
	"github.com/abgdnv/missil/pkg/config/configloader"
	"golang.org/x/text/language"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Catalog    CatalogConfig           `koanf:"catalog"`
	Storage    StorageConfig           `koanf:"storage"`
	Inquiry    InquiryConfig           `koanf:"inquiry"`
}

const (
	PriceFilterRange  = "range"
	PriceFilterBucket = "bucket"
)

// CatalogConfig selects the shop dataset and how the shop filters it.
type CatalogConfig struct {
	// File is a YAML catalog. Empty means the catalog compiled into the binary.
	File   string `koanf:"file"`
	Locale string `koanf:"locale"`
	// PriceFilter is either "range" (minPrice/maxPrice) or "bucket" (named price buckets).
	PriceFilter string `koanf:"pricefilter"`
	// PriceMin and PriceMax are the default range bounds. PriceMax 0 keeps the built-in range.
	PriceMin int64 `koanf:"pricemin"`
	PriceMax int64 `koanf:"pricemax"`
}

func (c *CatalogConfig) Validate() error {
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("catalog.locale %q is not a valid language tag: %w", c.Locale, err)
		}
	}
	switch c.PriceFilter {
	case "", PriceFilterRange, PriceFilterBucket:
	default:
		return fmt.Errorf("catalog.pricefilter must be %q or %q, got %q", PriceFilterRange, PriceFilterBucket, c.PriceFilter)
	}
	if c.PriceMin < 0 {
		return fmt.Errorf("catalog.pricemin must not be negative: %d", c.PriceMin)
	}
	if c.PriceMax != 0 && c.PriceMax < c.PriceMin {
		return fmt.Errorf("catalog.pricemax (%d) must not be lower than catalog.pricemin (%d)", c.PriceMax, c.PriceMin)
	}
	return nil
}

// LocaleTag returns the configured collation language, Polish when unset.
func (c *CatalogConfig) LocaleTag() language.Tag {
	if c.Locale == "" {
		return language.Polish
	}
	return language.MustParse(c.Locale)
}

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// StorageConfig selects the blob backend the CMS collection is mirrored into.
type StorageConfig struct {
	Driver         string                      `koanf:"driver"`
	Dir            string                      `koanf:"dir"`
	Key            string                      `koanf:"key"`
	Database       config.DatabaseConfig       `koanf:"database"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
}

func (c *StorageConfig) Validate() error {
	if c.Key != "" {
		if err := blob.ValidateKey(c.Key); err != nil {
			return fmt.Errorf("storage.key: %w", err)
		}
	}
	switch c.Driver {
	case "", StorageMemory:
		return nil
	case StorageFile:
		if c.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
		return nil
	case StoragePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
		return c.CircuitBreaker.Validate()
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Driver)
	}
}

type InquiryConfig struct {
	InboxSize int `koanf:"inboxsize"`
}

func (c *InquiryConfig) Validate() error {
	if c.InboxSize < 0 {
		return fmt.Errorf("inquiry.inboxsize must not be negative: %d", c.InboxSize)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  catalog.file: %s\n", orDefault(c.Catalog.File, "<embedded>")))
	b.WriteString(fmt.Sprintf("  catalog.locale: %s\n", c.Catalog.LocaleTag()))
	b.WriteString(fmt.Sprintf("  catalog.pricefilter: %s\n", orDefault(c.Catalog.PriceFilter, PriceFilterRange)))
	b.WriteString(fmt.Sprintf("  catalog.pricemin: %d\n", c.Catalog.PriceMin))
	b.WriteString(fmt.Sprintf("  catalog.pricemax: %d\n", c.Catalog.PriceMax))

	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  storage.driver: %s\n", orDefault(c.Storage.Driver, StorageMemory)))
	b.WriteString(fmt.Sprintf("  storage.key: %s\n", c.Storage.Key))
	switch c.Storage.Driver {
	case StorageFile:
		b.WriteString(fmt.Sprintf("  storage.dir: %s\n", c.Storage.Dir))
	case StoragePostgres:
		b.WriteString(c.Storage.Database.String())
		b.WriteString(c.Storage.CircuitBreaker.String())
	}

	b.WriteString("\n--- Inquiry ---\n")
	b.WriteString(fmt.Sprintf("  inquiry.inboxsize: %d\n", c.Inquiry.InboxSize))
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer, &c.Log, &c.PProf, &c.GRPC, &c.Shutdown,
		&c.Catalog, &c.Storage, &c.Inquiry,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
