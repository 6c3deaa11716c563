// Package config loads the YAML configuration of the apidocs command.
//
// A configuration declares the documented API, the resource classes of a
// dispatch graph and its routes, and optional metadata:
//
//	api_version: "1.2.0"
//	base_path: https://api.example.com/v1
//	resources:
//	  - name: Bookmarks
//	    description: Bookmark collection
//	    methods:
//	      - method: GET
//	        output: "[]Bookmark"
//	      - method: POST
//	        input: Bookmark
//	        output: Bookmark
//	        status: 201
//	routes:
//	  - path: /bookmarks
//	    resource: Bookmarks
//	metadata:
//	  models:
//	    Bookmark:
//	      properties:
//	        uri: {type: string, required: true}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/apidocs/metadata"
)

// Defaults applied by Load.
const (
	DefaultListen     = ":8080"
	DefaultMountPath  = "/api-docs"
	DefaultAPIVersion = "1.0"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the apidocs configuration file.
type Config struct {
	APIVersion     string   `yaml:"api_version"`
	BasePath       string   `yaml:"base_path" validate:"omitempty,uri"`
	MountPath      string   `yaml:"mount_path" validate:"startswith=/"`
	Listen         string   `yaml:"listen" validate:"hostname_port"`
	Prefix         string   `yaml:"prefix"`
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	TermsOfService string   `yaml:"terms_of_service" validate:"omitempty,url"`
	Contact        *Contact `yaml:"contact"`
	License        *License `yaml:"license"`
	CORS           CORS     `yaml:"cors"`

	Resources []Resource `yaml:"resources" validate:"dive"`
	Routes    []Route    `yaml:"routes" validate:"dive"`

	// Metadata is inline documentation. MetadataFiles are loaded relative
	// to the configuration file and merged over it in order.
	Metadata      *metadata.Document `yaml:"metadata" validate:"-"`
	MetadataFiles []string           `yaml:"metadata_files"`
}

type Contact struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url" validate:"omitempty,url"`
	Email string `yaml:"email" validate:"omitempty,email"`
}

type License struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"omitempty,url"`
}

// CORS mirrors docs.CORSConfig.
type CORS struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposeHeaders    []string `yaml:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" validate:"gte=0"`
}

// Resource declares a resource class.
type Resource struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Methods     []Method `yaml:"methods" validate:"required,min=1,dive"`
}

// Method declares one method of a resource class. Input and Output name a
// primitive type or a representation; a "[]" prefix makes it an array.
type Method struct {
	Method string `yaml:"method" validate:"required"`
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Status int    `yaml:"status" validate:"omitempty,min=100,max=599"`
}

// Route declares one node of the dispatch graph. A route with a resource
// is a leaf; a route with ref links the route whose id it names, which
// must be declared earlier; any other route is a composite holding its
// children. A filter is a composite that contributes no path.
type Route struct {
	ID       string  `yaml:"id"`
	Path     string  `yaml:"path"`
	Resource string  `yaml:"resource"`
	Ref      string  `yaml:"ref"`
	Filter   bool    `yaml:"filter"`
	Children []Route `yaml:"children" validate:"dive"`
}

// Parse decodes data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration at path together with its metadata files.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, file := range cfg.MetadataFiles {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}

		doc, err := metadata.LoadFile(file)
		if err != nil {
			return nil, err
		}

		if cfg.Metadata == nil {
			cfg.Metadata = &metadata.Document{}
		}
		cfg.Metadata.Merge(doc)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.MountPath == "" {
		c.MountPath = DefaultMountPath
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}
