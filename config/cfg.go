package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"jtx/justext"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ClassifierConfig carries classification thresholds. Zero stopword
	// densities are meaningful (language-independent mode), defaults come
	// from the embedded configuration template.
	ClassifierConfig struct {
		LengthLow          int     `yaml:"length_low" validate:"min=0"`
		LengthHigh         int     `yaml:"length_high" validate:"min=0,gtefield=LengthLow"`
		StopwordsLow       float64 `yaml:"stopwords_low" validate:"gte=0.0,lte=1.0"`
		StopwordsHigh      float64 `yaml:"stopwords_high" validate:"gte=0.0,lte=1.0"`
		MaxLinkDensity     float64 `yaml:"max_link_density" validate:"gte=0.0,lte=1.0"`
		MaxHeadingDistance int     `yaml:"max_heading_distance" validate:"min=0"`
		NoHeadings         bool    `yaml:"no_headings"`
	}

	DocumentConfig struct {
		Language              string           `yaml:"language" validate:"required"`
		StoplistPath          string           `yaml:"stoplist_path,omitempty" sanitize:"assure_file_access"`
		OutputNameTemplate    string           `yaml:"output_name_template"`
		FileNameTransliterate bool             `yaml:"file_name_transliterate"`
		Classifier            ClassifierConfig `yaml:"classifier"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

type TemplateFieldName string

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// Options converts the yaml block into classifier options.
func (c *ClassifierConfig) Options() justext.Options {
	return justext.Options{
		LengthLow:          c.LengthLow,
		LengthHigh:         c.LengthHigh,
		StopwordsLow:       c.StopwordsLow,
		StopwordsHigh:      c.StopwordsHigh,
		MaxLinkDensity:     c.MaxLinkDensity,
		MaxHeadingDistance: c.MaxHeadingDistance,
		NoHeadings:         c.NoHeadings,
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a
// byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
