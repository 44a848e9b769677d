package types

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
	"text2phenotype.com/ukstem/logger"
)

const (
	// pipeline type
	StemTextPipeline   = "stem_text"
	StemTokensPipeline = "stem_tokens"

	// features
	SkipPunctuation = "skip_punctuation"
	Trace           = "trace"
)

type StemParams struct {
	// ProtectedWords is a file with one word per line; those words are
	// normalized but never stemmed. Relative paths start at the config file.
	ProtectedWords string `yaml:"protected_words" json:"protected_words"`
	// MinLength is the shortest word, in runes, that gets stemmed.
	MinLength int `yaml:"min_length" json:"min_length"`
}

type Configuration struct {
	Name     string     `json:"name"`
	FilePath string     `json:"file_path"`
	Params   StemParams `yaml:"params" json:"params"`
	Pipeline string     `yaml:"pipeline" json:"pipeline"`
	Features []string   `yaml:"features" json:"features"`
}

func (cfg Configuration) CheckFeature(featureName string) bool {
	for _, feat := range cfg.Features {
		if feat == featureName {
			return true
		}
	}

	return false
}

func (cfg Configuration) ProtectedWordsPath() string {
	p := cfg.Params.ProtectedWords
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(cfg.FilePath), p)
}

func (cfg Configuration) Validate() error {
	switch cfg.Pipeline {
	case StemTextPipeline, StemTokensPipeline:
	default:
		return fmt.Errorf("config %q: wrong pipeline type %q", cfg.Name, cfg.Pipeline)
	}
	if cfg.Params.MinLength < 0 {
		return fmt.Errorf("config %q: negative min_length", cfg.Name)
	}
	return nil
}

func LoadConfiguration(filePath string) (Configuration, error) {
	cfg := Configuration{
		Name:     strings.TrimSuffix(filepath.Base(filePath), ".yaml"),
		FilePath: filePath,
	}
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filePath, err)
	}
	return cfg, cfg.Validate()
}

// LoadConfigurations reads every *.yaml file in dirPath. Files that fail to
// parse or validate are logged and skipped. The result is sorted by name.
func LoadConfigurations(dirPath string) ([]Configuration, error) {
	cfgLogger := logger.NewLogger("LoadConfigurations")

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			cfg, err := LoadConfiguration(filepath.Join(dirPath, name))
			if err != nil {
				cfgLogger.Err(err).Str("file", name).Msg("Skipping configuration")
				return
			}
			configChan <- cfg
		}(f.Name())
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(files))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}
