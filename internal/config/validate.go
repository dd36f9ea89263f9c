package config

import (
	"fmt"
	"strings"

	"voynich/internal/currier"
)

// Validate performs range checks on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Corpus.Path) == "" {
		return fmt.Errorf("corpus.path is required")
	}
	for _, g := range c.Corpus.Groups {
		if g != "all" && currier.Group(g) == "" {
			return fmt.Errorf("corpus.groups: unknown group %q (want a, b or all)", g)
		}
	}
	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "msgpack":
	default:
		return fmt.Errorf("output.format must be json or msgpack (got %q)", c.Output.Format)
	}
	if c.Server.ModelCacheSize <= 0 {
		return fmt.Errorf("server.model_cache_size must be > 0 (got %d)", c.Server.ModelCacheSize)
	}
	return nil
}

func (r *ResolverConfig) validate() error {
	if r.CoreQuantile <= 0 || r.CoreQuantile > 1 {
		return fmt.Errorf("core_quantile must be in (0, 1] (got %v)", r.CoreQuantile)
	}
	if r.WeightPrior < 0 || r.WeightChar < 0 || r.WeightContext < 0 {
		return fmt.Errorf("weights must be >= 0 (got %v/%v/%v)", r.WeightPrior, r.WeightChar, r.WeightContext)
	}
	if r.FreqMin < 0 {
		return fmt.Errorf("freq_min must be >= 0 (got %d)", r.FreqMin)
	}
	if r.TopK <= 0 {
		return fmt.Errorf("top_k must be > 0 (got %d)", r.TopK)
	}
	if r.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", r.Workers)
	}
	if r.MappingProb < 0 || r.MappingProb > 1 {
		return fmt.Errorf("mapping_prob must be in [0, 1] (got %v)", r.MappingProb)
	}
	if r.MappingGap < 0 {
		return fmt.Errorf("mapping_gap must be >= 0 (got %v)", r.MappingGap)
	}
	return nil
}
