package config

import (
	"time"

	"voynich/pkg/options"
)

// Config is the root application configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Resolver ResolverConfig `yaml:"resolver"`
	Output   OutputConfig   `yaml:"output"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// CorpusConfig points at the transcription and the groups to analyze.
type CorpusConfig struct {
	Path   string   `yaml:"path"   env:"CORPUS_PATH"   env-default:"data/transcription.txt"`
	Groups []string `yaml:"groups" env:"CORPUS_GROUPS" env-default:"a,b" env-separator:","`
	// Ranges forces the static folio ranges even when the transcript
	// carries $L labels.
	Ranges bool `yaml:"ranges" env:"CORPUS_RANGES" env-default:"false"`
}

// ResolverConfig holds candidate scoring settings.
type ResolverConfig struct {
	CoreQuantile  float64 `yaml:"core_quantile"  env:"RESOLVER_CORE_QUANTILE"  env-default:"0.9"`
	Normalize     bool    `yaml:"normalize"      env:"RESOLVER_NORMALIZE"      env-default:"false"`
	WeightPrior   float64 `yaml:"weight_prior"   env:"RESOLVER_WEIGHT_PRIOR"   env-default:"1.0"`
	WeightChar    float64 `yaml:"weight_char"    env:"RESOLVER_WEIGHT_CHAR"    env-default:"0.4"`
	WeightContext float64 `yaml:"weight_context" env:"RESOLVER_WEIGHT_CONTEXT" env-default:"0.2"`
	FreqMin       int     `yaml:"freq_min"       env:"RESOLVER_FREQ_MIN"       env-default:"3"`
	TopK          int     `yaml:"top_k"          env:"RESOLVER_TOP_K"          env-default:"5"`
	Workers       int     `yaml:"workers"        env:"RESOLVER_WORKERS"        env-default:"0"`
	MappingProb   float64 `yaml:"mapping_prob"   env:"RESOLVER_MAPPING_PROB"   env-default:"0.5"`
	MappingGap    float64 `yaml:"mapping_gap"    env:"RESOLVER_MAPPING_GAP"    env-default:"1.5"`
}

// Options converts the section into resolver options.
func (r ResolverConfig) Options() []options.Options {
	return []options.Options{
		options.WithCoreQuantile(r.CoreQuantile),
		options.WithNormalize(r.Normalize),
		options.WithWeights(options.Weights{Prior: r.WeightPrior, Char: r.WeightChar, Context: r.WeightContext}),
		options.WithFreqMin(r.FreqMin),
		options.WithTopK(r.TopK),
		options.WithWorkers(r.Workers),
	}
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"    env:"OUTPUT_DIR"    env-default:"data"`
	Format string `yaml:"format" env:"OUTPUT_FORMAT" env-default:"json"`
	Stats  bool   `yaml:"stats"  env:"OUTPUT_STATS"  env-default:"true"`
	TopN   int    `yaml:"top_n"  env:"OUTPUT_TOP_N"  env-default:"200"`
}

// RedisConfig holds the mapping store connection. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Prefix   string `yaml:"prefix"   env:"REDIS_PREFIX"   env-default:"voynich:mapping:"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"HTTP_ADDR"               env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	ModelCacheSize  int           `yaml:"model_cache_size" env:"SERVER_MODEL_CACHE_SIZE" env-default:"8"`
}

// LogConfig holds logging settings. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"       env:"LOG_LEVEL"       env-default:"info"`
	Format     string `yaml:"format"      env:"LOG_FORMAT"      env-default:"json"`
	File       string `yaml:"file"        env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"32"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
}
