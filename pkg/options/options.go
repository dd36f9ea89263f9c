package options

import "runtime"

// Weights scales the three scoring signals of a candidate.
type Weights struct {
	Prior   float64 `json:"prior" yaml:"prior"`
	Char    float64 `json:"char" yaml:"char"`
	Context float64 `json:"context" yaml:"context"`
}

// DefaultWeights favours the lexical prior; character and context scores
// are on a much smaller scale.
var DefaultWeights = Weights{Prior: 1.0, Char: 0.4, Context: 0.2}

var DefaultOptions = ResolverOptions{
	CoreQuantile: 0.9,
	Normalize:    false,
	Weights:      DefaultWeights,
	Smoothing:    0.1,
	FreqMin:      3,
	TopK:         5,
	MaxMarkers:   2,
	BigramFill:   6,
	CharFill:     5,
	Workers:      0,
}

type ResolverOptions struct {
	CoreQuantile float64 // share of tokens the core vocabulary covers
	Normalize    bool    // normalize words before counting
	Weights      Weights
	Smoothing    float64 // Laplace smoothing k
	FreqMin      int     // minimum candidate frequency in the result
	TopK         int     // candidates kept per occurrence
	MaxMarkers   int     // above this, exact vocabulary matches only
	BigramFill   int     // top char bigrams tried per marker
	CharFill     int     // top chars tried per marker
	Workers      int     // 0 = GOMAXPROCS
}

// Resolve applies opts over DefaultOptions.
func Resolve(opts ...Options) ResolverOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	if o.TopK < 0 {
		o.TopK = 0
	}
	return o
}

// WorkerCount returns the effective parallelism.
func (o ResolverOptions) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

type Options interface {
	Apply(options *ResolverOptions)
}

type FuncConfig struct {
	ops func(options *ResolverOptions)
}

func (w FuncConfig) Apply(conf *ResolverOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *ResolverOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithCoreQuantile(q float64) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.CoreQuantile = q
	})
}

func WithNormalize(normalize bool) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.Normalize = normalize
	})
}

func WithWeights(w Weights) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.Weights = w
	})
}

func WithSmoothing(k float64) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.Smoothing = k
	})
}

func WithFreqMin(freqMin int) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.FreqMin = freqMin
	})
}

func WithTopK(k int) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.TopK = k
	})
}

func WithWorkers(n int) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.Workers = n
	})
}

func WithFill(bigrams, chars int) Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.BigramFill = bigrams
		options.CharFill = chars
	})
}

// WithoutFrequencyFilter keeps every scored candidate regardless of how
// often it occurs in the corpus. Bigram- and char-filled forms usually have
// frequency 0 and are otherwise always dropped.
func WithoutFrequencyFilter() Options {
	return NewFuncOption(func(options *ResolverOptions) {
		options.FreqMin = 0
	})
}
