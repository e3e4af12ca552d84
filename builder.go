package credkit

import (
	"errors"

	"github.com/credkit/credkit/password"
)

// Builder assembles an [Engine]. Configure it, inject a [Store], then call
// [Builder.Build] exactly once; Builders are single-use.
type Builder struct {
	config    Config
	store     Store
	auditSink AuditSink

	built bool
}

// New returns a Builder carrying the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the storage backend. Required.
func (b *Builder) WithStore(store Store) *Builder {
	b.store = store
	return b
}

func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and dependencies and constructs the
// Engine. Configuration problems are fatal here — bad TTL literals, missing
// secrets, or no enabled authentication method never produce an Engine.
// Advisory findings (short secret, long TTL) are carried on
// [Engine.Warnings] instead.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config

	if b.store == nil {
		return nil, errors.New("storage backend required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl, err := ParseTTL(cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:   cfg,
		store:    b.store,
		hasher:   hasher,
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		warnings: cfg.Lint(),
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
