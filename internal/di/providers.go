package di

import (
	"fmt"
	"net"
	"strconv"

	"StockScreener/internal/domain/repository"
	"StockScreener/internal/handler/api"
	internalrepo "StockScreener/internal/repository"
	"StockScreener/internal/usecase"
	pkgcache "StockScreener/pkg/cache"
	pkgch "StockScreener/pkg/clickhouse"
	"StockScreener/pkg/config"
	xhttp "StockScreener/pkg/http"
	pkgkafka "StockScreener/pkg/kafka"
	applogger "StockScreener/pkg/logger"
	"StockScreener/pkg/metrics"
	pkgpg "StockScreener/pkg/postgres"
	"StockScreener/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "json"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePostgresClient creates a PostgreSQL client.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	client, err := pkgpg.NewClient(
		pkgpg.WithHost(cfg.Postgres.Host),
		pkgpg.WithPort(cfg.Postgres.Port),
		pkgpg.WithDatabase(cfg.Postgres.Database),
		pkgpg.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
		pkgpg.WithSSLMode(cfg.Postgres.SSLMode),
		pkgpg.WithMaxConnections(cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns),
		pkgpg.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pkgpg.WithQueryLogging(cfg.Postgres.LogQueries),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideCache creates the cache service: Redis when enabled, in-process
// memory otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if cfg.Redis.Layered {
		return pkgcache.NewLayeredCache(c), nil
	}
	return c, nil
}

// ProvideKafkaProducer creates a Kafka producer when the Kafka activity sink
// is configured; otherwise the app runs without one.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Activity.Sink != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideFilterStore creates the PostgreSQL filter store.
func ProvideFilterStore(pg *pkgpg.Client, l *applogger.Logger) repository.FilterStore {
	store := internalrepo.NewPGFilterStore(pg)
	store.SetLogger(l)
	return store
}

// ProvideTeamDirectory creates the PostgreSQL team directory.
func ProvideTeamDirectory(pg *pkgpg.Client, l *applogger.Logger) repository.TeamDirectory {
	dir := internalrepo.NewPGTeamDirectory(pg)
	dir.SetLogger(l)
	return dir
}

// ProvideCachedSnapshotStore wraps the ClickHouse snapshot store with the
// cache layer.
func ProvideCachedSnapshotStore(ch *pkgch.Client, cache pkgcache.Service, cfg *config.Config, l *applogger.Logger) *internalrepo.CachedSnapshotStore {
	inner := internalrepo.NewCHSnapshotStore(ch, cfg.Snapshots.Table)
	inner.SetLogger(l)
	store := internalrepo.NewCachedSnapshotStore(inner, cache, cfg.Snapshots.CacheTTL)
	store.SetLogger(l)
	return store
}

// ProvideSnapshotStore exposes the cached store under the domain interface.
func ProvideSnapshotStore(store *internalrepo.CachedSnapshotStore) repository.SnapshotStore {
	return store
}

// ProvideActivitySink selects the audit backend from config.
func ProvideActivitySink(cfg *config.Config, pg *pkgpg.Client, producer *pkgkafka.Producer) (repository.ActivitySink, error) {
	switch cfg.Activity.Sink {
	case "kafka":
		return internalrepo.NewKafkaActivitySink(producer, cfg.Activity.Topic), nil
	case "postgres":
		return internalrepo.NewPGActivitySink(pg), nil
	default:
		return nil, fmt.Errorf("unknown activity sink: %s", cfg.Activity.Sink)
	}
}

// ProvidePresetService creates the preset lifecycle use case.
func ProvidePresetService(
	store repository.FilterStore,
	teams repository.TeamDirectory,
	activity repository.ActivitySink,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.PresetService {
	return usecase.NewPresetService(store, teams, activity, m, l)
}

// ProvideScreenService creates the screening use case.
func ProvideScreenService(
	snapshots repository.SnapshotStore,
	filters repository.FilterStore,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ScreenService {
	return usecase.NewScreenService(snapshots, filters, m, l)
}

// ProvideHandler creates the HTTP handler surface.
func ProvideHandler(
	l *applogger.Logger,
	screens *usecase.ScreenService,
	presets *usecase.PresetService,
	snapshots *internalrepo.CachedSnapshotStore,
) xhttp.Handler {
	return api.NewScreenerEchoHandler(l, screens, presets, snapshots)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	pg *pkgpg.Client,
	ch *pkgch.Client,
	cache pkgcache.Service,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, handler, pg, ch, cache, producer)
}
