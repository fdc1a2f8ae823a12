package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/avast/retry-go/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/log"
)

type cacheRun struct {
	CacheKey     string `gorm:"primaryKey;size:32"`
	Domain       string
	Salt         string
	Iterations   uint32
	WordlistSize int
	UpdatedAt    time.Time
}

func (cacheRun) TableName() string {
	return "cache_runs"
}

type hashEntry struct {
	ID       uint   `gorm:"primaryKey"`
	CacheKey string `gorm:"index;size:32"`
	Hash     string `gorm:"size:64"`
	FQDN     string `gorm:"column:fqdn"`
}

func (hashEntry) TableName() string {
	return "hash_entries"
}

// DatabaseStore mirrors artifacts into the tables cache_runs and hash_entries
type DatabaseStore struct {
	db        *gorm.DB
	name      string
	batchSize int
}

// NewDatabaseStore opens the configured database and migrates the schema
func NewDatabaseStore(ctx context.Context, cfg *config.Database) (*DatabaseStore, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case config.DatabaseTypeMysql:
		dialector = mysql.Open(cfg.Target)
	case config.DatabaseTypePostgresql:
		dialector = postgres.Open(cfg.Target)
	case config.DatabaseTypeSqlite:
		dialector = sqlite.Open(cfg.Target)
	default:
		return nil, fmt.Errorf("unsupported database type %s", cfg.Type)
	}

	return newDatabaseStore(ctx, dialector, cfg.Type.String(), cfg.BatchSize,
		cfg.CreationAttempts, cfg.CreationCooldown.ToDuration())
}

func newDatabaseStore(ctx context.Context, target gorm.Dialector, name string, batchSize,
	creationAttempts int, creationCooldown time.Duration,
) (*DatabaseStore, error) {
	dbLogger := log.PrefixedLog("database")

	var db *gorm.DB

	err := retry.Do(
		func() error {
			var err error
			db, err = gorm.Open(target, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})

			return err
		},
		retry.Attempts(uint(creationAttempts)),
		retry.Delay(creationCooldown),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			dbLogger.WithField("attempt", n+1).Warnf("can't create database connection: %v", err)
		}))
	if err != nil {
		return nil, fmt.Errorf("can't create database connection: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&cacheRun{}, &hashEntry{}); err != nil {
		return nil, fmt.Errorf("can't perform auto migration: %w", err)
	}

	if batchSize < 1 {
		batchSize = 1
	}

	return &DatabaseStore{db: db, name: name, batchSize: batchSize}, nil
}

func (s *DatabaseStore) String() string {
	return fmt.Sprintf("%s store", s.name)
}

// Save replaces all rows of the artifact's key in one transaction
func (s *DatabaseStore) Save(ctx context.Context, artifact *Artifact) (Location, error) {
	entries := make([]hashEntry, 0, len(artifact.Hashes))
	for hash, fqdn := range artifact.Hashes {
		entries = append(entries, hashEntry{CacheKey: artifact.Key, Hash: hash, FQDN: fqdn})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Hash < entries[j].Hash
	})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cache_key = ?", artifact.Key).Delete(&hashEntry{}).Error; err != nil {
			return err
		}

		if err := tx.Where("cache_key = ?", artifact.Key).Delete(&cacheRun{}).Error; err != nil {
			return err
		}

		run := cacheRun{
			CacheKey:     artifact.Key,
			Domain:       artifact.Domain,
			Salt:         artifact.Salt,
			Iterations:   artifact.Iterations,
			WordlistSize: artifact.WordlistSize,
		}

		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		return tx.CreateInBatches(entries, s.batchSize).Error
	})
	if err != nil {
		return Location{}, fmt.Errorf("can't save artifact %s: %w", artifact.Key, err)
	}

	return Location{Target: fmt.Sprintf("%s:hash_entries/%s", s.name, artifact.Key), Size: int64(len(entries))}, nil
}

func (s *DatabaseStore) Load(ctx context.Context, key string) (*Artifact, error) {
	db := s.db.WithContext(ctx)

	var run cacheRun

	if err := db.Where("cache_key = ?", key).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("can't load artifact %s: %w", key, err)
	}

	var entries []hashEntry

	if err := db.Where("cache_key = ?", key).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("can't load hashes of %s: %w", key, err)
	}

	hashes := make(map[string]string, len(entries))
	for _, e := range entries {
		hashes[e.Hash] = e.FQDN
	}

	return NewArtifact(key, run.Domain, run.Salt, run.Iterations, run.WordlistSize, hashes), nil
}

func (s *DatabaseStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
