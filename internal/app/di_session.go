package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sessionRepository "github.com/codecollab/server/internal/session/repository"
	sessionService "github.com/codecollab/server/internal/session/service"
	sessionUseCase "github.com/codecollab/server/internal/session/usecase"
)

const (
	revocationStoreRedis    = "redis"
	revocationStoreDatabase = "database"
	revocationStoreMemory   = "memory"

	// signingKeyTimeout bounds the KMS call that decrypts the signing key.
	signingKeyTimeout = 10 * time.Second
	// memoryJanitorInterval is how often the memory store drops expired records.
	memoryJanitorInterval = time.Minute
)

// TokenSigner returns the session token signer built from the configured key.
func (c *Container) TokenSigner() (sessionService.TokenSigner, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initTokenSigner()
		if err != nil {
			c.initErrors["signer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signer"]; exists {
		return nil, storedErr
	}
	return c.signer, nil
}

// RevocationStore returns the logout denylist selected by REVOCATION_STORE.
func (c *Container) RevocationStore() (sessionUseCase.RevocationStore, error) {
	var err error
	c.revocationStoreInit.Do(func() {
		c.revocationStore, err = c.initRevocationStore()
		if err != nil {
			c.initErrors["revocationStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationStore"]; exists {
		return nil, storedErr
	}
	return c.revocationStore, nil
}

// RevocationCleaner returns the purger for the database revocation store. Other
// stores expire records on their own and return an error here.
func (c *Container) RevocationCleaner() (sessionUseCase.RevocationCleaner, error) {
	var err error
	c.revocationCleanerInit.Do(func() {
		c.revocationCleaner, err = c.initRevocationCleaner()
		if err != nil {
			c.initErrors["revocationCleaner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationCleaner"]; exists {
		return nil, storedErr
	}
	return c.revocationCleaner, nil
}

// SessionUseCase returns the session manager.
func (c *Container) SessionUseCase() (sessionUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// initTokenSigner loads the signing key, decrypting it through KMS when only the
// ciphertext is configured.
func (c *Container) initTokenSigner() (sessionService.TokenSigner, error) {
	ctx, cancel := context.WithTimeout(c.ctx, signingKeyTimeout)
	defer cancel()

	loader := sessionService.NewSigningKeyLoader(
		c.config.JWTSecret,
		c.config.JWTSecretCiphertext,
		c.config.KMSKeyURI,
	)
	key, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	signer, err := sessionService.NewJWTSigner(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	return signer, nil
}

// initRevocationStore creates the configured revocation store.
func (c *Container) initRevocationStore() (sessionUseCase.RevocationStore, error) {
	switch c.config.RevocationStore {
	case revocationStoreRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for revocation store: %w", err)
		}
		return sessionRepository.NewRedisRevocationStore(client), nil

	case revocationStoreDatabase:
		return c.databaseRevocationStore()

	case revocationStoreMemory:
		store := sessionRepository.NewMemoryRevocationStore(time.Now)
		store.StartJanitor(memoryJanitorInterval)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported revocation store: %s", c.config.RevocationStore)
	}
}

// databaseRevocationStore builds the SQL store matching the database driver. The
// returned store also implements RevocationCleaner.
func (c *Container) databaseRevocationStore() (sessionUseCase.RevocationStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for revocation store: %w", err)
	}

	hasher := sessionService.NewTokenHasher()

	switch c.config.DBDriver {
	case "mysql":
		return sessionRepository.NewMySQLRevocationStore(db, hasher, time.Now), nil
	case "postgres":
		return sessionRepository.NewPostgreSQLRevocationStore(db, hasher, time.Now), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRevocationCleaner returns the database store's cleaner.
func (c *Container) initRevocationCleaner() (sessionUseCase.RevocationCleaner, error) {
	if c.config.RevocationStore != revocationStoreDatabase {
		return nil, fmt.Errorf(
			"revocation cleanup requires REVOCATION_STORE=%s, got %q",
			revocationStoreDatabase,
			c.config.RevocationStore,
		)
	}

	store, err := c.RevocationStore()
	if err != nil {
		return nil, err
	}

	cleaner, ok := store.(sessionUseCase.RevocationCleaner)
	if !ok {
		return nil, fmt.Errorf("revocation store does not support cleanup")
	}
	return cleaner, nil
}

// initRedisClient opens the redis client from REDIS_URL.
func (c *Container) initRedisClient() (*redis.Client, error) {
	client, err := sessionRepository.NewRedisClient(c.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

// initSessionUseCase creates the session manager, wrapped with metrics when enabled.
func (c *Container) initSessionUseCase() (sessionUseCase.SessionUseCase, error) {
	signer, err := c.TokenSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get token signer for session use case: %w", err)
	}

	store, err := c.RevocationStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation store for session use case: %w", err)
	}

	baseUseCase := sessionUseCase.NewSessionUseCase(signer, store, sessionUseCase.Config{
		StoreTimeout: c.config.RevocationStoreTimeout,
	})

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return sessionUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
