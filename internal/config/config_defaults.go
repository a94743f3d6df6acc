package config

import "time"

// Default values applied to every field left empty by the other sources.
const (
	DefaultTokenDuration  = 30 * time.Minute
	DefaultTokenIssuer    = "go-seed-api"
	DefaultDatabaseName   = "python_seed_db"
	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLoginRateLimit = 10
	DefaultLogLevel       = "info"

	DefaultAdapterAddress = "http://localhost:8080"
	DefaultAdapterTimeout = 10 * time.Second

	DefaultArgon2MemoryKiB   = 64 * 1024
	DefaultArgon2Iterations  = 3
	DefaultArgon2Parallelism = 2
	DefaultArgon2SaltLength  = 16
	DefaultArgon2KeyLength   = 32
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
			Argon2: Argon2{
				MemoryKiB:   DefaultArgon2MemoryKiB,
				Iterations:  DefaultArgon2Iterations,
				Parallelism: DefaultArgon2Parallelism,
				SaltLength:  DefaultArgon2SaltLength,
				KeyLength:   DefaultArgon2KeyLength,
			},
		},
		Storage: Storage{
			DB: DB{Name: DefaultDatabaseName},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			LoginRateLimit: DefaultLoginRateLimit,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
	}
}
