// Package config handles loading folio's configuration file.
//
// # Overview
//
// This package reads ~/.config/folio/config.toml, applies environment
// overrides and fills in defaults. Everything is optional; a fresh install
// with no file and no environment runs with the dir storage backend and
// stock search disabled.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml (default)
//  3. If the config file doesn't exist, start from defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Environment variables override whatever the file said
//
// LoadDotEnv may be called first to populate the environment from a .env
// file in the working directory. Variables already set are not replaced.
//
// # Default Values
//
//   - Config file: ~/.config/folio/config.toml
//   - Storage backend: dir at ~/.local/share/folio/store
//   - SQLite path (backend = "sqlite"): ~/.local/share/folio/folio.db
//   - Pixabay base URL: https://pixabay.com
//   - Upload max dimension: 2000 px
//   - Log: info level, ~/.local/state/folio/folio.log
//
// # Environment Overrides
//
//	FOLIO_STORAGE_BACKEND  storage.backend
//	FOLIO_STORAGE_PATH     storage.path
//	FOLIO_REDIS_URL        storage.redis_url
//	PIXABAY_API_KEY        pixabay.api_key
//	FOLIO_LOG_LEVEL        log.level
//
// # TOML Format
//
//	[storage]
//	backend = "sqlite"           # dir | sqlite | redis | memory
//	path = "~/photos/folio.db"
//	redis_url = "redis://localhost:6379/0"
//
//	[pixabay]
//	api_key = "..."
//
//	[upload]
//	max_dimension = 2000
//
//	[log]
//	level = "debug"
//	file = "~/.local/state/folio/folio.log"
//
// # Validation
//
// Load fails for unparsable TOML ("parse config: ..."), an unknown backend,
// the redis backend without a URL and a negative max_dimension. Paths are
// tilde-expanded and made absolute.
package config
