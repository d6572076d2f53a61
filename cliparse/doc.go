// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv optionally seeds the environment from a .env file, then
ParseFlags returns a Config struct with all settings:

	_ = cliparse.LoadDotEnv(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (postgres, sqlite, mongo)
	--mongo-db      MongoDB database name
	--store-timeout Timeout per store round trip
	--log-level     debug, info, warn or error
	--log-format    text or json
	--jwt-secret    JWT signing secret
	--admin-key     Maintenance admin key

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	MONGO_DATABASE → --mongo-db
	STORE_TIMEOUT  → --store-timeout
	LOG_LEVEL      → --log-level
	LOG_FORMAT     → --log-format
	JWT_SECRET     → --jwt-secret
	ADMIN_KEY      → --admin-key

CLI flags take precedence over environment variables, and real environment
variables take precedence over .env entries.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not a supported backend
  - JWT_SECRET is shorter than 32 characters
  - ADMIN_KEY is missing
*/
package cliparse
