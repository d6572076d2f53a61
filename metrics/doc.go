// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers the Prometheus collectors served on /metrics.
// Collectors are package globals registered through promauto.
package metrics
