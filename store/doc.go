// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store keeps every survey response in one JSON document under a
// single storage key, and exports it as JSON or CSV.
package store
