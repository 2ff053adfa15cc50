// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package live pushes results updates to websocket subscribers.

A Hub owns the subscriber set and fans out messages from Broadcast. The
Handler upgrades GET /results/live, sends the current snapshot, then
streams every later update:

	{"type": "results_update", "payload": {...}}
	{"type": "store_reset", "payload": {...}}
*/
package live
