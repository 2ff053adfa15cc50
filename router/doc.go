// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Survey (public, identified by the session cookie):

	GET  /survey           - Survey definition
	GET  /survey/session   - Whether this session already voted
	POST /survey/check     - Validate answers and report progress
	POST /survey/responses - Submit once per session

Results (public):

	GET /results       - Per-option counts
	GET /results/stats - Response count and store size
	GET /results/live  - Websocket updates, only when a hub is configured

Admin (requires X-Admin-Key):

	POST /admin/reset         - Empty the store
	GET  /admin/export        - Download as json or csv
	POST /admin/session/clear - Let the caller's session vote again

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
