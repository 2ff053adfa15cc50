// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey API.

# Handler Types

Each handler is a struct built from the shared Services and the config:

  - SurveyHandler: survey definition, session state, checking and submission
  - ResultsHandler: aggregated results and store stats
  - AdminHandler: reset, export and session clearing

	svc := handlers.Services{Survey: def, Responses: rs, Sessions: gate, Hub: hub}
	surveyHandler := handlers.NewSurveyHandler(svc, cfg)

# Submission Flow

	GET  /survey           → GetSurvey (starts the session cookie)
	POST /survey/check     → Check (validation and progress, nothing stored)
	POST /survey/responses → Submit

Submit consults the session gate first. A session that already voted gets
409 before its body is read. Otherwise the answers are validated, appended
to the response store in one write, and only then is the session marked.
A failed write returns 500 and leaves the session free to retry.

# Results

	GET /results       → GetResults (per-option counts in definition order)
	GET /results/stats → GetStats

When a live hub is configured, every successful submission and reset is
pushed to websocket subscribers.

# Admin

Admin operations require the X-Admin-Key header, derived from the store
key and the admin salt:

	POST /admin/reset         → Reset
	GET  /admin/export        → Export (?format=json|csv)
	POST /admin/session/clear → ClearSession
*/
package handlers
