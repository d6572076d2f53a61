// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with request logging and Prometheus instrumentation:

	mux.HandleFunc("GET /health", middleware.WithLogging(middleware.WithMetrics(handler)))

WithLogging logs completion with method, path, status and duration_ms.
WithMetrics labels requests by their ServeMux pattern.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key.

# JSON Helpers

Write JSON responses. Errors always carry a kind:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.KindErrorResponse(w, http.StatusBadRequest, "validation", "empty vote slate")

Parse JSON request bodies (capped at 1 MiB):

	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.KindErrorResponse(w, http.StatusBadRequest, "validation", "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
