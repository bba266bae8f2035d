// Package autofill serves the assistant metadata form over net/http.
//
// The handler keeps one session per browser (cookie) and answers:
//
//	GET  /            the form page
//	POST /            action=generate|update|regenerate|lock|unlock
//	GET  /export      ?format=json|yaml|markdown download
//	GET  /preview     markdown export rendered as sanitized HTML
//	GET  /healthz     liveness probe
//
// Requester failures re-render the page with the session's notice and a 200
// status. A request whose context ends first gets a 503.
//
// Handlers built from one Component share a single session store.
package autofill
