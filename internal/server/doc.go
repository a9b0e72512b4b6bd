// Package server provides HTTP routing, middleware, and the JSON API handlers for the conversion service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handlers
//
// Each endpoint is its own [Handler]:
//   - [ConvertHandler] : POST /api/convert, streams the converted audio file or a JSON error
//   - [VideoInfoHandler] : POST /api/video-info, lightweight metadata preview
//   - [ContactHandler] : POST /api/contact, persists contact-form submissions
//   - [HealthHandler] : GET /api/health, liveness probe
//
// Every failure produces a single JSON error object; raw process output never
// crosses into a response. A conversion request produces exactly one of
// {binary stream, JSON error}.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
