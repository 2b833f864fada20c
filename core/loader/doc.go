// Package loader registers the HTTP features of the ingest server.
//
// A Feature names itself, reports whether its dependencies are available and
// mounts its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers every feature with a Manager and calls LoadAll once the
// shared middleware is in place. Disabled features are skipped, so the server still
// comes up when an optional backend such as the reporting database is down.
package loader
