// Package integrity provides health checks for the load pipeline's infrastructure.
//
// # Checks Provided
//
//   - Structure: the payload bucket exists and holds the inbox and archive folders.
//   - Pending: the JSON payloads waiting under the inbox folder.
//   - Schema: the reporting tables match the flight models (columns, declared types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/pending : Lists pending payloads.
//   - GET /integrity/schema : Runs schema check.
package integrity
