// Package flights loads vendor flight-adherence batches into the reporting database.
//
// A batch is a JSON array of vendor records for one source airline. Loader.Load
// validates every record, then inside one transaction replaces the staging table
// with the batch, adds the airlines and airports it references, and appends the
// flight records whose (airline, date, flight number) is new. A failing step rolls
// the whole load back.
//
// # Entry points
//
//   - POST /loads/:source : loads the request body.
//   - GET /flights/fields : lists the fields of a flight record.
//   - Service.LoadObject and Service.LoadPrefix : load payloads from object storage.
//   - Service.HandleMessage : loads a queue message carrying {"source", "records"}.
//
// # Errors
//
// Handlers map *schema.ValidationError to 422, *reconcile.UniquenessViolation to 409,
// database.ErrUnavailable to 503, and malformed requests to 400.
package flights
