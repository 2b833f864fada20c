// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure: listen port, API key and the maximum accepted size of
// an ingested vendor batch.
package server
