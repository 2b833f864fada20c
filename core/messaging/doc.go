// Package messaging consumes vendor batches from a NATS subject.
//
// The Worker uses a synchronous queue subscription and handles one message at a time,
// which gives a single-worker scheduler for loads: two batches are never reconciled
// concurrently by the same listener. When a message carries a reply subject the worker
// answers with a Reply envelope holding the handler's result or error text.
package messaging
