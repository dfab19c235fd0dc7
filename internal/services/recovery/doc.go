// Package recovery orchestrates the key-backup restore pipeline: credential
// resolution, SSSS envelope decryption, backup-key validation, then a
// bounded concurrent sweep over every backed-up session.
//
// The four credential-stage failures (invalid recovery key, unsupported
// algorithm, envelope MAC mismatch, public-key mismatch) are fatal and stop
// the run before any session work begins. Per-session failures are tallied
// into the result and never abort the batch.
package recovery
