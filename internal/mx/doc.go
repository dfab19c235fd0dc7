// Package mx is a thin client for the Matrix client-server API: room
// messaging (send, edit, react, redact, read), room resolution, and the
// account-data and room_keys endpoints the key-backup pipeline consumes.
//
// The client carries no protocol state. Errors from the homeserver are
// surfaced as *APIError with the standard errcode/error body decoded.
package mx
