// Package api carries the HTTP surface of the task tracker: request
// decoding and validation, the handlers for the auth and task endpoints,
// and the mapping from internal errors to client-safe responses. It
// translates HTTP concerns into calls on the internal services and
// nothing more.
package api
