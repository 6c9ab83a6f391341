// Package api implements the HTTP surface of the task service: the /tasks
// CRUD endpoints, the /settings endpoints, the error-to-status mapping, and
// the response envelope shared by all of them.
package api
