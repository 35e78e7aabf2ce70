// Package api contains the HTTP handlers for the candidate-tracking
// service: public registration and status lookup, and the admin surface
// for listing candidates, updating statuses, and browsing the audit
// history. Handlers translate between HTTP and the service layer and
// map domain and store errors to status codes without leaking internal
// detail.
package api
