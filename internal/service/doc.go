// Package service implements the candidate workflows: registration,
// status updates, and status lookup. Each mutating workflow runs in a
// single database transaction so the entity mutation and its audit row
// commit together, and hands notification work to the task runner only
// after the transaction commits.
package service
