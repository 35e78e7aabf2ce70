// Package store provides abstractions for data persistence: the
// interfaces the service layer depends on, the transaction helper that
// gives each workflow its single atomic unit of work, and the sentinel
// errors implementations map database failures onto.
package store
