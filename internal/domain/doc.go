// Package domain defines the core business entities of the candidate
// tracking system: candidates, their application status lifecycle, and
// the append-only status history that audits every transition.
package domain
