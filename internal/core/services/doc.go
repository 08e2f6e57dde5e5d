// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The gallery service owns the only shared mutable state in the
// application: the in-memory image and album collections. All other
// services consume snapshots of it.
package services
