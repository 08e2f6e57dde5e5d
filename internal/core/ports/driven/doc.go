// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - MetadataStore: durable key/value persistence for AI annotations
//     and user album records. Never holds raw asset bytes.
//   - MediaSource: read-only, paginated access to the device photo
//     library. Authoritative for identity, dimensions, timestamps and
//     file names.
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Annotator: AI image analysis. Without it, images carry empty
//     annotations and only device-derived fields are searchable.
//   - ConfigStore: application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
