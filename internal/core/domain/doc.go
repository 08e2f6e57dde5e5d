// Package domain defines the core business entities for Glance.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Image: A photo in the in-memory gallery collection
//   - Album: A device-sourced or user-created photo album
//   - Annotation: AI-derived output for one asset
//   - AnnotationRecord: The durable subset of Image state
//   - MediaAsset: A photo as reported by the device media source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
