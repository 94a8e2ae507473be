// Package domain defines the core value types for the topobloom link ingestion
// system.
//
// # Core Types
//
// Link represents a physical connection between two devices, each side named
// by a device identifier and the interface on that device. Identifiers are
// opaque strings and are never validated.
//
// Endpoint is one (device, interface) side of a Link.
//
// # Keys
//
// A Link carries two keys with different guarantees:
//
// DedupKey is the plain concatenation of the four identifiers. It is cheap and
// direction sensitive, and is only used to feed the approximate pre-filter.
//
// CanonicalKey normalizes endpoint order so a link and its reverse produce the
// same key. It is injective over endpoint pairs and backs exact duplicate
// detection in the topology graph.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
package domain
