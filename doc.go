// Package gmsec implements the GMSEC message specification and validation
// engine: loading a hierarchical, versioned set of XSD message templates
// from disk, resolving them through a layered addendum model, and
// validating concrete messages against the resulting templates.
//
// Transport, connection lifecycle, and language bindings are outside this
// package's scope; it exposes only the interfaces those collaborators
// consume: Validate, Specification.FindTemplate,
// MessageFactory.CreateMessage, and MessageFactory.FromData.
package gmsec
