// Package kernel provides the identifier value object shared by every aggregate of the
// production tracking domain (orders, lines, stations, pieces, delivery notes).
//
// UUID is immutable; its zero value is invalid and is rejected by Validate, so an
// identifier that was never assigned cannot silently reach persistence.
package kernel
