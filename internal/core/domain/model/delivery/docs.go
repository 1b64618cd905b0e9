// Package delivery provides delivery notes and the rules used to reconcile a delivery
// against the ready pieces of an order.
//
// A note is numbered per order ("DN-0001", "DN-0002", ...) and owns the set of pieces it
// handed over. A piece belongs to at most one note: once delivered it leaves the ready set,
// so a second confirmation cannot select it again.
package delivery
