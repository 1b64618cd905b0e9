// Package order provides the Order aggregate: a customer order split into lines whose
// requested quantities are materialized into trackable pieces.
//
// The package includes:
//   - Order: the aggregate root holding the immutable order number, customer, requested
//     delivery date, lifecycle status and lines
//   - Line: one line item with its code, requested quantity and size/type descriptors
//   - Status: the order lifecycle state machine
//
// Key business rules:
//   - The order number never changes once the order exists
//   - Line codes are unique within an order and quantities are positive
//   - Activating pieces moves a Draft or Paused order to Active
//   - Completed and Cancelled are terminal
package order
