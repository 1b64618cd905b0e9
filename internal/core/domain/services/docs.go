// Package services provides domain services that coordinate several aggregates.
//
// The package includes:
//   - Activator: turns requested line quantities into pieces without ever exceeding
//     the quantity a line asks for
//   - PieceRouter: advances a piece one station along the pipeline
//   - DeliveryReconciler: picks ready pieces for a delivery note and hands them over
//
// The services never touch persistence. Command handlers load the aggregates inside a
// unit of work, call the service and save what it changed.
package services
