// Package types defines the capability, tolerance, and series types shared by
// the geocap packages, together with the configuration struct and the
// standard error values.
//
// Implements: capability prober and decorator data model, process-wide
// numeric tolerances, and the geometry series container.
package types
