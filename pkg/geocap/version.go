// Package geocap holds project-wide metadata.
package geocap

// Version is the geocap release version.
const Version = "0.1.0"
