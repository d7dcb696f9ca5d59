// Package export owns floor artifact writers and the output directory they
// share.
//
// Ownership boundary:
// - exporter registry keyed by output type
// - output directory preparation
// - one artifact file per floor, named by floor index
package export
