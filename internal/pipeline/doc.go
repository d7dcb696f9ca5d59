// Package pipeline runs one synthetic mine generation end to end.
//
// A run is strictly sequential: prepare the output directory, sample the
// floor count, split shape and drill hole totals across floors, fix one
// shaft coordinate, then generate and export every floor in index order.
// Any collaborator failure aborts the run. Floors written before the
// failure stay on disk.
package pipeline
