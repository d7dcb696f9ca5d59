// Package mine generates the geometry of a single mine floor.
//
// Ownership boundary:
// - corridor layout on the column/row grid
// - the elevator shaft shared by every floor
// - drill holes and their fixed-length segments
// - geological shapes grown as block sets around drill hole ends
//
// A Generator draws everything from one random.Source in a fixed order, so
// a seeded source reproduces a floor exactly.
package mine
