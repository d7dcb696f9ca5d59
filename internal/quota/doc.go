// Package quota splits a randomly sampled total into per-group integer
// quotas.
//
// A total T is drawn uniformly from [min, max) and truncated toward zero.
// When T is at least the group count, T is cut into strictly positive
// parts with the stars-and-bars construction: groups-1 distinct cut points
// are drawn from {1, ..., T-1} with Floyd's algorithm, sorted, and
// differenced.
//
// When T is smaller than the group count, the working total is inflated to
// the group count, partitioned into all ones, and the shortfall is removed
// by scanning groups from left to right. Callers get exactly T ones and
// zeros everywhere else, and the zeros always land on the lowest indexes.
// Callers that need fairness across groups must permute the result
// themselves.
//
// Every draw goes through a random.Source, so a scripted source makes the
// whole engine deterministic.
package quota
