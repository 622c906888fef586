// Package incident records operational incidents (delays, damage, breakdowns and so on)
// and drives their handling workflow from reported to closed.
package incident
