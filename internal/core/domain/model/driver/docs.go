// Package driver provides the Driver aggregate: a person who can be allocated
// to at most one planned or in-progress tour at a time.
package driver
