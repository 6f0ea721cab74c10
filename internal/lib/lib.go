// Package lib holds supporting code that does not belong to a single
// layer: money formatting, background jobs and small output helpers.
package lib
