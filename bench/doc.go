// Package bench runs the timing experiments around the estimator and the
// Fibonacci strategies and packages their results as encoded reports.
//
// Every sweep returns plain rows. Series converts rows into chart input, and
// Report wraps rows with host information for storage.
package bench
