// Package timely caches file content in memory and re-reads it only after
// a minimum interval has passed since the last successful read.
//
// It is meant for files that are polled far more often than they change,
// such as /proc and /sys pseudo-files. A refresh that fails is logged and
// the last good content keeps being served; callers never see an error
// from a refresh.
package timely
