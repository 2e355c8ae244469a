// Package task defines the Task capability consumed by the scheduling core
// and Spec, the concrete task built from a problem file.
package task
