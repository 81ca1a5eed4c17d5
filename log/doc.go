// Package log contains the leveled logger used by the neuron-graph packages.
//
// By default no logger is set and nothing is written. Use Default, New or SetLogger
// to set the logger used by all the packages and their module loggers.
package log
