// Package pointio reads and writes the line-oriented point format used by
// the command-line front end.
//
// One point per line, coordinates separated by commas. Blank lines are
// skipped. Output centroids are written with four decimal digits.
package pointio
