// ABOUTME: Shared text formatting for workout output.
// ABOUTME: Date layouts and weight labels used by history, progress and log output.
package main

import (
	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
)

const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
)

var (
	success = color.New(color.FgGreen)
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)
)

// weightLabel renders a weight as e.g. "100.0lbs", or zeroLabel for bodyweight.
func weightLabel(w models.Weight, zeroLabel string) string {
	if w.IsZero() {
		return zeroLabel
	}
	return w.String() + "lbs"
}
