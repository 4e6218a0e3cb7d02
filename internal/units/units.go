// Package units converts and formats distances and elevations according to
// the user's unit preference and locale.
package units

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"shoetracker/internal/config"
)

const (
	// MilesPerKilometer is the statute miles in one kilometre
	MilesPerKilometer = 0.621371
	// FeetPerMeter is the international feet in one metre
	FeetPerMeter = 3.28084
)

// Regions that measure road distance in miles
var imperialRegions = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

// KilometersToMiles converts kilometres to statute miles
func KilometersToMiles(km float64) float64 {
	return km * MilesPerKilometer
}

// MilesToKilometers converts statute miles to kilometres
func MilesToKilometers(mi float64) float64 {
	return mi / MilesPerKilometer
}

// MetersToFeet converts metres to feet
func MetersToFeet(m float64) float64 {
	return m * FeetPerMeter
}

// FeetToMeters converts feet to metres
func FeetToMeters(ft float64) float64 {
	return ft / FeetPerMeter
}

// Converter provides unit conversion and formatting for one resolved unit
// system and locale. The zero value is not usable; use New.
type Converter struct {
	imperial bool
	tag      language.Tag
	printer  *message.Printer
}

// New resolves the unit option against the locale and returns a Converter.
// An unparseable locale falls back to American English.
func New(option config.UnitOption, locale string) Converter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	imperial := option == config.UnitsImperial
	if option == config.UnitsSystem || option == "" {
		imperial = IsImperialLocale(tag)
	}

	return Converter{
		imperial: imperial,
		tag:      tag,
		printer:  message.NewPrinter(tag),
	}
}

// IsImperialLocale reports whether the locale's region measures distance in miles
func IsImperialLocale(tag language.Tag) bool {
	region, _ := tag.Region()
	return imperialRegions[region.String()]
}

// Resolved returns the concrete unit system in use, never UnitsSystem
func (c Converter) Resolved() config.UnitOption {
	if c.imperial {
		return config.UnitsImperial
	}
	return config.UnitsMetric
}

// IsImperial returns true if distances are shown in miles
func (c Converter) IsImperial() bool {
	return c.imperial
}

// Locale returns the locale used for number formatting
func (c Converter) Locale() language.Tag {
	return c.tag
}

// ConvertDistance converts kilometres to the display unit
func (c Converter) ConvertDistance(km float64) float64 {
	if c.imperial {
		return KilometersToMiles(km)
	}
	return km
}

// ToKilometers converts a value entered in the display unit back to kilometres
func (c Converter) ToKilometers(distance float64) float64 {
	if c.imperial {
		return MilesToKilometers(distance)
	}
	return distance
}

// ConvertElevation converts metres to the display unit
func (c Converter) ConvertElevation(meters float64) float64 {
	if c.imperial {
		return MetersToFeet(meters)
	}
	return meters
}

// DistanceLabel returns the short distance unit ("mi" or "km")
func (c Converter) DistanceLabel() string {
	if c.imperial {
		return "mi"
	}
	return "km"
}

// ElevationLabel returns the short elevation unit ("ft" or "m")
func (c Converter) ElevationLabel() string {
	if c.imperial {
		return "ft"
	}
	return "m"
}

// FormatNumber renders v with exactly fractionDigits digits after the
// decimal separator, using the locale's grouping and decimal symbols.
func (c Converter) FormatNumber(v float64, fractionDigits int) string {
	if fractionDigits < 0 {
		fractionDigits = 0
	}
	return c.printer.Sprint(number.Decimal(v, number.Scale(fractionDigits)))
}

// FormatDistance formats a distance in kilometres in the display unit, e.g. "1,234.50 km"
func (c Converter) FormatDistance(km float64, fractionDigits int) string {
	return c.FormatNumber(c.ConvertDistance(km), fractionDigits) + " " + c.DistanceLabel()
}

// FormatElevation formats an elevation in metres in the display unit, e.g. "312 m"
func (c Converter) FormatElevation(meters float64, fractionDigits int) string {
	return c.FormatNumber(c.ConvertElevation(meters), fractionDigits) + " " + c.ElevationLabel()
}
