package units

import (
	"math"
	"testing"

	"golang.org/x/text/language"

	"shoetracker/internal/config"
)

func TestConversionRoundTrip(t *testing.T) {
	for _, km := range []float64{0, 1, 5, 21.0975, 42.195, 800} {
		if got := MilesToKilometers(KilometersToMiles(km)); math.Abs(got-km) > 1e-9 {
			t.Errorf("MilesToKilometers(KilometersToMiles(%v)) = %v", km, got)
		}
	}
	for _, m := range []float64{0, 12.5, 1000} {
		if got := FeetToMeters(MetersToFeet(m)); math.Abs(got-m) > 1e-9 {
			t.Errorf("FeetToMeters(MetersToFeet(%v)) = %v", m, got)
		}
	}
}

func TestConversionFactors(t *testing.T) {
	if got := KilometersToMiles(10); math.Abs(got-6.21371) > 1e-9 {
		t.Errorf("KilometersToMiles(10) = %v, want 6.21371", got)
	}
	if got := MetersToFeet(100); math.Abs(got-328.084) > 1e-9 {
		t.Errorf("MetersToFeet(100) = %v, want 328.084", got)
	}
}

func TestNewResolvesSystemOption(t *testing.T) {
	tests := []struct {
		name     string
		option   config.UnitOption
		locale   string
		imperial bool
	}{
		{"system in US", config.UnitsSystem, "en-US", true},
		{"system in Germany", config.UnitsSystem, "de-DE", false},
		{"system in UK", config.UnitsSystem, "en-GB", false},
		{"system with bare language", config.UnitsSystem, "en", true},
		{"explicit metric in US", config.UnitsMetric, "en-US", false},
		{"explicit imperial in Germany", config.UnitsImperial, "de-DE", true},
		{"garbage locale falls back to US", config.UnitsSystem, "not a locale!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.option, tt.locale)
			if c.IsImperial() != tt.imperial {
				t.Errorf("IsImperial() = %v, want %v", c.IsImperial(), tt.imperial)
			}
			want := config.UnitsMetric
			if tt.imperial {
				want = config.UnitsImperial
			}
			if c.Resolved() != want {
				t.Errorf("Resolved() = %q, want %q", c.Resolved(), want)
			}
		})
	}
}

func TestConverterDistance(t *testing.T) {
	metric := New(config.UnitsMetric, "en-US")
	imperial := New(config.UnitsImperial, "en-US")

	if got := metric.ConvertDistance(10); got != 10 {
		t.Errorf("metric ConvertDistance(10) = %v, want 10", got)
	}
	if got := imperial.ConvertDistance(10); math.Abs(got-6.21371) > 1e-9 {
		t.Errorf("imperial ConvertDistance(10) = %v, want 6.21371", got)
	}
	if got := imperial.ToKilometers(imperial.ConvertDistance(42)); math.Abs(got-42) > 1e-9 {
		t.Errorf("imperial ToKilometers round trip = %v, want 42", got)
	}
	if got := imperial.ConvertElevation(100); math.Abs(got-328.084) > 1e-9 {
		t.Errorf("imperial ConvertElevation(100) = %v, want 328.084", got)
	}
	if metric.DistanceLabel() != "km" || imperial.DistanceLabel() != "mi" {
		t.Errorf("DistanceLabel = %q/%q, want km/mi", metric.DistanceLabel(), imperial.DistanceLabel())
	}
	if metric.ElevationLabel() != "m" || imperial.ElevationLabel() != "ft" {
		t.Errorf("ElevationLabel = %q/%q, want m/ft", metric.ElevationLabel(), imperial.ElevationLabel())
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name   string
		option config.UnitOption
		locale string
		km     float64
		digits int
		want   string
	}{
		{"metric two digits", config.UnitsMetric, "en-US", 12.3456, 2, "12.35 km"},
		{"metric grouping", config.UnitsMetric, "en-US", 1234.5, 2, "1,234.50 km"},
		{"german separators", config.UnitsMetric, "de-DE", 1234.5, 2, "1.234,50 km"},
		{"imperial", config.UnitsImperial, "en-US", 10, 1, "6.2 mi"},
		{"zero digits", config.UnitsMetric, "en-US", 499.6, 0, "500 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.option, tt.locale)
			if got := c.FormatDistance(tt.km, tt.digits); got != tt.want {
				t.Errorf("FormatDistance(%v, %d) = %q, want %q", tt.km, tt.digits, got, tt.want)
			}
		})
	}
}

func TestFormatElevation(t *testing.T) {
	metric := New(config.UnitsMetric, "en-US")
	if got := metric.FormatElevation(312.4, 0); got != "312 m" {
		t.Errorf("FormatElevation = %q, want %q", got, "312 m")
	}

	imperial := New(config.UnitsImperial, "en-US")
	if got := imperial.FormatElevation(1000, 0); got != "3,281 ft" {
		t.Errorf("FormatElevation = %q, want %q", got, "3,281 ft")
	}
}

func TestIsImperialLocale(t *testing.T) {
	if !IsImperialLocale(language.MustParse("en-LR")) {
		t.Error("Liberia should be imperial")
	}
	if IsImperialLocale(language.MustParse("fr-FR")) {
		t.Error("France should be metric")
	}
}
