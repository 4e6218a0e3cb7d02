package config

import "fmt"

// UnitOption selects the measurement system for display
type UnitOption string

const (
	UnitsSystem   UnitOption = "system" // follow the locale
	UnitsMetric   UnitOption = "metric"
	UnitsImperial UnitOption = "imperial"
)

// UnitOptions lists every recognized unit option
func UnitOptions() []UnitOption {
	return []UnitOption{UnitsSystem, UnitsMetric, UnitsImperial}
}

// Valid reports whether u is a recognized option
func (u UnitOption) Valid() bool {
	return contains(UnitOptions(), u)
}

// TimeRangeOption limits how far back workout import looks
type TimeRangeOption string

const (
	TimeRange30Days  TimeRangeOption = "30d"
	TimeRange90Days  TimeRangeOption = "90d"
	TimeRange365Days TimeRangeOption = "365d"
	TimeRangeAll     TimeRangeOption = "all"
)

// TimeRangeOptions lists every recognized time range
func TimeRangeOptions() []TimeRangeOption {
	return []TimeRangeOption{TimeRange30Days, TimeRange90Days, TimeRange365Days, TimeRangeAll}
}

// Valid reports whether t is a recognized option
func (t TimeRangeOption) Valid() bool {
	return contains(TimeRangeOptions(), t)
}

// Days returns the window length in days; ok is false for TimeRangeAll
func (t TimeRangeOption) Days() (days int, ok bool) {
	switch t {
	case TimeRange30Days:
		return 30, true
	case TimeRange90Days:
		return 90, true
	case TimeRange365Days:
		return 365, true
	default:
		return 0, false
	}
}

// Label returns the human-readable name of the range
func (t TimeRangeOption) Label() string {
	switch t {
	case TimeRange30Days:
		return "Last 30 Days"
	case TimeRange90Days:
		return "Last 90 Days"
	case TimeRange365Days:
		return "Last Year"
	case TimeRangeAll:
		return "All Time"
	default:
		return string(t)
	}
}

// ShoesSortOption orders the active shoe list
type ShoesSortOption string

const (
	SortDaysRemaining ShoesSortOption = "days_remaining"
	SortName          ShoesSortOption = "name"
	SortTotalDistance ShoesSortOption = "total_distance"
	SortRecentlyUsed  ShoesSortOption = "recently_used"
	SortAge           ShoesSortOption = "age"
)

// ShoesSortOptions lists every recognized sort option
func ShoesSortOptions() []ShoesSortOption {
	return []ShoesSortOption{SortDaysRemaining, SortName, SortTotalDistance, SortRecentlyUsed, SortAge}
}

// Valid reports whether s is a recognized option
func (s ShoesSortOption) Valid() bool {
	return contains(ShoesSortOptions(), s)
}

// ArchiveSortOption orders the archived shoe list
type ArchiveSortOption string

const (
	ArchiveSortName          ArchiveSortOption = "name"
	ArchiveSortTotalDistance ArchiveSortOption = "total_distance"
	ArchiveSortAge           ArchiveSortOption = "age"
)

// ArchiveSortOptions lists every recognized archive sort option
func ArchiveSortOptions() []ArchiveSortOption {
	return []ArchiveSortOption{ArchiveSortName, ArchiveSortTotalDistance, ArchiveSortAge}
}

// Valid reports whether s is a recognized option
func (s ArchiveSortOption) Valid() bool {
	return contains(ArchiveSortOptions(), s)
}

// ThemeOption selects the colour scheme of the TUI
type ThemeOption string

const (
	ThemeSystem ThemeOption = "system"
	ThemeLight  ThemeOption = "light"
	ThemeDark   ThemeOption = "dark"
)

// ThemeOptions lists every recognized theme
func ThemeOptions() []ThemeOption {
	return []ThemeOption{ThemeSystem, ThemeLight, ThemeDark}
}

// Valid reports whether t is a recognized option
func (t ThemeOption) Valid() bool {
	return contains(ThemeOptions(), t)
}

// ParseTimeRange converts a flag value into a TimeRangeOption
func ParseTimeRange(s string) (TimeRangeOption, error) {
	t := TimeRangeOption(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown time range %q (want one of %s)", s, joinOptions(TimeRangeOptions()))
	}
	return t, nil
}

func contains[T comparable](opts []T, v T) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
