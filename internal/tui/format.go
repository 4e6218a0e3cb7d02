package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"shoetracker/internal/analysis"
	"shoetracker/internal/units"
)

const dateLayout = "Jan 2, 2006"

func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// relativeDay renders t relative to now, e.g. "3 days ago"
func relativeDay(t *time.Time, now time.Time) string {
	if t == nil {
		return "never"
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}

func formatDaysRemaining(days *int) string {
	switch {
	case days == nil:
		return "-"
	case *days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", *days)
	}
}

func formatOptionalDistance(conv units.Converter, km *float64) string {
	if km == nil {
		return "-"
	}
	return conv.FormatDistance(*km, 1)
}

// shoeStatus labels the lifecycle state shown next to a shoe
func shoeStatus(m analysis.ShoeMetrics) string {
	switch {
	case m.IsArchived:
		return "retired"
	case m.HasExpired:
		return "worn out"
	case m.CloseToExpiration:
		return "nearly worn"
	default:
		return ""
	}
}

func renderStatus(m analysis.ShoeMetrics) string {
	label := shoeStatus(m)
	switch {
	case label == "":
		return ""
	case m.IsArchived:
		return mutedStyle.Render(label)
	case m.HasExpired:
		return errorStyle.Render(label)
	default:
		return warningStyle.Render(label)
	}
}

// downsample shrinks a series to at most targetLen points by sampling evenly
// and always keeping the final point
func downsample(data []float64, targetLen int) []float64 {
	if targetLen < 2 || len(data) <= targetLen {
		return data
	}

	result := make([]float64, targetLen)
	step := float64(len(data)-1) / float64(targetLen-1)
	for i := range result {
		result[i] = data[int(float64(i)*step+0.5)]
	}
	result[targetLen-1] = data[len(data)-1]
	return result
}

// cumulativeSeries converts the cumulative mileage points to display units
func cumulativeSeries(points []analysis.MileagePoint, conv units.Converter) []float64 {
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = conv.ConvertDistance(p.Total)
	}
	return data
}

// weeklySeries converts weekly totals to display units
func weeklySeries(weeks []analysis.WeekMileage, conv units.Converter) []float64 {
	data := make([]float64, len(weeks))
	for i, w := range weeks {
		data[i] = conv.ConvertDistance(w.Total)
	}
	return data
}
