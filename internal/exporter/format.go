package exporter

import (
	"strconv"
	"strings"
	"time"

	"likecli/pkg/contracts/domain"
)

// FormatOptions controls how numbers are rendered into report cells
type FormatOptions struct {
	DecimalSeparator string
	PercentSuffix    string
}

// DefaultFormatOptions renders percentages the German way: "50,0%"
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{DecimalSeparator: ",", PercentSuffix: "%"}
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.DecimalSeparator == "" {
		o.DecimalSeparator = ","
	}
	return o
}

// FormatPercent renders v with the shortest representation that keeps at
// least one fractional digit: 50 -> "50,0%", 33.33 -> "33,33%".
func FormatPercent(v float64, opts FormatOptions) string {
	opts = opts.withDefaults()
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.Replace(s, ".", opts.DecimalSeparator, 1) + opts.PercentSuffix
}

// FormatPercentValue renders a possibly missing percentage; missing is ""
func FormatPercentValue(p domain.Percent, opts FormatOptions) string {
	if !p.Valid {
		return ""
	}
	return FormatPercent(p.Value, opts)
}

// FormatIntPercent renders an integer percentage without fraction: "37%"
func FormatIntPercent(v int, opts FormatOptions) string {
	return strconv.Itoa(v) + opts.PercentSuffix
}

// FormatHoursMinutes renders d as "{h}h {m}m" using whole minutes, rounded
// down. Seconds are dropped, not rounded.
func FormatHoursMinutes(d time.Duration) string {
	minutes := int64(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		minutes--
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest < 0 {
		hours--
		rest += 60
	}
	return strconv.FormatInt(hours, 10) + "h " + strconv.FormatInt(rest, 10) + "m"
}
