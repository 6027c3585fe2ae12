package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// dateLayout is the layout accepted by date flags.
const dateLayout = "2006-01-02"

// getList reads a string slice flag, splitting each value on commas so
// "-e a,b -e c" and "-e a -e b -e c" are equivalent. Blank items are dropped.
func getList(cmd *cobra.Command, name string) []string {
	raw, _ := cmd.Flags().GetStringArray(name)
	return splitList(raw)
}

func splitList(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// parseDateFlag parses a YYYY-MM-DD flag value in local time. Empty yields
// the zero time.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD)", name, value)
	}
	return t, nil
}

// endOfDay returns the last instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
