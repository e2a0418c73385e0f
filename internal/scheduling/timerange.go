package scheduling

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Times travel as 24-hour "HH:MM" strings and dates as "YYYY-MM-DD".
// Both are zero-padded, so lexicographic comparison matches chronological
// order and slot equality checks are plain string equality.
const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeRange is a half-open [StartTime, EndTime) interval within one day.
type TimeRange struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// Slot is a candidate booking interval with its computed availability.
type Slot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// DaySlots groups the slots computed for one calendar date.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// ValidTime reports whether s is a well-formed "HH:MM" 24-hour time.
func ValidTime(s string) bool {
	if !timePattern.MatchString(s) {
		return false
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

// ValidDate reports whether s is a well-formed "YYYY-MM-DD" calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// validateRanges checks every range for format and ordering and rejects
// any pairwise overlap within the set.
func validateRanges(ranges []TimeRange) error {
	for _, r := range ranges {
		if !ValidTime(r.StartTime) || !ValidTime(r.EndTime) {
			return NewError(CodeInvalidArgument, "times must be 24-hour HH:MM, got %q-%q", r.StartTime, r.EndTime)
		}
		if r.StartTime >= r.EndTime {
			return NewError(CodeInvalidArgument, "end time %q must be after start time %q", r.EndTime, r.StartTime)
		}
	}
	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime < sorted[i-1].EndTime {
			return NewError(CodeInvalidArgument, "slots %s-%s and %s-%s overlap",
				sorted[i-1].StartTime, sorted[i-1].EndTime, sorted[i].StartTime, sorted[i].EndTime)
		}
	}
	return nil
}

// synthesizeRanges generates consecutive ranges of granularity minutes
// covering [start, end). A trailing remainder shorter than the granularity
// is dropped.
func synthesizeRanges(start, end string, granularityMinutes int) []TimeRange {
	startMin := minutesOf(start)
	endMin := minutesOf(end)
	var ranges []TimeRange
	for cursor := startMin; cursor+granularityMinutes <= endMin; cursor += granularityMinutes {
		ranges = append(ranges, TimeRange{
			StartTime: formatMinutes(cursor),
			EndTime:   formatMinutes(cursor + granularityMinutes),
		})
	}
	return ranges
}

// weekdayOf resolves the day of week (0 = Sunday) of an ISO date as seen
// in the given location.
func weekdayOf(date string, loc *time.Location) (int, error) {
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

func minutesOf(hhmm string) int {
	hour := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return hour*60 + minute
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
