package ranking

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration reads an "HH:MM:SS" completion time into seconds.
func ParseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("completion time %q: want HH:MM:SS", s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("completion time %q: bad field %q", s, p)
		}
		fields[i] = n
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("completion time %q: minutes and seconds must be below 60", s)
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

// FormatDuration renders seconds as "HH:MM:SS". Zero renders as "".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
