package utils

import (
	"fmt"
	"time"
)

// SlotEndTime derives a slot's end from its "HH:MM" start plus the
// fixed slot length. A slot that would reach or cross midnight is
// rejected: there is no 24:00 time of day, and rolling the end into
// the next calendar day would split the slot across two date rows.
func SlotEndTime(start string, slot time.Duration) (string, error) {
	var h, m int
	if _, err := fmt.Sscanf(start, "%d:%d", &h, &m); err != nil {
		return "", fmt.Errorf("start time must be HH:MM, got %q", start)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("start time out of range: %q", start)
	}

	total := h*60 + m + int(slot.Minutes())
	if total >= 24*60 {
		return "", fmt.Errorf("slot starting at %s would cross midnight", start)
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}
