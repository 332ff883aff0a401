package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseMonthParam reads YYYY-MM, defaulting to the month of now.
func parseMonthParam(value string, now time.Time) (int, time.Month, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, err
	}
	return parsed.Year(), parsed.Month(), nil
}

func parseYearParam(value string, now time.Time) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Year(), nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 || parsed > 9999 {
		return 0, fmt.Errorf("invalid year")
	}
	return parsed, nil
}
