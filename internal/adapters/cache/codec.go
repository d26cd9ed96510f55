package cache

import "strings"

// Labels are stored comma separated; candidate labels never contain commas
const labelSeparator = ","

func encodeLabels(labels []string) string {
	return strings.Join(labels, labelSeparator)
}

func decodeLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, labelSeparator)
}
