package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInputString trims without lowercasing, for display fields like names.
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}
