package piece

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var replacementSuffix = regexp.MustCompile(`(?i)-R(\d+)$`)

// Code builds the code of the sequence-th piece of a line.
func Code(orderNumber, lineCode string, sequence int) string {
	return fmt.Sprintf("%s-%s-%d", orderNumber, lineCode, sequence)
}

// RootCode strips a replacement suffix, so replacements of replacements stay flat.
func RootCode(code string) string {
	return replacementSuffix.ReplaceAllString(code, "")
}

// NextReplacementCode returns root + "-R" + (highest index among existing + 1). existing may
// contain any codes; only "{root}-R<n>" matches, compared case-insensitively, are counted.
func NextReplacementCode(root string, existing []string) string {
	highest := 0
	for _, code := range existing {
		if len(code) <= len(root) || !strings.EqualFold(code[:len(root)], root) {
			continue
		}
		m := replacementSuffix.FindStringSubmatch(code[len(root):])
		if m == nil || len(m[0]) != len(code)-len(root) {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-R%d", root, highest+1)
}
