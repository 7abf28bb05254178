package llm

import (
	"iter"
	"strings"
)

// Collect drains stream, handing every non-empty fragment to onFragment as it
// arrives. It returns the concatenated text received so far and the first
// error, if any.
func Collect(stream iter.Seq2[string, error], onFragment func(string)) (string, error) {
	var sb strings.Builder
	for fragment, err := range stream {
		if err != nil {
			return sb.String(), err
		}
		if fragment == "" {
			continue
		}
		if onFragment != nil {
			onFragment(fragment)
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}
