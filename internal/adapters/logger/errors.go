package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error and the domain kind tags both provide it.
type messager interface {
	Message() string
}

// metadataCarrier describes an error carrying key/value details, such as zerr.Error.
type metadataCarrier interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err and returns one entry per link. Errors without a
// Message method end the walk with their full text, except joined errors whose members
// are each walked in turn. Links with an empty message hand their metadata to the next
// entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			if joined, ok := current.(interface{ Unwrap() []error }); ok {
				for _, member := range joined.Unwrap() {
					entries = append(entries, collectErrorEntries(member)...)
				}
				break
			}
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		var metadata map[string]any
		if mc, ok := current.(metadataCarrier); ok && len(mc.Metadata()) > 0 {
			metadata = mc.Metadata()
		}
		current = errors.Unwrap(current)

		if m.Message() == "" && current != nil {
			pending = mergeMetadata(pending, metadata)
			continue
		}
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: mergeMetadata(pending, metadata)})
		pending = nil
	}

	return entries
}

func mergeMetadata(into, from map[string]any) map[string]any {
	if len(from) == 0 {
		return into
	}
	if into == nil {
		into = make(map[string]any, len(from))
	}
	maps.Copy(into, from)
	return into
}

// formatErrorEntries renders entries as the main error followed by an indented list of causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "    → ", "      "
		if i == 0 {
			lead, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
