package help

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatText formats a TopicResult for terminal output
func FormatText(result *TopicResult) string {
	var sb strings.Builder

	switch result.Kind {
	case "type":
		formatTypeText(&sb, result)
	case "type-list":
		formatTypeListText(&sb, result)
	case "error", "error-list":
		formatErrorsText(&sb, result)
	default:
		fmt.Fprintf(&sb, "Unknown result kind: %s\n", result.Kind)
	}

	return sb.String()
}

// FormatJSON formats a TopicResult as JSON
func FormatJSON(result *TopicResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// formatTypeText formats type help output
func formatTypeText(sb *strings.Builder, result *TopicResult) {
	fmt.Fprintf(sb, "Type: %s\n", result.Name)
	if result.Description != "" {
		fmt.Fprintf(sb, "\n%s\n", result.Description)
	}

	if len(result.Methods) == 0 {
		sb.WriteString("\n(no methods)\n")
		return
	}

	sb.WriteString("\nMethods:\n")

	maxLen := 0
	for _, m := range result.Methods {
		maxLen = max(maxLen, len(signature(m.Name, m.Arity)))
	}
	for _, m := range result.Methods {
		display := signature(m.Name, m.Arity)
		padding := strings.Repeat(" ", maxLen-len(display)+2)
		fmt.Fprintf(sb, "  %s%s%s\n", display, padding, m.Description)
	}
}

// formatTypeListText formats the types list output
func formatTypeListText(sb *strings.Builder, result *TopicResult) {
	sb.WriteString("Available Types\n")
	sb.WriteString("===============\n\n")
	for _, name := range result.TypeNames {
		fmt.Fprintf(sb, "  %-10s %s\n", name, typeDescriptions[name])
	}
	sb.WriteString("\nUse 'sauce describe <type>' for the methods of a type.\n")
}

// formatErrorsText formats one or more catalog errors
func formatErrorsText(sb *strings.Builder, result *TopicResult) {
	if result.Kind == "error-list" {
		sb.WriteString("Errors\n")
		sb.WriteString("======\n\n")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(sb, "%s (%s)\n  %s\n", e.Code, e.Class, e.Template)
		for _, h := range e.Hints {
			fmt.Fprintf(sb, "  hint: %s\n", h)
		}
	}
}

func signature(name, arity string) string {
	return fmt.Sprintf("%s(%s)", name, arityToParams(arity))
}

// arityToParams converts an arity string to a parameter representation
func arityToParams(arity string) string {
	switch arity {
	case "", "0":
		return ""
	case "1":
		return "arg"
	case "2":
		return "arg1, arg2"
	case "0-1":
		return "arg?"
	case "1-2":
		return "arg1, arg2?"
	case "0-2":
		return "arg1?, arg2?"
	case "1+":
		return "arg, ..."
	case "2+":
		return "arg1, arg2, ..."
	case "0+":
		return "..."
	default:
		return "..."
	}
}
