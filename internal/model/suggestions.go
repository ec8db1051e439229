package model

// suggestionRule associates one issue code with its remediation sentence.
// Rules are held in a slice, not a map, because suggestion order is part of
// the contract: one suggestion per matched code, in table order.
type suggestionRule struct {
	code string
	text string
}

// suggestionRules is the fixed priority table for remediation suggestions.
// The highest-impact fixes come first.
var suggestionRules = []suggestionRule{
	{code: "INPUT_MISSING_LABEL", text: "Associate a descriptive label with every form input"},
	{code: "MISSING_ALT_TEXT", text: "Add alternative text to all images for screen readers"},
	{code: "LOW_CONTRAST", text: "Increase color contrast between text and background to meet WCAG AA"},
	{code: "MISSING_HEADING", text: "Structure content with a logical heading hierarchy"},
	{code: "MISSING_ARIA_LABEL", text: "Add ARIA labels to interactive elements that lack visible text"},
}

// genericSuggestions is emitted when no reported issue code matches any rule,
// including the no-issues case. Always three items, always this order.
var genericSuggestions = []string{
	"Ensure all interactive elements are reachable and operable by keyboard",
	"Test your page with a screen reader to verify the reading experience",
	"Use semantic HTML elements so assistive technology can interpret the page",
}

// BuildSuggestions derives the remediation suggestion list from raw issues.
// Only the set of distinct codes matters: order and multiplicity of the
// input never change the output. Codes without a rule contribute nothing;
// if nothing matches, the generic fallback list is returned.
func BuildSuggestions(issues []RawIssue) []string {
	present := make(map[string]bool, len(issues))
	for _, issue := range issues {
		present[issue.Type] = true
	}

	var suggestions []string
	for _, rule := range suggestionRules {
		if present[rule.code] {
			suggestions = append(suggestions, rule.text)
		}
	}

	if len(suggestions) == 0 {
		suggestions = make([]string, len(genericSuggestions))
		copy(suggestions, genericSuggestions)
	}

	return suggestions
}
