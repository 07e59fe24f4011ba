package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rules maps a field name to its pipe-delimited rule string,
// e.g. "required|string|min:3".
type Rules map[string]string

// rule is a single parsed rule: a name plus optional comma-separated args.
type rule struct {
	name string
	args []string
}

// Validate checks input against rules and returns the input unchanged when
// every field passes. On failure it returns a *Errors carrying the full
// per-field report. The input map is never mutated.
func Validate(input map[string]any, rules Rules) (map[string]any, error) {
	if input == nil {
		input = map[string]any{}
	}

	fields := make(map[string][]string)
	for field, ruleStr := range rules {
		value, present := input[field]
		msgs := applyRules(field, value, present, parseRules(ruleStr))
		if len(msgs) > 0 {
			fields[field] = msgs
		}
	}

	if len(fields) > 0 {
		return nil, &Errors{Fields: fields}
	}
	return input, nil
}

func parseRules(ruleStr string) []rule {
	parts := strings.Split(ruleStr, "|")
	parsed := make([]rule, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, argStr, hasArgs := strings.Cut(p, ":")
		r := rule{name: name}
		if hasArgs {
			r.args = strings.Split(argStr, ",")
		}
		parsed = append(parsed, r)
	}
	return parsed
}

// applyRules evaluates the field's rules in declared order. A failing
// "required" adds its one error and stops; all other failures accumulate.
func applyRules(field string, value any, present bool, rules []rule) []string {
	var msgs []string
	for _, r := range rules {
		switch r.name {
		case "required":
			if !present || value == nil || value == "" {
				return []string{fmt.Sprintf("%s is required", field)}
			}

		case "string":
			if !present {
				continue
			}
			if _, ok := value.(string); !ok {
				msgs = append(msgs, fmt.Sprintf("%s must be a string", field))
			}

		case "int":
			if !present {
				continue
			}
			if !isInt(value) {
				msgs = append(msgs, fmt.Sprintf("%s must be an integer", field))
			}

		case "bool":
			if !present {
				continue
			}
			if !isBool(value) {
				msgs = append(msgs, fmt.Sprintf("%s must be a boolean", field))
			}

		case "min":
			if !present || len(r.args) == 0 {
				continue
			}
			bound, err := strconv.Atoi(strings.TrimSpace(r.args[0]))
			if err != nil {
				continue
			}
			if msg := checkMin(field, value, bound); msg != "" {
				msgs = append(msgs, msg)
			}

		case "max":
			if !present || len(r.args) == 0 {
				continue
			}
			bound, err := strconv.Atoi(strings.TrimSpace(r.args[0]))
			if err != nil {
				continue
			}
			if msg := checkMax(field, value, bound); msg != "" {
				msgs = append(msgs, msg)
			}

		case "in":
			if !present {
				continue
			}
			if !inList(value, r.args) {
				msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.Join(r.args, ", ")))
			}
		}
	}
	return msgs
}

// isInt accepts JSON numbers with no fractional part and numeric-looking
// strings; a genuinely non-numeric string fails.
func isInt(value any) bool {
	switch v := value.(type) {
	case float64:
		return v == math.Trunc(v)
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	default:
		return false
	}
}

// isBool accepts JSON booleans and the integers 0/1.
func isBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return true
	case float64:
		return v == 0 || v == 1
	default:
		return false
	}
}

// checkMin dispatches on the value's JSON kind: character length for
// strings, numeric value for numbers. A numeric-looking string is still a
// string here. Other kinds are skipped.
func checkMin(field string, value any, bound int) string {
	switch v := value.(type) {
	case string:
		if utf8.RuneCountInString(v) < bound {
			return fmt.Sprintf("%s must be at least %d characters", field, bound)
		}
	case float64:
		if v < float64(bound) {
			return fmt.Sprintf("%s must be at least %d", field, bound)
		}
	}
	return ""
}

func checkMax(field string, value any, bound int) string {
	switch v := value.(type) {
	case string:
		if utf8.RuneCountInString(v) > bound {
			return fmt.Sprintf("%s must be at most %d characters", field, bound)
		}
	case float64:
		if v > float64(bound) {
			return fmt.Sprintf("%s must be at most %d", field, bound)
		}
	}
	return ""
}

func inList(value any, allowed []string) bool {
	repr, ok := stringify(value)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if repr == a {
			return true
		}
	}
	return false
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
