package notion

// Structured query construction. This grammar is property-name plus
// condition-operator objects and shares nothing with the formula
// strings the flat-record backend uses.

type sortSpec struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

func sortBy(property string, ascending bool) []sortSpec {
	direction := "descending"
	if ascending {
		direction = "ascending"
	}
	return []sortSpec{{Property: property, Direction: direction}}
}

func selectDoesNotEqual(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"does_not_equal": value},
	}
}

func relationContains(property, id string) map[string]any {
	return map[string]any{
		"property": property,
		"relation": map[string]any{"contains": id},
	}
}

func titleContains(property, term string) map[string]any {
	return map[string]any{
		"property": property,
		"title":    map[string]any{"contains": term},
	}
}

func richTextContains(property, term string) map[string]any {
	return map[string]any{
		"property":  property,
		"rich_text": map[string]any{"contains": term},
	}
}

// allOf combines conditions: nil for none, the condition itself for one,
// a compound "and" object otherwise.
func allOf(conditions ...map[string]any) map[string]any {
	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return conditions[0]
	default:
		return map[string]any{"and": conditions}
	}
}
