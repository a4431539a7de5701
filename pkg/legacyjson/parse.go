// Package legacyjson parses the unquoted pseudo-JSON dialect that older
// installations used to serialize captured flow-run values. The dialect
// keeps JSON's bracket syntax but drops all quoting:
//
//	[{name: UReporters, uuid: 7ed6f520-1412-4af3-b9b4-f4886be7a05a}, {name: some, name, uuid: 123}]
//
// which this package turns into
//
//	[]Object{{Name: "UReporters", UUID: "7ed6f520-..."}, {Name: "some, name", UUID: "123"}}
package legacyjson

import "strings"

// Object is a name/uuid pair as written by the legacy serializer.
type Object struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// Parse converts legacy pseudo-JSON text into a typed value: a plain
// string, an Object, a []string, or a []Object. Input that does not look
// like the dialect is returned unchanged, including the empty string.
// Parse never fails; a single unparseable value must not abort an import.
func Parse(input string) any {
	if input == "" {
		return input
	}

	if strings.HasPrefix(input, "[") && strings.HasSuffix(input, "]") {
		inner := input[1 : len(input)-1]

		if !strings.HasPrefix(inner, "{") || !strings.HasSuffix(inner, "}") {
			// A list of plain texts.
			return strings.Split(inner, ", ")
		}

		// A list of objects. Splitting on "}, " drops the closing brace
		// from every element but the last, so it is re-appended.
		parts := strings.Split(inner, "}, ")
		result := make([]Object, 0, len(parts))
		for i, part := range parts {
			if i < len(parts)-1 {
				part += "}"
			}
			result = append(result, parseObject(part))
		}
		return result
	}

	if strings.HasPrefix(input, "{") && strings.HasSuffix(input, "}") {
		return parseObject(input)
	}

	return input
}

// parseObject parses "{name: X, uuid: Y}". Names may legally contain
// ", " themselves, so the split anchors on the rightmost separator: the
// uuid field is always last and never contains it.
func parseObject(text string) Object {
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}")

	name, uuid := "", inner
	if idx := strings.LastIndex(inner, ", "); idx >= 0 {
		name, uuid = inner[:idx], inner[idx+2:]
	}

	return Object{
		Name: strings.TrimPrefix(name, "name: "),
		UUID: strings.TrimPrefix(uuid, "uuid: "),
	}
}
