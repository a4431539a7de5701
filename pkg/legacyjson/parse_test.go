package legacyjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_PlainText(t *testing.T) {
	assert.Equal(t, "hello", Parse("hello"))
	assert.Equal(t, "Yes", Parse("Yes"))
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Parse(""))
}

func TestParse_Object(t *testing.T) {
	got := Parse("{name: UReporters, uuid: 7ed6f520-1412-4af3-b9b4-f4886be7a05a}")
	assert.Equal(t, Object{Name: "UReporters", UUID: "7ed6f520-1412-4af3-b9b4-f4886be7a05a"}, got)
}

func TestParse_ObjectWithCommaInName(t *testing.T) {
	// The name itself contains ", "; the rightmost separator anchors the
	// uuid field, which never contains one.
	got := Parse("{name: some, name, uuid: 123123123}")
	assert.Equal(t, Object{Name: "some, name", UUID: "123123123"}, got)
}

func TestParse_ListOfStrings(t *testing.T) {
	got := Parse("[a, b, c]")
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestParse_ListOfObjects(t *testing.T) {
	got := Parse("[{name: A, uuid: 1}, {name: B, uuid: 2}]")
	assert.Equal(t, []Object{
		{Name: "A", UUID: "1"},
		{Name: "B", UUID: "2"},
	}, got)
}

func TestParse_ListOfObjectsWithCommaInName(t *testing.T) {
	got := Parse("[{name: UReporters, uuid: 7ed6f520-1412-4af3-b9b4-f4886be7a05a}, {name: some, name, uuid: 123123123}]")
	assert.Equal(t, []Object{
		{Name: "UReporters", UUID: "7ed6f520-1412-4af3-b9b4-f4886be7a05a"},
		{Name: "some, name", UUID: "123123123"},
	}, got)
}

func TestParse_SingleElementObjectList(t *testing.T) {
	got := Parse("[{name: Field Workers, uuid: abc-def}]")
	assert.Equal(t, []Object{{Name: "Field Workers", UUID: "abc-def"}}, got)
}

func TestParse_UnrecognizedShapePassesThrough(t *testing.T) {
	// Unbalanced or alien shapes degrade to the original text.
	assert.Equal(t, "[unterminated", Parse("[unterminated"))
	assert.Equal(t, "12:30", Parse("12:30"))
}
