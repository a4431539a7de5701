package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/legacyjson"
)

func newTestTranslator() (GroupRefTranslator, *ImportStats) {
	cache := NewGroupNameCache()
	cache.RecordRemote("Testers", "old-uuid")
	cache.RecordLocal("Testers", 1, "new-uuid")
	stats := &ImportStats{}
	return NewGroupRefTranslator(cache, stats, zap.NewNop()), stats
}

func TestTranslateSingleObject(t *testing.T) {
	tr, stats := newTestTranslator()

	got := tr.Translate(legacyjson.Object{Name: "Testers", UUID: "old-uuid"})
	assert.Equal(t, legacyjson.Object{Name: "Testers", UUID: "new-uuid"}, got)
	assert.Equal(t, 0, stats.GroupRefMisses)
}

func TestTranslateObjectList(t *testing.T) {
	tr, stats := newTestTranslator()

	got := tr.Translate([]legacyjson.Object{
		{Name: "Testers", UUID: "old-uuid"},
		{Name: "Unknown", UUID: "other-uuid"},
	})

	// Known names are rewritten, unknown names are left untouched and
	// counted.
	assert.Equal(t, []legacyjson.Object{
		{Name: "Testers", UUID: "new-uuid"},
		{Name: "Unknown", UUID: "other-uuid"},
	}, got)
	assert.Equal(t, 1, stats.GroupRefMisses)
}

func TestTranslatePassesThroughNonObjects(t *testing.T) {
	tr, stats := newTestTranslator()

	assert.Equal(t, "plain text", tr.Translate("plain text"))
	assert.Equal(t, []string{"a", "b"}, tr.Translate([]string{"a", "b"}))
	assert.Nil(t, tr.Translate(nil))

	// Objects without a uuid field are not references.
	got := tr.Translate(legacyjson.Object{Name: "Testers"})
	assert.Equal(t, legacyjson.Object{Name: "Testers"}, got)

	assert.Equal(t, 0, stats.GroupRefMisses)
}
