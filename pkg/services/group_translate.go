package services

import (
	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/legacyjson"
)

// GroupRefTranslator rewrites group references inside parsed legacy
// values so their uuid fields point at locally minted groups. Callers
// must only invoke it on values whose result category matches a
// group-typed dependency; the translator does not check that itself.
type GroupRefTranslator interface {
	Translate(parsed any) any
}

type groupRefTranslator struct {
	groups *GroupNameCache
	stats  *ImportStats
	logger *zap.Logger
}

// NewGroupRefTranslator creates a translator backed by the group-name
// cache.
func NewGroupRefTranslator(groups *GroupNameCache, stats *ImportStats, logger *zap.Logger) GroupRefTranslator {
	return &groupRefTranslator{
		groups: groups,
		stats:  stats,
		logger: logger.Named("groups"),
	}
}

var _ GroupRefTranslator = (*groupRefTranslator)(nil)

func (t *groupRefTranslator) Translate(parsed any) any {
	switch v := parsed.(type) {
	case legacyjson.Object:
		return t.translateObject(v)
	case []legacyjson.Object:
		out := make([]legacyjson.Object, len(v))
		for i, obj := range v {
			out[i] = t.translateObject(obj)
		}
		return out
	default:
		// Plain strings and string lists carry no uuid fields.
		return parsed
	}
}

func (t *groupRefTranslator) translateObject(obj legacyjson.Object) legacyjson.Object {
	if obj.UUID == "" {
		return obj
	}

	ref, ok := t.groups.Get(obj.Name)
	if !ok || ref.UUID == "" {
		t.stats.GroupRefMisses++
		t.logger.Warn("cannot translate group reference", zap.String("group", obj.Name))
		return obj
	}

	obj.UUID = ref.UUID
	return obj
}
