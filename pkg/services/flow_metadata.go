package services

import (
	"github.com/chatmesh/chatmesh-importer/pkg/models"
)

// FlowMetadataIndex answers two questions about the locally persisted
// flows: which node a result key canonically belongs to, and which of a
// flow's dependencies a result category corresponds to. It is built
// once per import by a single read-only scan of every flow.
type FlowMetadataIndex struct {
	resultKeyNode map[string]string
	flowDeps      map[int64]map[string]models.FlowDependency
}

// BuildFlowMetadataIndex indexes the given flows. A result can be
// associated with several nodes across flow revisions; the first node
// listed is treated as canonical. Flows with empty metadata simply
// contribute nothing.
func BuildFlowMetadataIndex(flows []*models.Flow) *FlowMetadataIndex {
	idx := &FlowMetadataIndex{
		resultKeyNode: make(map[string]string),
		flowDeps:      make(map[int64]map[string]models.FlowDependency),
	}

	for _, flow := range flows {
		for _, r := range flow.Metadata.Results {
			if r.Key == "" || len(r.NodeUUIDs) == 0 {
				continue
			}
			idx.resultKeyNode[r.Key] = r.NodeUUIDs[0]
		}

		deps := make(map[string]models.FlowDependency, len(flow.Metadata.Dependencies))
		for _, d := range flow.Metadata.Dependencies {
			deps[d.Name] = d
		}
		idx.flowDeps[flow.ID] = deps
	}

	return idx
}

// NodeForResultKey returns the canonical node uuid for a result key.
func (idx *FlowMetadataIndex) NodeForResultKey(key string) (string, bool) {
	node, ok := idx.resultKeyNode[key]
	return node, ok
}

// DependenciesFor returns the name -> dependency index of one flow. The
// returned map may be nil for flows without metadata; lookups on it
// still behave.
func (idx *FlowMetadataIndex) DependenciesFor(flowID int64) map[string]models.FlowDependency {
	return idx.flowDeps[flowID]
}
