package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/legacyjson"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
	"github.com/chatmesh/chatmesh-importer/pkg/remote"
)

// NodeTranslations remembers which canonical node uuid a remote node
// uuid was rewritten to. The map is shared across every run of one
// import: runs of the same flow visit the same nodes, so a translation
// learned from one run's results relinks the paths of later runs too.
type NodeTranslations map[string]string

// RunReconstructor rebuilds local flow run rows from remote run
// records: results re-keyed to canonical nodes, legacy text payloads
// parsed, group references translated, and the path relinked through
// exit uuids.
type RunReconstructor struct {
	meta       *FlowMetadataIndex
	identities *IdentityCache
	translator GroupRefTranslator
	stats      *ImportStats
	exitCodes  map[string]string
	logger     *zap.Logger
}

// NewRunReconstructor creates a reconstructor.
func NewRunReconstructor(
	meta *FlowMetadataIndex,
	identities *IdentityCache,
	translator GroupRefTranslator,
	stats *ImportStats,
	logger *zap.Logger,
) *RunReconstructor {
	return &RunReconstructor{
		meta:       meta,
		identities: identities,
		translator: translator,
		stats:      stats,
		exitCodes:  models.RunExitTypeChoices.Inverse(),
		logger:     logger.Named("runs"),
	}
}

// Reconstruct rebuilds one run. It returns nil without error when the
// run's owning flow cannot be resolved locally, which is the only
// condition that drops a run; every other degradation keeps the run and
// nulls or falls back the affected field.
func (r *RunReconstructor) Reconstruct(ctx context.Context, run *remote.Run, orgID int64, translations NodeTranslations) (*models.FlowRun, error) {
	var flowID int64
	var ok bool
	var err error
	flowName := ""
	if run.Flow != nil {
		flowName = run.Flow.Name
		flowID, ok, err = r.identities.FlowIDByName(ctx, flowName)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		r.stats.RunsSkipped++
		r.logger.Warn("skipping run, flow does not exist locally",
			zap.String("run", run.UUID), zap.String("flow", flowName))
		return nil, nil
	}

	runUUID, err := uuid.Parse(run.UUID)
	if err != nil {
		r.stats.RunsSkipped++
		r.logger.Warn("skipping run with malformed uuid", zap.String("run", run.UUID))
		return nil, nil
	}

	deps := r.meta.DependenciesFor(flowID)

	// Results are keyed by result key; iterate them sorted so node
	// translations are learned in a deterministic order.
	keys := make([]string, 0, len(run.Values))
	for k := range run.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make(map[string]models.RunResult, len(run.Values))
	for _, k := range keys {
		v := run.Values[k]

		input := legacyjson.Parse(v.Input)
		value := legacyjson.Parse(v.Value)

		// A result category naming a group-typed dependency means the
		// captured payloads carry group references.
		if dep, isDep := deps[v.Category]; isDep && dep.Type == models.DependencyTypeGroup {
			input = r.translator.Translate(input)
			value = r.translator.Translate(value)
		}

		node, found := r.meta.NodeForResultKey(k)
		if !found {
			node = v.Node
			r.stats.ResultNodeFallbacks++
			r.logger.Warn("cannot translate result node uuid", zap.String("key", k))
		}
		translations[v.Node] = node

		results[k] = models.RunResult{
			NodeUUID:  node,
			Name:      v.Name,
			CreatedOn: v.Time,
			Input:     input,
			Value:     value,
			Category:  v.Category,
		}
	}

	// Steps whose node never appeared in any result so far have no
	// translation and are dropped: their uuid is meaningless locally.
	path := make([]models.PathStep, 0, len(run.Path))
	for _, step := range run.Path {
		node, found := translations[step.Node]
		if !found {
			continue
		}
		path = append(path, models.PathStep{NodeUUID: node, ArrivedOn: step.Time})
	}

	// Each step exits toward the node of the step that follows it; the
	// final step keeps a nil exit.
	for i := 1; i < len(path); i++ {
		exit := path[i].NodeUUID
		path[i-1].ExitUUID = &exit
	}

	var contactID *int64
	if run.Contact != nil {
		id, found, err := r.identities.ContactIDByUUID(ctx, run.Contact.UUID)
		if err != nil {
			return nil, err
		}
		if found {
			contactID = &id
		}
	}

	var startID *int64
	if run.Start != nil {
		id, found, err := r.identities.StartIDByUUID(ctx, run.Start.UUID)
		if err != nil {
			return nil, err
		}
		if found {
			startID = &id
		}
	}

	status := ""
	if run.ExitType != "" {
		code, known := r.exitCodes[run.ExitType]
		if !known {
			r.logger.Warn("unknown run exit type, keeping run as active",
				zap.String("run", run.UUID), zap.String("exit_type", run.ExitType))
		}
		status = code
	}

	return &models.FlowRun{
		UUID:       runUUID,
		OrgID:      orgID,
		FlowID:     flowID,
		ContactID:  contactID,
		StartID:    startID,
		Responded:  run.Responded,
		Path:       path,
		Results:    results,
		Status:     status,
		CreatedOn:  run.CreatedOn,
		ModifiedOn: run.ModifiedOn,
		ExitedOn:   run.ExitedOn,
	}, nil
}
