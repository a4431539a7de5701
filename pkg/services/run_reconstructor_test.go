package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/legacyjson"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
	"github.com/chatmesh/chatmesh-importer/pkg/remote"
)

const (
	runUUID1 = "0e9c2c3f-5b25-4e8b-8a6b-1d9f39c4f3aa"
	runUUID2 = "9d2c8df1-03a7-4f9e-9c86-640be5f27c88"
)

// spyTranslator records how often it is invoked and passes values
// through unchanged.
type spyTranslator struct {
	calls int
}

func (s *spyTranslator) Translate(parsed any) any {
	s.calls++
	return parsed
}

func testSurveyFlow() *models.Flow {
	return &models.Flow{
		ID:   7,
		Name: "Survey",
		Metadata: models.FlowMetadata{
			Results: []models.FlowResult{
				{Key: "color", Name: "Color", NodeUUIDs: []string{"canon-color", "stale-color"}},
				{Key: "joined", Name: "Joined", NodeUUIDs: []string{"canon-joined"}},
			},
			Dependencies: []models.FlowDependency{
				{Name: "Testers", Type: "group"},
				{Name: "Welcome", Type: "flow"},
			},
		},
	}
}

func newTestIdentities(flows []*models.Flow, contactIDs, startIDs map[string]int64) *IdentityCache {
	return NewIdentityCache(
		&mockFlowRepository{flows: flows},
		&mockGroupRepository{},
		&mockContactRepository{uuidIDs: contactIDs},
		&mockLabelRepository{},
		&mockChannelRepository{},
		&mockFlowStartRepository{uuidIDs: startIDs},
	)
}

func TestReconstructSkipsRunWithoutLocalFlow(t *testing.T) {
	stats := &ImportStats{}
	recon := NewRunReconstructor(
		BuildFlowMetadataIndex(nil),
		newTestIdentities(nil, nil, nil),
		&spyTranslator{},
		stats,
		zap.NewNop(),
	)

	run := &remote.Run{
		UUID: runUUID1,
		Flow: &remote.ObjectRef{UUID: "abc", Name: "Missing Flow"},
		Path: []remote.RunStep{{Node: "some-node", Time: time.Now()}},
	}

	got, err := recon.Reconstruct(context.Background(), run, 1, make(NodeTranslations))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, stats.RunsSkipped)
}

func TestReconstructResultsAndPath(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}

	groups := NewGroupNameCache()
	groups.RecordRemote("Testers", "old-group-uuid")
	groups.RecordLocal("Testers", 3, "new-group-uuid")

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, map[string]int64{"contact-uuid": 42}, nil),
		NewGroupRefTranslator(groups, stats, zap.NewNop()),
		stats,
		zap.NewNop(),
	)

	now := time.Now().UTC()
	exited := now.Add(time.Minute)
	run := &remote.Run{
		UUID:    runUUID1,
		Flow:    &remote.ObjectRef{Name: "Survey"},
		Contact: &remote.ObjectRef{UUID: "contact-uuid"},
		Path: []remote.RunStep{
			{Node: "old-color-node", Time: now},
			{Node: "old-joined-node", Time: now.Add(time.Second)},
			{Node: "never-seen-node", Time: now.Add(2 * time.Second)},
		},
		Values: map[string]remote.RunValue{
			"color": {
				Name:     "Color",
				Node:     "old-color-node",
				Time:     now,
				Input:    "blue",
				Value:    "blue",
				Category: "Blue",
			},
			"joined": {
				Name:     "Joined",
				Node:     "old-joined-node",
				Time:     now.Add(time.Second),
				Input:    "[{name: Testers, uuid: old-group-uuid}]",
				Value:    "{name: Testers, uuid: old-group-uuid}",
				Category: "Testers",
			},
		},
		Responded: true,
		CreatedOn: now,
		ExitedOn:  &exited,
		ExitType:  "completed",
	}

	translations := make(NodeTranslations)
	got, err := recon.Reconstruct(context.Background(), run, 1, translations)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(7), got.FlowID)
	require.NotNil(t, got.ContactID)
	assert.Equal(t, int64(42), *got.ContactID)
	assert.Nil(t, got.StartID)
	assert.Equal(t, models.RunExitCompleted, got.Status)

	// Results re-keyed to canonical nodes, with the first listed node
	// winning for multi-node results.
	require.Len(t, got.Results, 2)
	assert.Equal(t, "canon-color", got.Results["color"].NodeUUID)
	assert.Equal(t, "canon-joined", got.Results["joined"].NodeUUID)
	assert.Equal(t, "blue", got.Results["color"].Value)

	// Group references rewritten to the locally minted uuid.
	assert.Equal(t,
		[]legacyjson.Object{{Name: "Testers", UUID: "new-group-uuid"}},
		got.Results["joined"].Input)
	assert.Equal(t,
		legacyjson.Object{Name: "Testers", UUID: "new-group-uuid"},
		got.Results["joined"].Value)

	// Path keeps only translatable steps and relinks exits: every step
	// exits toward the node of the following step, the last exit is nil.
	require.Len(t, got.Path, 2)
	assert.Equal(t, "canon-color", got.Path[0].NodeUUID)
	require.NotNil(t, got.Path[0].ExitUUID)
	assert.Equal(t, got.Path[1].NodeUUID, *got.Path[0].ExitUUID)
	assert.Equal(t, "canon-joined", got.Path[1].NodeUUID)
	assert.Nil(t, got.Path[1].ExitUUID)

	assert.Equal(t, 0, stats.RunsSkipped)
	assert.Equal(t, 0, stats.GroupRefMisses)
}

func TestReconstructTranslatorOnlyCalledForGroupResults(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}
	spy := &spyTranslator{}

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, nil, nil),
		spy,
		stats,
		zap.NewNop(),
	)

	run := &remote.Run{
		UUID: runUUID1,
		Flow: &remote.ObjectRef{Name: "Survey"},
		Values: map[string]remote.RunValue{
			"color": {Node: "n1", Input: "red", Value: "red", Category: "Red"},
			"joined": {
				Node:     "n2",
				Input:    "{name: Testers, uuid: x}",
				Value:    "{name: Testers, uuid: x}",
				Category: "Testers",
			},
		},
	}

	_, err := recon.Reconstruct(context.Background(), run, 1, make(NodeTranslations))
	require.NoError(t, err)

	// Input and value of the single group-typed result, nothing else.
	assert.Equal(t, 2, spy.calls)
}

func TestReconstructUnknownResultKeyFallsBack(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, nil, nil),
		&spyTranslator{},
		stats,
		zap.NewNop(),
	)

	run := &remote.Run{
		UUID: runUUID1,
		Flow: &remote.ObjectRef{Name: "Survey"},
		Values: map[string]remote.RunValue{
			"undeclared": {Node: "remote-node", Input: "x", Value: "x", Category: "Other"},
		},
		Path: []remote.RunStep{{Node: "remote-node", Time: time.Now()}},
	}

	translations := make(NodeTranslations)
	got, err := recon.Reconstruct(context.Background(), run, 1, translations)
	require.NoError(t, err)
	require.NotNil(t, got)

	// The remote node uuid is kept as-is and still becomes a (identity)
	// translation, so the path step survives.
	assert.Equal(t, "remote-node", got.Results["undeclared"].NodeUUID)
	require.Len(t, got.Path, 1)
	assert.Equal(t, "remote-node", got.Path[0].NodeUUID)
	assert.Equal(t, 1, stats.ResultNodeFallbacks)
}

func TestReconstructSharesTranslationsAcrossRuns(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, nil, nil),
		&spyTranslator{},
		stats,
		zap.NewNop(),
	)

	translations := make(NodeTranslations)

	first := &remote.Run{
		UUID: runUUID1,
		Flow: &remote.ObjectRef{Name: "Survey"},
		Values: map[string]remote.RunValue{
			"color": {Node: "old-color-node", Input: "red", Value: "red", Category: "Red"},
		},
	}
	_, err := recon.Reconstruct(context.Background(), first, 1, translations)
	require.NoError(t, err)

	// The second run captured no values, so its path can only be
	// relinked through translations learned from the first run.
	second := &remote.Run{
		UUID: runUUID2,
		Flow: &remote.ObjectRef{Name: "Survey"},
		Path: []remote.RunStep{{Node: "old-color-node", Time: time.Now()}},
	}
	got, err := recon.Reconstruct(context.Background(), second, 1, translations)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Len(t, got.Path, 1)
	assert.Equal(t, "canon-color", got.Path[0].NodeUUID)
}

func TestReconstructUnknownExitTypeKeepsRunAsActive(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, nil, nil),
		&spyTranslator{},
		stats,
		zap.NewNop(),
	)

	run := &remote.Run{
		UUID:     runUUID1,
		Flow:     &remote.ObjectRef{Name: "Survey"},
		ExitType: "vanished",
	}

	got, err := recon.Reconstruct(context.Background(), run, 1, make(NodeTranslations))
	require.NoError(t, err)
	require.NotNil(t, got)

	// An exit type the local store has no code for degrades to the
	// active status instead of dropping the run.
	assert.Equal(t, "", got.Status)
	assert.Equal(t, 0, stats.RunsSkipped)
}

func TestReconstructUnresolvedContactAndStartAreNull(t *testing.T) {
	flow := testSurveyFlow()
	stats := &ImportStats{}

	recon := NewRunReconstructor(
		BuildFlowMetadataIndex([]*models.Flow{flow}),
		newTestIdentities([]*models.Flow{flow}, nil, nil),
		&spyTranslator{},
		stats,
		zap.NewNop(),
	)

	run := &remote.Run{
		UUID:    runUUID1,
		Flow:    &remote.ObjectRef{Name: "Survey"},
		Contact: &remote.ObjectRef{UUID: "unknown-contact"},
		Start:   &remote.ObjectRef{UUID: "unknown-start"},
	}

	got, err := recon.Reconstruct(context.Background(), run, 1, make(NodeTranslations))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Nil(t, got.ContactID)
	assert.Nil(t, got.StartID)
	assert.Equal(t, "", got.Status)
}
