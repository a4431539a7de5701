package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chatmesh/chatmesh-importer/pkg/apperrors"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
	"github.com/chatmesh/chatmesh-importer/pkg/repositories"
)

type mockOrgRepository struct {
	org  *models.Org
	user *models.User
}

var _ repositories.OrgRepository = (*mockOrgRepository)(nil)

func (m *mockOrgRepository) DefaultOrg(context.Context) (*models.Org, error) {
	if m.org == nil {
		return nil, apperrors.ErrNoDefaultOrg
	}
	return m.org, nil
}

func (m *mockOrgRepository) DefaultUser(context.Context) (*models.User, error) {
	if m.user == nil {
		return nil, apperrors.ErrNoDefaultUser
	}
	return m.user, nil
}

type mockFlowRepository struct {
	flows []*models.Flow
}

var _ repositories.FlowRepository = (*mockFlowRepository)(nil)

func (m *mockFlowRepository) All(context.Context) ([]*models.Flow, error) {
	return m.flows, nil
}

func (m *mockFlowRepository) NameIDs(context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(m.flows))
	for _, f := range m.flows {
		ids[f.Name] = f.ID
	}
	return ids, nil
}

type mockGroupRepository struct {
	created []*models.ContactGroup
	all     []*models.ContactGroup
	nextID  int64
}

var _ repositories.GroupRepository = (*mockGroupRepository)(nil)

func (m *mockGroupRepository) BulkCreate(_ context.Context, groups []*models.ContactGroup) (int, error) {
	for _, g := range groups {
		m.nextID++
		g.ID = m.nextID
		g.UUID = uuid.New()
		m.created = append(m.created, g)
		m.all = append(m.all, g)
	}
	return len(groups), nil
}

func (m *mockGroupRepository) All(context.Context) ([]*models.ContactGroup, error) {
	return m.all, nil
}

func (m *mockGroupRepository) NameIDs(context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(m.all))
	for _, g := range m.all {
		ids[g.Name] = g.ID
	}
	return ids, nil
}

type mockContactRepository struct {
	uuidIDs     map[string]int64
	urnIDs      map[string]int64
	created     []*models.Contact
	urns        []*models.ContactURN
	memberships []models.ContactGroupMembership
	nextID      int64
}

var _ repositories.ContactRepository = (*mockContactRepository)(nil)

func (m *mockContactRepository) BulkCreate(_ context.Context, contacts []*models.Contact) (int, error) {
	for _, c := range contacts {
		m.nextID++
		c.ID = m.nextID
		m.created = append(m.created, c)
	}
	return len(contacts), nil
}

func (m *mockContactRepository) BulkCreateURNs(_ context.Context, urns []*models.ContactURN) (int, error) {
	m.urns = append(m.urns, urns...)
	return len(urns), nil
}

func (m *mockContactRepository) BulkCreateMemberships(_ context.Context, memberships []models.ContactGroupMembership) (int, error) {
	m.memberships = append(m.memberships, memberships...)
	return len(memberships), nil
}

func (m *mockContactRepository) UUIDIDs(context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(m.uuidIDs)+len(m.created))
	for k, v := range m.uuidIDs {
		ids[k] = v
	}
	for _, c := range m.created {
		ids[c.UUID.String()] = c.ID
	}
	return ids, nil
}

func (m *mockContactRepository) URNIdentityIDs(context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(m.urnIDs)+len(m.urns))
	for k, v := range m.urnIDs {
		ids[k] = v
	}
	for i, u := range m.urns {
		ids[u.Identity] = int64(i + 1)
	}
	return ids, nil
}

type mockLabelRepository struct {
	uuidIDs map[string]int64
	created []*models.Label
}

var _ repositories.LabelRepository = (*mockLabelRepository)(nil)

func (m *mockLabelRepository) BulkCreate(_ context.Context, labels []*models.Label) (int, error) {
	m.created = append(m.created, labels...)
	return len(labels), nil
}

func (m *mockLabelRepository) UUIDIDs(context.Context) (map[string]int64, error) {
	if m.uuidIDs == nil {
		return map[string]int64{}, nil
	}
	return m.uuidIDs, nil
}

type mockChannelRepository struct {
	nameIDs map[string]int64
}

var _ repositories.ChannelRepository = (*mockChannelRepository)(nil)

func (m *mockChannelRepository) NameIDs(context.Context) (map[string]int64, error) {
	if m.nameIDs == nil {
		return map[string]int64{}, nil
	}
	return m.nameIDs, nil
}

type mockBroadcastRepository struct {
	created      []*models.Broadcast
	groupJoins   []models.BroadcastGroup
	contactJoins []models.BroadcastContact
	urnJoins     []models.BroadcastURN
}

var _ repositories.BroadcastRepository = (*mockBroadcastRepository)(nil)

func (m *mockBroadcastRepository) BulkCreate(_ context.Context, broadcasts []*models.Broadcast) (int, error) {
	m.created = append(m.created, broadcasts...)
	return len(broadcasts), nil
}

func (m *mockBroadcastRepository) BulkCreateGroups(_ context.Context, rows []models.BroadcastGroup) (int, error) {
	m.groupJoins = append(m.groupJoins, rows...)
	return len(rows), nil
}

func (m *mockBroadcastRepository) BulkCreateContacts(_ context.Context, rows []models.BroadcastContact) (int, error) {
	m.contactJoins = append(m.contactJoins, rows...)
	return len(rows), nil
}

func (m *mockBroadcastRepository) BulkCreateURNs(_ context.Context, rows []models.BroadcastURN) (int, error) {
	m.urnJoins = append(m.urnJoins, rows...)
	return len(rows), nil
}

type mockMessageRepository struct {
	created    []*models.Message
	labelJoins []models.MessageLabel
}

var _ repositories.MessageRepository = (*mockMessageRepository)(nil)

func (m *mockMessageRepository) BulkCreate(_ context.Context, messages []*models.Message) (int, error) {
	m.created = append(m.created, messages...)
	return len(messages), nil
}

func (m *mockMessageRepository) BulkCreateLabels(_ context.Context, rows []models.MessageLabel) (int, error) {
	m.labelJoins = append(m.labelJoins, rows...)
	return len(rows), nil
}

type mockFlowStartRepository struct {
	uuidIDs      map[string]int64
	created      []*models.FlowStart
	groupJoins   []models.FlowStartGroup
	contactJoins []models.FlowStartContact
	nextID       int64
}

var _ repositories.FlowStartRepository = (*mockFlowStartRepository)(nil)

func (m *mockFlowStartRepository) BulkCreate(_ context.Context, starts []*models.FlowStart) (int, error) {
	for _, s := range starts {
		m.nextID++
		s.ID = m.nextID
		m.created = append(m.created, s)
	}
	return len(starts), nil
}

func (m *mockFlowStartRepository) BulkCreateGroups(_ context.Context, rows []models.FlowStartGroup) (int, error) {
	m.groupJoins = append(m.groupJoins, rows...)
	return len(rows), nil
}

func (m *mockFlowStartRepository) BulkCreateContacts(_ context.Context, rows []models.FlowStartContact) (int, error) {
	m.contactJoins = append(m.contactJoins, rows...)
	return len(rows), nil
}

func (m *mockFlowStartRepository) UUIDIDs(context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(m.uuidIDs)+len(m.created))
	for k, v := range m.uuidIDs {
		ids[k] = v
	}
	for _, s := range m.created {
		ids[s.UUID.String()] = s.ID
	}
	return ids, nil
}

type mockFlowRunRepository struct {
	created []*models.FlowRun
}

var _ repositories.FlowRunRepository = (*mockFlowRunRepository)(nil)

func (m *mockFlowRunRepository) BulkCreate(_ context.Context, runs []*models.FlowRun) (int, error) {
	m.created = append(m.created, runs...)
	return len(runs), nil
}

type mockFlowCountRepository struct {
	categoryCounts        []*models.FlowCategoryCount
	runCounts             []*models.FlowRunCount
	categoryCountsDeleted bool
	runCountsDeleted      bool
}

var _ repositories.FlowCountRepository = (*mockFlowCountRepository)(nil)

func (m *mockFlowCountRepository) DeleteCategoryCounts(context.Context) error {
	m.categoryCountsDeleted = true
	m.categoryCounts = nil
	return nil
}

func (m *mockFlowCountRepository) BulkCreateCategoryCounts(_ context.Context, counts []*models.FlowCategoryCount) (int, error) {
	m.categoryCounts = append(m.categoryCounts, counts...)
	return len(counts), nil
}

func (m *mockFlowCountRepository) DeleteRunCounts(context.Context) error {
	m.runCountsDeleted = true
	m.runCounts = nil
	return nil
}

func (m *mockFlowCountRepository) BulkCreateRunCounts(_ context.Context, counts []*models.FlowRunCount) (int, error) {
	m.runCounts = append(m.runCounts, counts...)
	return len(counts), nil
}
