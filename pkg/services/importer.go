package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/checkpoint"
	"github.com/chatmesh/chatmesh-importer/pkg/logging"
	"github.com/chatmesh/chatmesh-importer/pkg/models"
	"github.com/chatmesh/chatmesh-importer/pkg/remote"
	"github.com/chatmesh/chatmesh-importer/pkg/repositories"
)

// ImporterDeps bundles everything the importer needs.
type ImporterDeps struct {
	Client      *remote.Client
	Checkpoints checkpoint.Store

	Orgs       repositories.OrgRepository
	Groups     repositories.GroupRepository
	Contacts   repositories.ContactRepository
	Labels     repositories.LabelRepository
	Channels   repositories.ChannelRepository
	Broadcasts repositories.BroadcastRepository
	Messages   repositories.MessageRepository
	Flows      repositories.FlowRepository
	Starts     repositories.FlowStartRepository
	Runs       repositories.FlowRunRepository
	Counts     repositories.FlowCountRepository
}

// Importer copies all remote data into the local store. Phases run in
// dependency order: groups, contacts, labels, broadcasts, messages,
// flow starts, flow runs, then the denormalized flow counters. Flows
// themselves are not copied; they must be loaded into the local store
// (via a definitions export) before the import.
type Importer struct {
	deps       ImporterDeps
	identities *IdentityCache
	groupCache *GroupNameCache
	stats      *ImportStats

	throttle time.Duration
	logger   *zap.Logger

	org  *models.Org
	user *models.User
}

// NewImporter creates an importer. throttle > 0 inserts a fixed pause
// between remote pages.
func NewImporter(deps ImporterDeps, throttle time.Duration, logger *zap.Logger) *Importer {
	return &Importer{
		deps: deps,
		identities: NewIdentityCache(
			deps.Flows, deps.Groups, deps.Contacts,
			deps.Labels, deps.Channels, deps.Starts,
		),
		groupCache: NewGroupNameCache(),
		stats:      &ImportStats{},
		throttle:   throttle,
		logger:     logger.Named("importer"),
	}
}

// checkpointEntities lists every entity the phases save resume cursors
// under; ClearCheckpoints must cover all of them.
var checkpointEntities = []string{
	"groups", "contacts", "labels", "broadcasts", "messages", "flow_starts", "runs",
}

// ClearCheckpoints drops every saved resume cursor so the next Run
// starts each entity from its first page. Use it when the local store
// was recreated and a stale checkpoint would silently skip pages.
func (imp *Importer) ClearCheckpoints(ctx context.Context) error {
	for _, entity := range checkpointEntities {
		if err := imp.deps.Checkpoints.Clear(ctx, entity); err != nil {
			return fmt.Errorf("failed to clear %s checkpoint: %w", entity, err)
		}
	}
	return nil
}

// Run executes every import phase. It returns the stats accumulated so
// far even when a phase fails, so partial progress stays visible.
func (imp *Importer) Run(ctx context.Context) (*ImportStats, error) {
	org, err := imp.deps.Orgs.DefaultOrg(ctx)
	if err != nil {
		return imp.stats, fmt.Errorf("failed to resolve default org: %w", err)
	}
	user, err := imp.deps.Orgs.DefaultUser(ctx)
	if err != nil {
		return imp.stats, fmt.Errorf("failed to resolve default user: %w", err)
	}
	imp.org, imp.user = org, user
	imp.logger.Info("importing into org",
		zap.String("org", org.Name), zap.Int64("org_id", org.ID),
		zap.String("user", user.Username))

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"groups", imp.copyGroups},
		{"contacts", imp.copyContacts},
		{"labels", imp.copyLabels},
		{"broadcasts", imp.copyBroadcasts},
		{"messages", imp.copyMessages},
		{"flow starts", imp.copyFlowStarts},
		{"flow runs", imp.copyFlowRuns},
		{"category counts", imp.rebuildCategoryCounts},
		{"run counts", imp.rebuildRunCounts},
	}
	for _, phase := range phases {
		if err := phase.run(ctx); err != nil {
			return imp.stats, fmt.Errorf("%s phase failed: %w", phase.name, err)
		}
	}

	return imp.stats, nil
}

func (imp *Importer) copyGroups(ctx context.Context) error {
	statusCodes := models.GroupStatusChoices.Inverse()

	existing, err := imp.deps.Groups.NameIDs(ctx)
	if err != nil {
		return err
	}

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "groups")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Groups(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.ContactGroup, 0, len(batch))
		for _, row := range batch {
			imp.groupCache.RecordRemote(row.Name, row.UUID)

			// Groups created ahead of the import (or by a previous,
			// interrupted one) keep their local row.
			if _, ok := existing[row.Name]; ok {
				imp.stats.GroupsSkipped++
				continue
			}

			status, ok := statusCodes[row.Status]
			if !ok {
				status = models.GroupStatusReady
			}
			queue = append(queue, &models.ContactGroup{
				OrgID:  imp.org.ID,
				Name:   row.Name,
				Query:  row.Query,
				Status: status,
				// The API does not expose the group type.
				GroupType: models.GroupTypeManual,
				CreatedBy: imp.user.ID,
				CreatedOn: time.Now().UTC(),
			})
		}

		n, err := imp.deps.Groups.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.GroupsCreated += n
		imp.logProgress("group", imp.stats.GroupsCreated)

		if err := imp.saveCursor(ctx, "groups", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	if err := imp.deps.Checkpoints.Clear(ctx, "groups"); err != nil {
		return err
	}

	// Refresh the cache from the local store so every name carries its
	// local id and uuid, for new and pre-existing groups alike.
	all, err := imp.deps.Groups.All(ctx)
	if err != nil {
		return err
	}
	for _, g := range all {
		imp.groupCache.RecordLocal(g.Name, g.ID, g.UUID.String())
	}

	return nil
}

func (imp *Importer) copyContacts(ctx context.Context) error {
	statusCodes := models.ContactStatusChoices.Inverse()

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "contacts")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Contacts(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.Contact, 0, len(batch))
		groupNames := make(map[string][]string, len(batch))
		urns := make(map[string][]string, len(batch))
		for _, row := range batch {
			cuuid, err := uuid.Parse(row.UUID)
			if err != nil {
				imp.logger.Warn("skipping contact with malformed uuid", zap.String("uuid", row.UUID))
				continue
			}
			queue = append(queue, &models.Contact{
				UUID:       cuuid,
				OrgID:      imp.org.ID,
				Name:       row.Name,
				Language:   row.Language,
				Status:     contactStatus(row, statusCodes),
				Fields:     row.Fields,
				CreatedBy:  imp.user.ID,
				CreatedOn:  row.CreatedOn,
				ModifiedOn: row.ModifiedOn,
				LastSeenOn: row.LastSeenOn,
			})

			key := cuuid.String()
			urns[key] = row.URNs
			names := make([]string, 0, len(row.Groups))
			for _, g := range row.Groups {
				names = append(names, g.Name)
			}
			groupNames[key] = names
		}

		n, err := imp.deps.Contacts.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.ContactsCreated += n
		imp.logProgress("contact", imp.stats.ContactsCreated)

		var memberships []models.ContactGroupMembership
		var urnRows []*models.ContactURN
		for _, c := range queue {
			key := c.UUID.String()
			for _, name := range groupNames[key] {
				ref, ok := imp.groupCache.Get(name)
				if !ok || ref.ID == 0 {
					imp.logger.Warn("contact references unknown group",
						zap.String("contact", key), zap.String("group", name))
					continue
				}
				memberships = append(memberships, models.ContactGroupMembership{
					ContactID: c.ID,
					GroupID:   ref.ID,
				})
			}
			for _, urn := range urns[key] {
				scheme, path := splitURN(urn)
				urnRows = append(urnRows, &models.ContactURN{
					OrgID:     imp.org.ID,
					ContactID: c.ID,
					Scheme:    scheme,
					Path:      path,
					Identity:  urn,
				})
			}
		}

		nm, err := imp.deps.Contacts.BulkCreateMemberships(ctx, memberships)
		if err != nil {
			return err
		}
		imp.stats.MembershipsCreated += nm

		nu, err := imp.deps.Contacts.BulkCreateURNs(ctx, urnRows)
		if err != nil {
			return err
		}
		imp.stats.URNsCreated += nu

		if err := imp.saveCursor(ctx, "contacts", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "contacts")
}

func (imp *Importer) copyLabels(ctx context.Context) error {
	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "labels")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Labels(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.Label, 0, len(batch))
		for _, row := range batch {
			luuid, err := uuid.Parse(row.UUID)
			if err != nil {
				imp.logger.Warn("skipping label with malformed uuid", zap.String("uuid", row.UUID))
				continue
			}
			queue = append(queue, &models.Label{
				UUID:      luuid,
				OrgID:     imp.org.ID,
				Name:      row.Name,
				CreatedBy: imp.user.ID,
				CreatedOn: time.Now().UTC(),
			})
		}

		n, err := imp.deps.Labels.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.LabelsCreated += n
		imp.logProgress("label", imp.stats.LabelsCreated)

		if err := imp.saveCursor(ctx, "labels", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "labels")
}

func (imp *Importer) copyBroadcasts(ctx context.Context) error {
	statusCodes := models.BroadcastStatusChoices.Inverse()

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "broadcasts")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Broadcasts(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.Broadcast, 0, len(batch))
		groupNames := make(map[int64][]string, len(batch))
		contactUUIDs := make(map[int64][]string, len(batch))
		urnVals := make(map[int64][]string, len(batch))
		for _, row := range batch {
			queue = append(queue, &models.Broadcast{
				ID:        row.ID,
				OrgID:     imp.org.ID,
				Text:      row.Text,
				Status:    statusCodes[row.Status],
				CreatedBy: imp.user.ID,
				CreatedOn: row.CreatedOn,
			})

			urnVals[row.ID] = row.URNs
			names := make([]string, 0, len(row.Groups))
			for _, g := range row.Groups {
				names = append(names, g.Name)
			}
			groupNames[row.ID] = names
			uuids := make([]string, 0, len(row.Contacts))
			for _, c := range row.Contacts {
				uuids = append(uuids, c.UUID)
			}
			contactUUIDs[row.ID] = uuids
		}

		n, err := imp.deps.Broadcasts.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.BroadcastsCreated += n
		imp.logProgress("broadcast", imp.stats.BroadcastsCreated)

		var groupJoins []models.BroadcastGroup
		var contactJoins []models.BroadcastContact
		var urnJoins []models.BroadcastURN
		for _, b := range queue {
			for _, name := range groupNames[b.ID] {
				ref, ok := imp.groupCache.Get(name)
				if !ok || ref.ID == 0 {
					imp.logger.Warn("broadcast references unknown group",
						zap.Int64("broadcast", b.ID), zap.String("group", name))
					continue
				}
				groupJoins = append(groupJoins, models.BroadcastGroup{BroadcastID: b.ID, GroupID: ref.ID})
			}
			for _, cuuid := range contactUUIDs[b.ID] {
				var contactID *int64
				if id, ok, err := imp.identities.ContactIDByUUID(ctx, cuuid); err != nil {
					return err
				} else if ok {
					contactID = &id
				}
				contactJoins = append(contactJoins, models.BroadcastContact{BroadcastID: b.ID, ContactID: contactID})
			}
			for _, urn := range urnVals[b.ID] {
				var urnID *int64
				if id, ok, err := imp.identities.URNIDByIdentity(ctx, urn); err != nil {
					return err
				} else if ok {
					urnID = &id
				}
				urnJoins = append(urnJoins, models.BroadcastURN{BroadcastID: b.ID, URNID: urnID})
			}
		}

		if _, err := imp.deps.Broadcasts.BulkCreateGroups(ctx, groupJoins); err != nil {
			return err
		}
		if _, err := imp.deps.Broadcasts.BulkCreateContacts(ctx, contactJoins); err != nil {
			return err
		}
		if _, err := imp.deps.Broadcasts.BulkCreateURNs(ctx, urnJoins); err != nil {
			return err
		}

		if err := imp.saveCursor(ctx, "broadcasts", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "broadcasts")
}

func (imp *Importer) copyMessages(ctx context.Context) error {
	directionCodes := models.MsgDirectionChoices.Inverse()
	typeCodes := models.MsgTypeChoices.Inverse()
	statusCodes := models.MsgStatusChoices.Inverse()
	visibilityCodes := models.MsgVisibilityChoices.Inverse()

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "messages")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Messages(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.Message, 0, len(batch))
		labelUUIDs := make(map[int64][]string, len(batch))
		for _, row := range batch {
			var contactID, urnID, channelID *int64
			if row.Contact != nil {
				if id, ok, err := imp.identities.ContactIDByUUID(ctx, row.Contact.UUID); err != nil {
					return err
				} else if ok {
					contactID = &id
				}
			}
			if row.URN != "" {
				if id, ok, err := imp.identities.URNIDByIdentity(ctx, row.URN); err != nil {
					return err
				} else if ok {
					urnID = &id
				}
			}
			if row.Channel != nil {
				if id, ok, err := imp.identities.ChannelIDByName(ctx, row.Channel.Name); err != nil {
					return err
				} else if ok {
					channelID = &id
				}
			}

			// Attachments are stored as "content_type:url". The media
			// itself stays on the remote host.
			attachments := make([]string, 0, len(row.Attachments))
			for _, a := range row.Attachments {
				attachments = append(attachments, a.ContentType+":"+a.URL)
			}

			queue = append(queue, &models.Message{
				ID:           row.ID,
				OrgID:        imp.org.ID,
				BroadcastID:  row.Broadcast,
				ContactID:    contactID,
				ContactURNID: urnID,
				ChannelID:    channelID,
				Direction:    directionCodes[row.Direction],
				MsgType:      typeCodes[row.Type],
				Status:       statusCodes[row.Status],
				Visibility:   visibilityCodes[row.Visibility],
				Text:         row.Text,
				Attachments:  attachments,
				CreatedOn:    row.CreatedOn,
				SentOn:       row.SentOn,
				ModifiedOn:   row.ModifiedOn,
			})

			uuids := make([]string, 0, len(row.Labels))
			for _, l := range row.Labels {
				uuids = append(uuids, l.UUID)
			}
			labelUUIDs[row.ID] = uuids
		}

		n, err := imp.deps.Messages.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.MessagesCreated += n
		imp.logProgress("message", imp.stats.MessagesCreated)

		var labelJoins []models.MessageLabel
		for _, m := range queue {
			for _, luuid := range labelUUIDs[m.ID] {
				var labelID *int64
				if id, ok, err := imp.identities.LabelIDByUUID(ctx, luuid); err != nil {
					return err
				} else if ok {
					labelID = &id
				}
				labelJoins = append(labelJoins, models.MessageLabel{MessageID: m.ID, LabelID: labelID})
			}
		}
		if _, err := imp.deps.Messages.BulkCreateLabels(ctx, labelJoins); err != nil {
			return err
		}

		if err := imp.saveCursor(ctx, "messages", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "messages")
}

func (imp *Importer) copyFlowStarts(ctx context.Context) error {
	statusCodes := models.FlowStartStatusChoices.Inverse()

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "flow_starts")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.FlowStarts(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.FlowStart, 0, len(batch))
		groupNames := make(map[string][]string, len(batch))
		contactUUIDs := make(map[string][]string, len(batch))
		for _, row := range batch {
			flowID, ok, err := imp.identities.FlowIDByName(ctx, row.Flow.Name)
			if err != nil {
				return err
			}
			if !ok {
				imp.stats.FlowStartsSkipped++
				imp.logger.Warn("skipping flow start, flow does not exist locally",
					zap.String("start", row.UUID), zap.String("flow", row.Flow.Name))
				continue
			}

			suuid, err := uuid.Parse(row.UUID)
			if err != nil {
				imp.stats.FlowStartsSkipped++
				imp.logger.Warn("skipping flow start with malformed uuid", zap.String("uuid", row.UUID))
				continue
			}

			queue = append(queue, &models.FlowStart{
				UUID:                suuid,
				OrgID:               imp.org.ID,
				FlowID:              flowID,
				Status:              statusCodes[row.Status],
				RestartParticipants: row.RestartParticipants,
				IncludeActive:       !row.ExcludeActive,
				Extra:               row.Extra,
				CreatedBy:           imp.user.ID,
				CreatedOn:           row.CreatedOn,
				ModifiedOn:          row.ModifiedOn,
			})

			key := suuid.String()
			names := make([]string, 0, len(row.Groups))
			for _, g := range row.Groups {
				names = append(names, g.Name)
			}
			groupNames[key] = names
			uuids := make([]string, 0, len(row.Contacts))
			for _, c := range row.Contacts {
				uuids = append(uuids, c.UUID)
			}
			contactUUIDs[key] = uuids
		}

		n, err := imp.deps.Starts.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.FlowStartsCreated += n
		imp.logProgress("flow start", imp.stats.FlowStartsCreated)

		var groupJoins []models.FlowStartGroup
		var contactJoins []models.FlowStartContact
		for _, s := range queue {
			key := s.UUID.String()
			for _, name := range groupNames[key] {
				var groupID *int64
				if id, ok, err := imp.identities.GroupIDByName(ctx, name); err != nil {
					return err
				} else if ok {
					groupID = &id
				}
				groupJoins = append(groupJoins, models.FlowStartGroup{FlowStartID: s.ID, GroupID: groupID})
			}
			for _, cuuid := range contactUUIDs[key] {
				id, ok, err := imp.identities.ContactIDByUUID(ctx, cuuid)
				if err != nil {
					return err
				}
				if !ok {
					imp.logger.Warn("flow start references unknown contact",
						zap.String("start", key), zap.String("contact", cuuid))
					continue
				}
				contactJoins = append(contactJoins, models.FlowStartContact{FlowStartID: s.ID, ContactID: id})
			}
		}

		if _, err := imp.deps.Starts.BulkCreateGroups(ctx, groupJoins); err != nil {
			return err
		}
		if _, err := imp.deps.Starts.BulkCreateContacts(ctx, contactJoins); err != nil {
			return err
		}

		if err := imp.saveCursor(ctx, "flow_starts", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "flow_starts")
}

func (imp *Importer) copyFlowRuns(ctx context.Context) error {
	flows, err := imp.deps.Flows.All(ctx)
	if err != nil {
		return err
	}
	meta := BuildFlowMetadataIndex(flows)
	translator := NewGroupRefTranslator(imp.groupCache, imp.stats, imp.logger)
	recon := NewRunReconstructor(meta, imp.identities, translator, imp.stats, imp.logger)

	// Node translations accumulate across every run of the import.
	translations := make(NodeTranslations)

	cursor, err := imp.deps.Checkpoints.Cursor(ctx, "runs")
	if err != nil {
		return err
	}

	pager := imp.deps.Client.Runs(cursor)
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		queue := make([]*models.FlowRun, 0, len(batch))
		for i := range batch {
			run, err := recon.Reconstruct(ctx, &batch[i], imp.org.ID, translations)
			if err != nil {
				return err
			}
			if run == nil {
				continue
			}
			queue = append(queue, run)
		}

		n, err := imp.deps.Runs.BulkCreate(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.RunsCreated += n
		imp.logProgress("flow run", imp.stats.RunsCreated)

		if err := imp.saveCursor(ctx, "runs", pager.Cursor()); err != nil {
			return err
		}
		imp.pause(ctx)
	}

	return imp.deps.Checkpoints.Clear(ctx, "runs")
}

func (imp *Importer) rebuildCategoryCounts(ctx context.Context) error {
	// Counts are replaced wholesale, so no resume checkpoint here.
	if err := imp.deps.Counts.DeleteCategoryCounts(ctx); err != nil {
		return err
	}
	imp.logger.Info("deleted flow category counts")

	flows, err := imp.deps.Flows.All(ctx)
	if err != nil {
		return err
	}
	meta := BuildFlowMetadataIndex(flows)

	pager := imp.deps.Client.Flows("")
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		for _, rf := range batch {
			flowID, ok, err := imp.identities.FlowIDByName(ctx, rf.Name)
			if err != nil {
				return err
			}
			if !ok {
				imp.logger.Warn("cannot find flow for category counts", zap.String("flow", rf.Name))
				continue
			}

			resultCounts, err := imp.deps.Client.FlowCategoryCounts(ctx, rf.UUID)
			if err != nil {
				imp.logger.Warn("cannot retrieve category counts",
					zap.String("flow", rf.Name),
					zap.String("error", logging.SanitizeError(err)))
				continue
			}

			var queue []*models.FlowCategoryCount
			for _, rc := range resultCounts {
				node, found := meta.NodeForResultKey(rc.Key)
				if !found {
					imp.logger.Warn("cannot translate category count node",
						zap.String("flow", rf.Name), zap.String("key", rc.Key))
					continue
				}
				for _, cat := range rc.Categories {
					queue = append(queue, &models.FlowCategoryCount{
						FlowID:       flowID,
						NodeUUID:     node,
						ResultKey:    rc.Key,
						ResultName:   rc.Name,
						CategoryName: cat.Name,
						Count:        cat.Count,
					})
				}
			}

			n, err := imp.deps.Counts.BulkCreateCategoryCounts(ctx, queue)
			if err != nil {
				return err
			}
			imp.stats.CategoryCountsCreated += n
		}

		imp.logProgress("category count", imp.stats.CategoryCountsCreated)
		imp.pause(ctx)
	}

	return nil
}

func (imp *Importer) rebuildRunCounts(ctx context.Context) error {
	if err := imp.deps.Counts.DeleteRunCounts(ctx); err != nil {
		return err
	}
	imp.logger.Info("deleted flow run counts")

	pager := imp.deps.Client.Flows("")
	for pager.HasMore() {
		batch, err := pager.Fetch(ctx)
		if err != nil {
			return err
		}

		var queue []*models.FlowRunCount
		for _, rf := range batch {
			flowID, ok, err := imp.identities.FlowIDByName(ctx, rf.Name)
			if err != nil {
				return err
			}
			if !ok {
				imp.logger.Warn("cannot find flow for run counts", zap.String("flow", rf.Name))
				continue
			}
			queue = append(queue,
				&models.FlowRunCount{FlowID: flowID, ExitType: models.RunExitCompleted, Count: rf.Runs.Completed},
				&models.FlowRunCount{FlowID: flowID, ExitType: models.RunExitInterrupted, Count: rf.Runs.Interrupted},
				&models.FlowRunCount{FlowID: flowID, ExitType: models.RunExitExpired, Count: rf.Runs.Expired},
			)
		}

		n, err := imp.deps.Counts.BulkCreateRunCounts(ctx, queue)
		if err != nil {
			return err
		}
		imp.stats.RunCountsCreated += n
		imp.logProgress("run count", imp.stats.RunCountsCreated)
		imp.pause(ctx)
	}

	return nil
}

// saveCursor checkpoints the next page of an entity once the current
// page is fully persisted, so a resumed import refetches nothing.
func (imp *Importer) saveCursor(ctx context.Context, entity, cursor string) error {
	if cursor == "" {
		return nil
	}
	return imp.deps.Checkpoints.SetCursor(ctx, entity, cursor)
}

// pause sleeps between remote pages when throttling is enabled.
func (imp *Importer) pause(ctx context.Context) {
	if imp.throttle <= 0 {
		return
	}
	imp.logger.Info("taking a pause", zap.Duration("for", imp.throttle))
	select {
	case <-ctx.Done():
	case <-time.After(imp.throttle):
	}
}

func (imp *Importer) logProgress(entity string, total int) {
	imp.logger.Info(fmt.Sprintf("total %s created", inflection.Plural(entity)), zap.Int("count", total))
}

// contactStatus derives the local status code. Installations older than
// the status field expose blocked/stopped booleans instead.
func contactStatus(row remote.Contact, codes map[string]string) string {
	if row.Status == "" {
		switch {
		case row.Blocked != nil && *row.Blocked:
			return models.ContactStatusBlocked
		case row.Stopped != nil && *row.Stopped:
			return models.ContactStatusStopped
		default:
			return models.ContactStatusActive
		}
	}
	if code, ok := codes[row.Status]; ok {
		return code
	}
	return models.ContactStatusActive
}

// splitURN splits "tel:+40721234567" into scheme and path. A URN
// without a scheme keeps everything in the path.
func splitURN(urn string) (scheme, path string) {
	if i := strings.Index(urn, ":"); i >= 0 {
		return urn[:i], urn[i+1:]
	}
	return "", urn
}
