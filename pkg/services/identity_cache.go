package services

import (
	"context"
	"fmt"

	"github.com/chatmesh/chatmesh-importer/pkg/repositories"
)

// IdentityCache resolves remote natural keys to local ids. Each
// projection is bulk loaded from the local store on first use and
// answered from memory afterwards; a missing key is an answer, never an
// error. Lookups are not safe for concurrent use, which matches the
// single-threaded import loop.
type IdentityCache struct {
	flows    repositories.FlowRepository
	groups   repositories.GroupRepository
	contacts repositories.ContactRepository
	labels   repositories.LabelRepository
	channels repositories.ChannelRepository
	starts   repositories.FlowStartRepository

	flowIDs    map[string]int64
	groupIDs   map[string]int64
	contactIDs map[string]int64
	urnIDs     map[string]int64
	labelIDs   map[string]int64
	channelIDs map[string]int64
	startIDs   map[string]int64
}

// NewIdentityCache creates a cache over the given repositories. Nothing
// is loaded until the first lookup of each kind.
func NewIdentityCache(
	flows repositories.FlowRepository,
	groups repositories.GroupRepository,
	contacts repositories.ContactRepository,
	labels repositories.LabelRepository,
	channels repositories.ChannelRepository,
	starts repositories.FlowStartRepository,
) *IdentityCache {
	return &IdentityCache{
		flows:    flows,
		groups:   groups,
		contacts: contacts,
		labels:   labels,
		channels: channels,
		starts:   starts,
	}
}

// FlowIDByName resolves a flow name to its local id.
func (c *IdentityCache) FlowIDByName(ctx context.Context, name string) (int64, bool, error) {
	if c.flowIDs == nil {
		m, err := c.flows.NameIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load flow ids: %w", err)
		}
		c.flowIDs = m
	}
	id, ok := c.flowIDs[name]
	return id, ok, nil
}

// GroupIDByName resolves a group name to its local id.
func (c *IdentityCache) GroupIDByName(ctx context.Context, name string) (int64, bool, error) {
	if c.groupIDs == nil {
		m, err := c.groups.NameIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load group ids: %w", err)
		}
		c.groupIDs = m
	}
	id, ok := c.groupIDs[name]
	return id, ok, nil
}

// ContactIDByUUID resolves a contact uuid to its local id. Contact
// uuids are carried over unchanged by the import, so the remote uuid is
// a valid key.
func (c *IdentityCache) ContactIDByUUID(ctx context.Context, uuid string) (int64, bool, error) {
	if c.contactIDs == nil {
		m, err := c.contacts.UUIDIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load contact ids: %w", err)
		}
		c.contactIDs = m
	}
	id, ok := c.contactIDs[uuid]
	return id, ok, nil
}

// URNIDByIdentity resolves a URN identity string to its local id.
func (c *IdentityCache) URNIDByIdentity(ctx context.Context, identity string) (int64, bool, error) {
	if c.urnIDs == nil {
		m, err := c.contacts.URNIdentityIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load URN ids: %w", err)
		}
		c.urnIDs = m
	}
	id, ok := c.urnIDs[identity]
	return id, ok, nil
}

// LabelIDByUUID resolves a label uuid to its local id.
func (c *IdentityCache) LabelIDByUUID(ctx context.Context, uuid string) (int64, bool, error) {
	if c.labelIDs == nil {
		m, err := c.labels.UUIDIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load label ids: %w", err)
		}
		c.labelIDs = m
	}
	id, ok := c.labelIDs[uuid]
	return id, ok, nil
}

// ChannelIDByName resolves a channel name to its local id.
func (c *IdentityCache) ChannelIDByName(ctx context.Context, name string) (int64, bool, error) {
	if c.channelIDs == nil {
		m, err := c.channels.NameIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load channel ids: %w", err)
		}
		c.channelIDs = m
	}
	id, ok := c.channelIDs[name]
	return id, ok, nil
}

// StartIDByUUID resolves a flow start uuid to its local id.
func (c *IdentityCache) StartIDByUUID(ctx context.Context, uuid string) (int64, bool, error) {
	if c.startIDs == nil {
		m, err := c.starts.UUIDIDs(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load flow start ids: %w", err)
		}
		c.startIDs = m
	}
	id, ok := c.startIDs[uuid]
	return id, ok, nil
}
