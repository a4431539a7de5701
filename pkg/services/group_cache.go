package services

// GroupRef ties one group name to its local row and to the uuid the
// remote system knew the group by.
type GroupRef struct {
	ID         int64
	UUID       string
	RemoteUUID string
}

// GroupNameCache resolves group references by name. The import mints
// new uuids for groups, so the name is the only key that stays stable
// across the two systems.
type GroupNameCache struct {
	refs map[string]GroupRef
}

// NewGroupNameCache creates an empty cache.
func NewGroupNameCache() *GroupNameCache {
	return &GroupNameCache{refs: make(map[string]GroupRef)}
}

// RecordRemote notes the uuid a group carries on the remote system.
// Called while paging remote groups, before local rows exist.
func (c *GroupNameCache) RecordRemote(name, remoteUUID string) {
	ref := c.refs[name]
	ref.RemoteUUID = remoteUUID
	c.refs[name] = ref
}

// RecordLocal sets the local id and uuid for a name, keeping whatever
// remote uuid was recorded earlier.
func (c *GroupNameCache) RecordLocal(name string, id int64, uuid string) {
	ref := c.refs[name]
	ref.ID = id
	ref.UUID = uuid
	c.refs[name] = ref
}

// Get looks up a group by name.
func (c *GroupNameCache) Get(name string) (GroupRef, bool) {
	ref, ok := c.refs[name]
	return ref, ok
}

// Len returns the number of cached names.
func (c *GroupNameCache) Len() int {
	return len(c.refs)
}
