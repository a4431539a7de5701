package services

// ImportStats aggregates what one import run created and what it
// degraded past. Skips and fallbacks are counted per reason so partial
// success is visible in the result, not only in the logs.
type ImportStats struct {
	GroupsCreated int
	GroupsSkipped int

	ContactsCreated    int
	URNsCreated        int
	MembershipsCreated int

	LabelsCreated     int
	BroadcastsCreated int
	MessagesCreated   int

	FlowStartsCreated int
	FlowStartsSkipped int

	RunsCreated int
	RunsSkipped int

	// ResultNodeFallbacks counts captured results whose key had no entry
	// in the flow metadata index, leaving the remote node uuid in place.
	ResultNodeFallbacks int

	// GroupRefMisses counts group references whose name could not be
	// resolved through the group-name cache.
	GroupRefMisses int

	CategoryCountsCreated int
	RunCountsCreated      int
}
