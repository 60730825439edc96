// Package planner builds verified move plans. A plan is an ordered list of
// items whose targets are unique both within the batch and against the
// filesystem as observed at plan time; the executor re-verifies at apply
// time since the filesystem may have changed in between.
package planner

// Item statuses. An item starts as StatusPlanned (or StatusFailed /
// StatusSkipped when the builder rules it out) and the executor moves it
// to StatusApplied or StatusFailed.
const (
	StatusPlanned = "planned"
	StatusApplied = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Item is a single planned move. One Item per source file.
type Item struct {
	// SourcePath is the absolute path of the file before the move.
	SourcePath string

	// TargetPath is the collision-resolved destination. Empty for items
	// that failed during planning.
	TargetPath string

	// Key is the naming key the target was derived from (timestamp string
	// or category label).
	Key string

	// KeySource identifies which provider produced Key (e.g. the metadata
	// fallback that yielded a timestamp). Optional.
	KeySource string

	// Status is one of the Status* constants.
	Status string

	// Err holds the failure description when Status is StatusFailed.
	Err string
}

// Plan is an ordered list of planned moves.
type Plan struct {
	Items []Item
}

// Counts returns the number of items per status.
func (p *Plan) Counts() map[string]int {
	counts := make(map[string]int)
	for _, it := range p.Items {
		counts[it.Status]++
	}
	return counts
}

// Pending returns the number of items still waiting to be applied.
func (p *Plan) Pending() int {
	return p.Counts()[StatusPlanned]
}

// HasFailures returns true if any item is marked failed.
func (p *Plan) HasFailures() bool {
	return p.Counts()[StatusFailed] > 0
}
