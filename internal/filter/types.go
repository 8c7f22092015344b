// Package filter implements the partial-clone object filter: it classifies
// each object presented by the host's traversal and decides which feature
// blobs can be omitted from the transfer.
package filter

// Situation tags an object presented by the host traversal.
type Situation int

const (
	SituationCommit Situation = iota
	SituationTag
	SituationBeginTree
	SituationEndTree
	SituationBlob
)

func (s Situation) String() string {
	switch s {
	case SituationCommit:
		return "commit"
	case SituationTag:
		return "tag"
	case SituationBeginTree:
		return "begin-tree"
	case SituationEndTree:
		return "end-tree"
	case SituationBlob:
		return "blob"
	}
	return "unknown"
}

// Result is the per-object answer handed back to the host.
type Result uint8

const (
	// MarkSeen tells the host not to present this object again.
	MarkSeen Result = 1 << iota
	// Show includes the object in the transfer.
	Show
	// Omit flags the object for omission from the transfer.
	Omit
)

func (r Result) MarkedSeen() bool { return r&MarkSeen != 0 }
func (r Result) Shown() bool      { return r&Show != 0 }
func (r Result) Omitted() bool    { return r&Omit != 0 }
