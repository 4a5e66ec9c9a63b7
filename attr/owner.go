package attr

import "fmt"

// Priority bands of attribute owners. Lower wins.
const (
	PriorityNativeOverride      = 0
	PriorityParentOverride      = 1
	PriorityElement             = 2
	PriorityCSSParentOverridden = 3
	PriorityCSS                 = 4
	PriorityPlaceholder         = 1000
)

// Owner is anything which can hold a competing value for an attribute.
// Owners are compared by identity, so implementations are expected to be
// pointer types.
type Owner interface {
	AttributePriority(id ID) int  // priority band for attribute id, lower wins
	AttributeSource(id ID) string // human readable source tag, e.g. "css"
}

// StaticOwner is an owner with a fixed priority band for every attribute.
type StaticOwner struct {
	priority int
	source   string
}

// NewOwner creates an owner with a fixed priority. Every call creates a
// distinct owner identity.
func NewOwner(priority int, source string) *StaticOwner {
	return &StaticOwner{priority: priority, source: source}
}

// AttributePriority is part of interface Owner.
func (o *StaticOwner) AttributePriority(ID) int {
	return o.priority
}

// AttributeSource is part of interface Owner.
func (o *StaticOwner) AttributeSource(ID) string {
	return o.source
}

func (o *StaticOwner) String() string {
	return fmt.Sprintf("owner(%s/%d)", o.source, o.priority)
}

var _ Owner = &StaticOwner{}

var placeholder = NewOwner(PriorityPlaceholder, "placeholder")

// PlaceholderOwner returns the process-wide owner for default values.
func PlaceholderOwner() Owner {
	return placeholder
}

// PriorityOf returns the priority band of an owner for attribute id.
// A nil owner (detached copies of attributes) counts as a placeholder.
func PriorityOf(owner Owner, id ID) int {
	if owner == nil {
		return PriorityPlaceholder
	}
	return owner.AttributePriority(id)
}

// SourceOf returns the source tag of an owner, "none" for a nil owner.
func SourceOf(owner Owner, id ID) string {
	if owner == nil {
		return "none"
	}
	return owner.AttributeSource(id)
}
