// Package policy centralizes ownership checks so post and comment
// handlers share one rule instead of duplicating it.
package policy

// Action names a write operation on an owned resource.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Can reports whether the caller may perform the action on a resource
// owned by ownerID. Reads are open and never consult this; writes on
// owned resources require the caller to be the owner.
func Can(callerID, ownerID uint, _ Action) bool {
	if callerID == 0 {
		return false
	}
	return callerID == ownerID
}
