package model

import "time"

// Machine represents a community-submitted PC build as stored in the
// `machines` table. The author is the registered user who submitted the
// record; the owner column is a free-text label for whoever physically
// owns the box and need not be a user at all.
//
// ActiveRevisionID, when set, points at one of this machine's own
// revisions. It is nil for a machine that has no revisions yet and is
// rewritten to the newest revision's id on every revision create.
type Machine struct {
	ID               uint64
	SystemName       string
	SystemNotes      string
	SystemNotesHTML  string
	Owner            string
	ActiveRevisionID *uint64
	Timestamp        time.Time
	AuthorID         uint64
}

// MachinePatch carries the updatable machine fields for a partial
// update. Nil fields leave the stored value untouched; callers cannot
// null out a stored value through a patch. SystemNotesHTML is filled in
// by the handler whenever SystemNotes is present, so the rendered twin
// never drifts from its source.
type MachinePatch struct {
	SystemName      *string
	SystemNotes     *string
	SystemNotesHTML *string
	Owner           *string
}

// Apply assigns every non-nil patch field onto the machine.
func (m *Machine) Apply(p MachinePatch) {
	if p.SystemName != nil {
		m.SystemName = *p.SystemName
	}
	if p.SystemNotes != nil {
		m.SystemNotes = *p.SystemNotes
	}
	if p.SystemNotesHTML != nil {
		m.SystemNotesHTML = *p.SystemNotesHTML
	}
	if p.Owner != nil {
		m.Owner = *p.Owner
	}
}
