package model

import "time"

// Revision is a dated hardware snapshot of a machine as stored in the
// `revisions` table. A machine accumulates revisions over time; the
// machine's active pointer marks whichever one currently represents it.
// Numeric hardware fields are pointers because a submitter rarely knows all
// of them and an absent value must stay distinguishable from zero.
type Revision struct {
	ID                uint64
	CPUMake           string
	CPUName           string
	CPUSocket         string
	CPUMhz            *int64
	CPUProcCores      *int64
	Chipset           string
	SystemMemoryGB    *int64
	SystemMemoryMhz   *int64
	GPUName           string
	GPUMake           string
	GPUMemoryMB       *int64
	GPUCount          *int64
	RevisionNotes     string
	RevisionNotesHTML string
	PCPartPickerURL   string
	Timestamp         time.Time
	AuthorID          uint64
	MachineID         uint64
}

// RevisionPatch carries the updatable revision fields for a partial
// update. Nil fields leave the stored value untouched.
// RevisionNotesHTML follows RevisionNotes the same way the machine
// patch handles its notes pair.
type RevisionPatch struct {
	CPUMake           *string
	CPUName           *string
	CPUSocket         *string
	CPUMhz            *int64
	CPUProcCores      *int64
	Chipset           *string
	SystemMemoryGB    *int64
	SystemMemoryMhz   *int64
	GPUName           *string
	GPUMake           *string
	GPUMemoryMB       *int64
	GPUCount          *int64
	RevisionNotes     *string
	RevisionNotesHTML *string
	PCPartPickerURL   *string
}

// Apply assigns every non-nil patch field onto the revision.
func (r *Revision) Apply(p RevisionPatch) {
	if p.CPUMake != nil {
		r.CPUMake = *p.CPUMake
	}
	if p.CPUName != nil {
		r.CPUName = *p.CPUName
	}
	if p.CPUSocket != nil {
		r.CPUSocket = *p.CPUSocket
	}
	if p.CPUMhz != nil {
		r.CPUMhz = p.CPUMhz
	}
	if p.CPUProcCores != nil {
		r.CPUProcCores = p.CPUProcCores
	}
	if p.Chipset != nil {
		r.Chipset = *p.Chipset
	}
	if p.SystemMemoryGB != nil {
		r.SystemMemoryGB = p.SystemMemoryGB
	}
	if p.SystemMemoryMhz != nil {
		r.SystemMemoryMhz = p.SystemMemoryMhz
	}
	if p.GPUName != nil {
		r.GPUName = *p.GPUName
	}
	if p.GPUMake != nil {
		r.GPUMake = *p.GPUMake
	}
	if p.GPUMemoryMB != nil {
		r.GPUMemoryMB = p.GPUMemoryMB
	}
	if p.GPUCount != nil {
		r.GPUCount = p.GPUCount
	}
	if p.RevisionNotes != nil {
		r.RevisionNotes = *p.RevisionNotes
	}
	if p.RevisionNotesHTML != nil {
		r.RevisionNotesHTML = *p.RevisionNotesHTML
	}
	if p.PCPartPickerURL != nil {
		r.PCPartPickerURL = *p.PCPartPickerURL
	}
}
