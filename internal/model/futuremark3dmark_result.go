package model

import "time"

// Futuremark3DMarkResult is a run of the modern 3DMark suite recorded
// against a revision. Each sub-benchmark (Ice Storm, Cloud Gate, Fire
// Strike, Sky Diver) has its own score and result URL; there is no
// overall score, only an overall result URL.
type Futuremark3DMarkResult struct {
	ID                 uint64
	ResultDate         time.Time
	IcestormScore      *int64
	IcestormResultURL  string
	CloudgateScore     *int64
	CloudgateResultURL string
	FirestrikeScore    *int64
	FirestrikeResultURL string
	SkydiverScore      *int64
	SkydiverResultURL  string
	OverallResultURL   string
	RevisionID         uint64
}

// Futuremark3DMarkResultPatch carries the updatable fields for a
// partial update. Nil fields leave the stored value untouched.
type Futuremark3DMarkResultPatch struct {
	ResultDate          *time.Time
	IcestormScore       *int64
	IcestormResultURL   *string
	CloudgateScore      *int64
	CloudgateResultURL  *string
	FirestrikeScore     *int64
	FirestrikeResultURL *string
	SkydiverScore       *int64
	SkydiverResultURL   *string
	OverallResultURL    *string
}

// Apply assigns every non-nil patch field onto the result.
func (r *Futuremark3DMarkResult) Apply(p Futuremark3DMarkResultPatch) {
	if p.ResultDate != nil {
		r.ResultDate = *p.ResultDate
	}
	if p.IcestormScore != nil {
		r.IcestormScore = p.IcestormScore
	}
	if p.IcestormResultURL != nil {
		r.IcestormResultURL = *p.IcestormResultURL
	}
	if p.CloudgateScore != nil {
		r.CloudgateScore = p.CloudgateScore
	}
	if p.CloudgateResultURL != nil {
		r.CloudgateResultURL = *p.CloudgateResultURL
	}
	if p.FirestrikeScore != nil {
		r.FirestrikeScore = p.FirestrikeScore
	}
	if p.FirestrikeResultURL != nil {
		r.FirestrikeResultURL = *p.FirestrikeResultURL
	}
	if p.SkydiverScore != nil {
		r.SkydiverScore = p.SkydiverScore
	}
	if p.SkydiverResultURL != nil {
		r.SkydiverResultURL = *p.SkydiverResultURL
	}
	if p.OverallResultURL != nil {
		r.OverallResultURL = *p.OverallResultURL
	}
}
