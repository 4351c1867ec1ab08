package model

import "time"

// CinebenchR15Result is a Cinebench R15 run recorded against a
// revision. CPUCb is the multi-core CPU score in cb points, OpenGLFps
// the OpenGL test result.
type CinebenchR15Result struct {
	ID         uint64
	ResultDate time.Time
	CPUCb      *int64
	OpenGLFps  *int64
	RevisionID uint64
}

// CinebenchR15ResultPatch carries the updatable fields for a partial
// update. Nil fields leave the stored value untouched.
type CinebenchR15ResultPatch struct {
	ResultDate *time.Time
	CPUCb      *int64
	OpenGLFps  *int64
}

// Apply assigns every non-nil patch field onto the result.
func (r *CinebenchR15Result) Apply(p CinebenchR15ResultPatch) {
	if p.ResultDate != nil {
		r.ResultDate = *p.ResultDate
	}
	if p.CPUCb != nil {
		r.CPUCb = p.CPUCb
	}
	if p.OpenGLFps != nil {
		r.OpenGLFps = p.OpenGLFps
	}
}
