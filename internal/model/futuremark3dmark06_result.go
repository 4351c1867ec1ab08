package model

import "time"

// Futuremark3DMark06Result is a 3DMark06 run recorded against a
// revision. The per-scene fps fields are fixed-point values with two
// fractional digits in the schema (DECIMAL(5,2)); serialization must
// keep exactly two digits rather than whatever a float round-trip
// produces.
type Futuremark3DMark06Result struct {
	ID               uint64
	ResultDate       time.Time
	SM2Score         *int64
	CPUScore         *int64
	SM3Score         *int64
	ProxcyonFps      *float64
	FireflyforestFps *float64
	CPU1Fps          *float64
	CPU2Fps          *float64
	CanyonflightFps  *float64
	DeepfreezeFps    *float64
	OverallScore     *int64
	ResultURL        string
	RevisionID       uint64
}

// Futuremark3DMark06ResultPatch carries the updatable fields for a
// partial update. Nil fields leave the stored value untouched.
type Futuremark3DMark06ResultPatch struct {
	ResultDate       *time.Time
	SM2Score         *int64
	CPUScore         *int64
	SM3Score         *int64
	ProxcyonFps      *float64
	FireflyforestFps *float64
	CPU1Fps          *float64
	CPU2Fps          *float64
	CanyonflightFps  *float64
	DeepfreezeFps    *float64
	OverallScore     *int64
	ResultURL        *string
}

// Apply assigns every non-nil patch field onto the result.
func (r *Futuremark3DMark06Result) Apply(p Futuremark3DMark06ResultPatch) {
	if p.ResultDate != nil {
		r.ResultDate = *p.ResultDate
	}
	if p.SM2Score != nil {
		r.SM2Score = p.SM2Score
	}
	if p.CPUScore != nil {
		r.CPUScore = p.CPUScore
	}
	if p.SM3Score != nil {
		r.SM3Score = p.SM3Score
	}
	if p.ProxcyonFps != nil {
		r.ProxcyonFps = p.ProxcyonFps
	}
	if p.FireflyforestFps != nil {
		r.FireflyforestFps = p.FireflyforestFps
	}
	if p.CPU1Fps != nil {
		r.CPU1Fps = p.CPU1Fps
	}
	if p.CPU2Fps != nil {
		r.CPU2Fps = p.CPU2Fps
	}
	if p.CanyonflightFps != nil {
		r.CanyonflightFps = p.CanyonflightFps
	}
	if p.DeepfreezeFps != nil {
		r.DeepfreezeFps = p.DeepfreezeFps
	}
	if p.OverallScore != nil {
		r.OverallScore = p.OverallScore
	}
	if p.ResultURL != nil {
		r.ResultURL = *p.ResultURL
	}
}
