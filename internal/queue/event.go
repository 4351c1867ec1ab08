// Package queue defines message payloads exchanged over the message broker.
package queue

// BenchmarkSubmittedEvent is published whenever a benchmark result is
// recorded against a revision. Downstream consumers (leaderboard log,
// analytics) get enough context to act without querying the primary
// database. Score is the kind's headline number and may be nil when the
// submitter left it out.
type BenchmarkSubmittedEvent struct {
	Kind        string `json:"kind"` // cinebenchr15 | futuremark3dmark06 | futuremark3dmark
	ResultID    uint64 `json:"result_id"`
	RevisionID  uint64 `json:"revision_id"`
	MachineID   uint64 `json:"machine_id"`
	SystemName  string `json:"system_name"`
	AuthorID    uint64 `json:"author_id"`
	Score       *int64 `json:"score"`
	SubmittedAt string `json:"submitted_at"`
}
