package domain

// Overview aggregates the moderation dashboard numbers. Totals include
// soft-deleted rows; the deleted counters break those out.
type Overview struct {
	TotalThreads   int      `json:"total_threads"`
	TotalReplies   int      `json:"total_replies"`
	DeletedThreads int      `json:"deleted_threads"`
	DeletedReplies int      `json:"deleted_replies"`
	RecentThreads  []Thread `json:"recent_threads"`
}
