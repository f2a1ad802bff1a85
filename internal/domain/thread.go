package domain

import "time"

// ThreadDraft is raw poster input as the handler received it, before
// validation, formatting and identity assignment.
type ThreadDraft struct {
	Board      BoardTag
	Subject    string
	Message    MsgText
	PosterName PosterName
	Image      *Image
	SessionKey string
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Board      BoardTag
	Subject    string
	Message    MsgText
	PosterName PosterName
	PosterId   PosterId
	Image      *Image
}

type Thread struct {
	Id         ThreadId   `json:"id"`
	Board      BoardTag   `json:"board"`
	Subject    string     `json:"subject"`
	Message    MsgText    `json:"message"`
	PosterName PosterName `json:"poster_name"`
	PosterId   PosterId   `json:"poster_id"`
	Image      *Image     `json:"image,omitempty"`
	ReplyCount int        `json:"reply_count"`
	ImageCount int        `json:"image_count"`
	IsSticky   bool       `json:"is_sticky"`
	IsLocked   bool       `json:"is_locked"`
	IsDeleted  bool       `json:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at"`
	BumpedAt   time.Time  `json:"bumped_at"`
}

// ThreadWithReplies is the fetch-by-id shape: the thread row plus its
// non-deleted replies in chronological order.
type ThreadWithReplies struct {
	Thread
	Replies []Reply `json:"replies"`
}

// ThreadPage is one page of a board listing. Total counts every non-deleted
// thread on the board, not just the page slice.
type ThreadPage struct {
	Threads []Thread `json:"threads"`
	Total   int      `json:"total"`
}

// BoardPage is the listing view served to clients: preview rows plus the
// pagination numbers needed to render page links.
type BoardPage struct {
	Threads  []ThreadPreview `json:"threads"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ThreadPreview is a listing row enriched with the newest replies and the
// omitted-counters shown under it.
type ThreadPreview struct {
	Thread
	LatestReplies  []Reply `json:"latest_replies"`
	OmittedReplies int     `json:"omitted_replies"`
	OmittedImages  int     `json:"omitted_images"`
}
