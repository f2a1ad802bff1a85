package domain

import "time"

// ReplyDraft is raw poster input as the handler received it, before
// validation, formatting and identity assignment.
type ReplyDraft struct {
	ThreadId   ThreadId
	Message    MsgText
	PosterName PosterName
	Image      *Image
	SessionKey string
}

type ReplyCreationData struct {
	ThreadId   ThreadId
	Message    MsgText
	PosterName PosterName
	PosterId   PosterId
	Image      *Image
}

type Reply struct {
	Id         ReplyId    `json:"id"`
	ThreadId   ThreadId   `json:"thread_id"`
	Message    MsgText    `json:"message"`
	PosterName PosterName `json:"poster_name"`
	PosterId   PosterId   `json:"poster_id"`
	Image      *Image     `json:"image,omitempty"`
	IsDeleted  bool       `json:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at"`
}
