package domain

type (
	BoardTag = string

	ThreadId = int64
	ReplyId  = int64

	PosterId   = string
	PosterName = string

	MsgText = string
)

// DefaultPosterName is substituted when a submitted name is blank after trimming.
const DefaultPosterName PosterName = "Anonymous"
