package live

import "github.com/ctchan-dev/ctchan/internal/domain"

type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// ThreadEvent is fired for every thread mutation across all boards; consumers
// filter by board themselves. The payload is best effort: receivers should
// treat it as an invalidation hint and re-fetch when they need authority.
type ThreadEvent struct {
	Kind   Kind          `json:"kind"`
	Thread domain.Thread `json:"thread"`
}

// ReplyEvent is fired for reply inserts, scoped to one thread's subscribers.
type ReplyEvent struct {
	Kind  Kind         `json:"kind"`
	Reply domain.Reply `json:"reply"`
}
