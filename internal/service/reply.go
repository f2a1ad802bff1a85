package service

import (
	"strings"

	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/identity"
	"github.com/ctchan-dev/ctchan/internal/live"
)

type ReplyService interface {
	Create(draft domain.ReplyDraft) (domain.Reply, error)
	Get(id domain.ReplyId) (domain.Reply, error)
	Latest(threadId domain.ThreadId, limit int) ([]domain.Reply, error)
	Delete(id domain.ReplyId) (domain.Reply, error)
	Restore(id domain.ReplyId) (domain.Reply, error)
}

type Reply struct {
	storage   ReplyStorage
	validator PostValidator
	formatter MessageFormatter
	sessions  *identity.Sessions
	bus       *live.Bus
	cfg       *config.Config
}

type ReplyStorage interface {
	CreateReply(data domain.ReplyCreationData) (domain.Reply, domain.Thread, error)
	GetReply(id domain.ReplyId) (domain.Reply, error)
	LatestReplies(threadId domain.ThreadId, limit int) ([]domain.Reply, error)
	DeleteReply(id domain.ReplyId) (domain.Reply, domain.Thread, error)
	RestoreReply(id domain.ReplyId) (domain.Reply, domain.Thread, error)
}

func NewReply(storage ReplyStorage, validator PostValidator, formatter MessageFormatter, sessions *identity.Sessions, bus *live.Bus, cfg *config.Config) ReplyService {
	return &Reply{storage, validator, formatter, sessions, bus, cfg}
}

func (s *Reply) Create(draft domain.ReplyDraft) (domain.Reply, error) {
	message := strings.TrimSpace(draft.Message)
	if err := s.validator.Text(message); err != nil {
		return domain.Reply{}, err
	}
	name := strings.TrimSpace(draft.PosterName)
	if name == "" {
		name = domain.DefaultPosterName
	}
	if err := s.validator.Name(name); err != nil {
		return domain.Reply{}, err
	}

	// the id is stable per (session, thread), fresh when the session is new
	var posterId domain.PosterId
	if draft.SessionKey != "" {
		posterId = s.sessions.GetOrCreate(draft.SessionKey, draft.ThreadId)
	} else {
		posterId = identity.Generate()
	}

	reply, thread, err := s.storage.CreateReply(domain.ReplyCreationData{
		ThreadId:   draft.ThreadId,
		Message:    s.formatter.Format(message),
		PosterName: name,
		PosterId:   posterId,
		Image:      draft.Image,
	})
	if err != nil {
		return domain.Reply{}, err
	}

	s.bus.PublishReply(live.ReplyEvent{Kind: live.KindInsert, Reply: reply})
	s.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return reply, nil
}

func (s *Reply) Get(id domain.ReplyId) (domain.Reply, error) {
	return s.storage.GetReply(id)
}

// Latest serves the incremental "new replies" poll. The limit is clamped so
// a client cannot request the whole thread through this endpoint.
func (s *Reply) Latest(threadId domain.ThreadId, limit int) ([]domain.Reply, error) {
	if limit < 1 {
		limit = s.cfg.Public.PreviewReplies
	}
	if limit > 100 {
		limit = 100
	}
	return s.storage.LatestReplies(threadId, limit)
}

func (s *Reply) Delete(id domain.ReplyId) (domain.Reply, error) {
	reply, thread, err := s.storage.DeleteReply(id)
	if err != nil {
		return domain.Reply{}, err
	}
	s.bus.PublishReply(live.ReplyEvent{Kind: live.KindDelete, Reply: reply})
	s.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return reply, nil
}

func (s *Reply) Restore(id domain.ReplyId) (domain.Reply, error) {
	reply, thread, err := s.storage.RestoreReply(id)
	if err != nil {
		return domain.Reply{}, err
	}
	s.bus.PublishReply(live.ReplyEvent{Kind: live.KindUpdate, Reply: reply})
	s.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return reply, nil
}
