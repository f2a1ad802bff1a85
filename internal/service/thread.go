package service

import (
	"strings"

	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/identity"
	"github.com/ctchan-dev/ctchan/internal/live"
)

type ThreadService interface {
	Create(draft domain.ThreadDraft) (domain.Thread, error)
	List(board domain.BoardTag, page int) (domain.BoardPage, error)
	Catalog(board domain.BoardTag) ([]domain.Thread, error)
	Get(id domain.ThreadId) (domain.ThreadWithReplies, error)
	SetSticky(id domain.ThreadId, value bool) (domain.Thread, error)
	SetLocked(id domain.ThreadId, value bool) (domain.Thread, error)
	Delete(id domain.ThreadId) (domain.Thread, error)
	Restore(id domain.ThreadId) (domain.Thread, error)
	Overview() (domain.Overview, error)
}

type Thread struct {
	storage   ThreadStorage
	validator PostValidator
	formatter MessageFormatter
	sessions  *identity.Sessions
	bus       *live.Bus
	cfg       *config.Config
}

type ThreadStorage interface {
	CreateThread(data domain.ThreadCreationData) (domain.Thread, error)
	ListThreads(board domain.BoardTag, page, pageSize int) (domain.ThreadPage, error)
	Catalog(board domain.BoardTag) ([]domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.ThreadWithReplies, error)
	LatestReplies(threadId domain.ThreadId, limit int) ([]domain.Reply, error)
	SetSticky(id domain.ThreadId, value bool) (domain.Thread, error)
	SetLocked(id domain.ThreadId, value bool) (domain.Thread, error)
	DeleteThread(id domain.ThreadId) (domain.Thread, error)
	RestoreThread(id domain.ThreadId) (domain.Thread, error)
	GetOverview(recentLimit int) (domain.Overview, error)
}

// PostValidator bounds user-supplied post fields. Inputs arrive trimmed.
type PostValidator interface {
	Subject(subject string) error
	Text(text string) error
	Name(name string) error
}

// MessageFormatter renders raw poster text into the stored display markup.
type MessageFormatter interface {
	Format(raw domain.MsgText) domain.MsgText
}

func NewThread(storage ThreadStorage, validator PostValidator, formatter MessageFormatter, sessions *identity.Sessions, bus *live.Bus, cfg *config.Config) ThreadService {
	return &Thread{storage, validator, formatter, sessions, bus, cfg}
}

func (t *Thread) Create(draft domain.ThreadDraft) (domain.Thread, error) {
	subject := strings.TrimSpace(draft.Subject)
	if err := t.validator.Subject(subject); err != nil {
		return domain.Thread{}, err
	}
	message := strings.TrimSpace(draft.Message)
	if err := t.validator.Text(message); err != nil {
		return domain.Thread{}, err
	}
	name := strings.TrimSpace(draft.PosterName)
	if name == "" {
		name = domain.DefaultPosterName
	}
	if err := t.validator.Name(name); err != nil {
		return domain.Thread{}, err
	}

	posterId := identity.Generate()
	thread, err := t.storage.CreateThread(domain.ThreadCreationData{
		Board:      draft.Board,
		Subject:    subject,
		Message:    t.formatter.Format(message),
		PosterName: name,
		PosterId:   posterId,
		Image:      draft.Image,
	})
	if err != nil {
		return domain.Thread{}, err
	}

	// bind the creator's id to the new thread so their replies reuse it
	if draft.SessionKey != "" {
		t.sessions.Bind(draft.SessionKey, thread.Id, posterId)
	}
	t.bus.PublishThread(live.ThreadEvent{Kind: live.KindInsert, Thread: thread})
	return thread, nil
}

// List pages through a board and decorates every row with its reply preview
// and the omitted counters shown under the collapsed tail.
func (t *Thread) List(board domain.BoardTag, page int) (domain.BoardPage, error) {
	if page < 1 {
		page = 1
	}
	pageSize := t.cfg.Public.ThreadsPerPage

	threadPage, err := t.storage.ListThreads(board, page, pageSize)
	if err != nil {
		return domain.BoardPage{}, err
	}

	previews := make([]domain.ThreadPreview, 0, len(threadPage.Threads))
	for _, thread := range threadPage.Threads {
		preview, err := t.preview(thread)
		if err != nil {
			return domain.BoardPage{}, err
		}
		previews = append(previews, preview)
	}
	return domain.BoardPage{
		Threads:  previews,
		Total:    threadPage.Total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (t *Thread) preview(thread domain.Thread) (domain.ThreadPreview, error) {
	latest, err := t.storage.LatestReplies(thread.Id, t.cfg.Public.PreviewReplies)
	if err != nil {
		return domain.ThreadPreview{}, err
	}

	shownImages := 0
	if thread.Image != nil {
		shownImages++ // the opening post is always visible
	}
	for _, r := range latest {
		if r.Image != nil {
			shownImages++
		}
	}
	omittedReplies := thread.ReplyCount - len(latest)
	if omittedReplies < 0 {
		omittedReplies = 0
	}
	omittedImages := thread.ImageCount - shownImages
	if omittedImages < 0 {
		omittedImages = 0
	}
	return domain.ThreadPreview{
		Thread:         thread,
		LatestReplies:  latest,
		OmittedReplies: omittedReplies,
		OmittedImages:  omittedImages,
	}, nil
}

func (t *Thread) Catalog(board domain.BoardTag) ([]domain.Thread, error) {
	return t.storage.Catalog(board)
}

func (t *Thread) Get(id domain.ThreadId) (domain.ThreadWithReplies, error) {
	return t.storage.GetThread(id)
}

func (t *Thread) SetSticky(id domain.ThreadId, value bool) (domain.Thread, error) {
	thread, err := t.storage.SetSticky(id, value)
	if err != nil {
		return domain.Thread{}, err
	}
	t.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return thread, nil
}

func (t *Thread) SetLocked(id domain.ThreadId, value bool) (domain.Thread, error) {
	thread, err := t.storage.SetLocked(id, value)
	if err != nil {
		return domain.Thread{}, err
	}
	t.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return thread, nil
}

func (t *Thread) Delete(id domain.ThreadId) (domain.Thread, error) {
	thread, err := t.storage.DeleteThread(id)
	if err != nil {
		return domain.Thread{}, err
	}
	t.bus.PublishThread(live.ThreadEvent{Kind: live.KindDelete, Thread: thread})
	return thread, nil
}

// overviewRecentLimit bounds the recent-threads slice on the dashboard.
const overviewRecentLimit = 10

func (t *Thread) Overview() (domain.Overview, error) {
	return t.storage.GetOverview(overviewRecentLimit)
}

func (t *Thread) Restore(id domain.ThreadId) (domain.Thread, error) {
	thread, err := t.storage.RestoreThread(id)
	if err != nil {
		return domain.Thread{}, err
	}
	t.bus.PublishThread(live.ThreadEvent{Kind: live.KindUpdate, Thread: thread})
	return thread, nil
}
