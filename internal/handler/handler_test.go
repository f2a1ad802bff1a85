package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ctchan-dev/ctchan/internal/boards"
	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/imager"
)

// --- Mocks ---

type MockThreadService struct {
	MockCreate    func(draft domain.ThreadDraft) (domain.Thread, error)
	MockList      func(board domain.BoardTag, page int) (domain.BoardPage, error)
	MockCatalog   func(board domain.BoardTag) ([]domain.Thread, error)
	MockGet       func(id domain.ThreadId) (domain.ThreadWithReplies, error)
	MockSetSticky func(id domain.ThreadId, value bool) (domain.Thread, error)
	MockSetLocked func(id domain.ThreadId, value bool) (domain.Thread, error)
	MockDelete    func(id domain.ThreadId) (domain.Thread, error)
	MockRestore   func(id domain.ThreadId) (domain.Thread, error)
	MockOverview  func() (domain.Overview, error)
}

func (m *MockThreadService) Create(draft domain.ThreadDraft) (domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(draft)
	}
	return domain.Thread{Id: 1, Board: draft.Board, Subject: draft.Subject}, nil
}

func (m *MockThreadService) List(board domain.BoardTag, page int) (domain.BoardPage, error) {
	if m.MockList != nil {
		return m.MockList(board, page)
	}
	return domain.BoardPage{Threads: []domain.ThreadPreview{}, Page: page}, nil
}

func (m *MockThreadService) Catalog(board domain.BoardTag) ([]domain.Thread, error) {
	if m.MockCatalog != nil {
		return m.MockCatalog(board)
	}
	return []domain.Thread{}, nil
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.ThreadWithReplies, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.ThreadWithReplies{Thread: domain.Thread{Id: id}}, nil
}

func (m *MockThreadService) SetSticky(id domain.ThreadId, value bool) (domain.Thread, error) {
	if m.MockSetSticky != nil {
		return m.MockSetSticky(id, value)
	}
	return domain.Thread{Id: id, IsSticky: value}, nil
}

func (m *MockThreadService) SetLocked(id domain.ThreadId, value bool) (domain.Thread, error) {
	if m.MockSetLocked != nil {
		return m.MockSetLocked(id, value)
	}
	return domain.Thread{Id: id, IsLocked: value}, nil
}

func (m *MockThreadService) Delete(id domain.ThreadId) (domain.Thread, error) {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return domain.Thread{Id: id, IsDeleted: true}, nil
}

func (m *MockThreadService) Restore(id domain.ThreadId) (domain.Thread, error) {
	if m.MockRestore != nil {
		return m.MockRestore(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockThreadService) Overview() (domain.Overview, error) {
	if m.MockOverview != nil {
		return m.MockOverview()
	}
	return domain.Overview{}, nil
}

type MockReplyService struct {
	MockCreate  func(draft domain.ReplyDraft) (domain.Reply, error)
	MockGet     func(id domain.ReplyId) (domain.Reply, error)
	MockLatest  func(threadId domain.ThreadId, limit int) ([]domain.Reply, error)
	MockDelete  func(id domain.ReplyId) (domain.Reply, error)
	MockRestore func(id domain.ReplyId) (domain.Reply, error)
}

func (m *MockReplyService) Create(draft domain.ReplyDraft) (domain.Reply, error) {
	if m.MockCreate != nil {
		return m.MockCreate(draft)
	}
	return domain.Reply{Id: 2, ThreadId: draft.ThreadId, Message: draft.Message}, nil
}

func (m *MockReplyService) Get(id domain.ReplyId) (domain.Reply, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Reply{Id: id}, nil
}

func (m *MockReplyService) Latest(threadId domain.ThreadId, limit int) ([]domain.Reply, error) {
	if m.MockLatest != nil {
		return m.MockLatest(threadId, limit)
	}
	return []domain.Reply{}, nil
}

func (m *MockReplyService) Delete(id domain.ReplyId) (domain.Reply, error) {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return domain.Reply{Id: id, IsDeleted: true}, nil
}

func (m *MockReplyService) Restore(id domain.ReplyId) (domain.Reply, error) {
	if m.MockRestore != nil {
		return m.MockRestore(id)
	}
	return domain.Reply{Id: id}, nil
}

type MockAuthService struct {
	MockLogin func(password string) (string, error)
}

func (m *MockAuthService) Login(password string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(password)
	}
	return "token", nil
}

// --- Helpers ---

type testEnv struct {
	handler *Handler
	thread  *MockThreadService
	reply   *MockReplyService
	auth    *MockAuthService
	router  *chi.Mux
	admin   bool // treat requests as coming from a moderator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	registry, err := boards.NewRegistry([]domain.Board{
		{Tag: "b", Name: "Random"},
		{Tag: "z", Name: "Staff", Hidden: true},
	})
	require.NoError(t, err)

	images, err := imager.NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	cfg := &config.Config{Public: config.Public{
		ThreadsPerPage:        15,
		PreviewReplies:        3,
		MaxImageBytes:         1 << 20,
		AllowedImageMimeTypes: []string{"image/png", "image/jpeg"},
		SessionTTLMinutes:     720,
		AdminTokenTTLMinutes:  60,
	}}

	env := &testEnv{
		thread: &MockThreadService{},
		reply:  &MockReplyService{},
		auth:   &MockAuthService{},
	}
	env.handler = New(env.auth, env.thread, env.reply, registry, images, cfg,
		func(*http.Request) bool { return env.admin })

	h := env.handler
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/boards", h.ListBoards)
		r.Post("/upload", h.Upload)
		r.Route("/threads/{thread}", func(r chi.Router) {
			r.Get("/", h.GetThread)
			r.Post("/", h.CreateReply)
			r.Get("/latest", h.LatestReplies)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)
			r.Get("/overview", h.Overview)
			r.Get("/boards", h.ListAllBoards)
			r.Post("/threads/{thread}/sticky", h.SetThreadSticky)
			r.Post("/threads/{thread}/lock", h.SetThreadLocked)
			r.Delete("/threads/{thread}", h.DeleteThread)
			r.Post("/threads/{thread}/restore", h.RestoreThread)
			r.Delete("/replies/{reply}", h.DeleteReply)
			r.Post("/replies/{reply}/restore", h.RestoreReply)
		})
		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", h.ListThreads)
			r.Post("/", h.CreateThread)
			r.Get("/catalog", h.Catalog)
		})
	})
	env.router = r
	return env
}
