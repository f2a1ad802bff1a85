package setup

import (
	"github.com/ctchan-dev/ctchan/internal/boards"
	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/handler"
	"github.com/ctchan-dev/ctchan/internal/identity"
	"github.com/ctchan-dev/ctchan/internal/imager"
	"github.com/ctchan-dev/ctchan/internal/jwt"
	"github.com/ctchan-dev/ctchan/internal/live"
	"github.com/ctchan-dev/ctchan/internal/markup"
	"github.com/ctchan-dev/ctchan/internal/middleware"
	"github.com/ctchan-dev/ctchan/internal/service"
	"github.com/ctchan-dev/ctchan/internal/storage/pg"
	"github.com/ctchan-dev/ctchan/internal/utils"
)

// Dependencies holds all initialized collaborators of the application.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Hub            *live.Hub
	Sessions       *identity.Sessions
	AuthMiddleware *middleware.Auth
	Images         *imager.Store
	Config         *config.Config
}

// SetupDependencies wires the application together.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	registry, err := boards.NewRegistry(cfg.Public.Boards)
	if err != nil {
		return nil, err
	}
	images, err := imager.NewStore(cfg.Public.MediaDir, cfg.Public.MediaBaseUrl)
	if err != nil {
		return nil, err
	}

	sessions := identity.NewSessions(cfg.Public.SessionTTL())
	bus := live.NewBus()
	formatter := markup.New()
	jwtService := jwt.New(cfg.Private.JwtKey, cfg.Public.AdminTokenTTL())

	auth := service.NewAuth(jwtService, []byte(cfg.Private.AdminPasswordHash))
	thread := service.NewThread(storage, &utils.PostValidator{}, formatter, sessions, bus, cfg)
	reply := service.NewReply(storage, &utils.PostValidator{}, formatter, sessions, bus, cfg)

	authMiddleware := middleware.NewAuth(jwtService)
	h := handler.New(auth, thread, reply, registry, images, cfg, authMiddleware.IsAdmin)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Hub:            live.NewHub(bus),
		Sessions:       sessions,
		AuthMiddleware: authMiddleware,
		Images:         images,
		Config:         cfg,
	}, nil
}
