package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/linguoapp/linguo/internal/client/api"
	"github.com/linguoapp/linguo/internal/client/config"
	"github.com/linguoapp/linguo/internal/client/services"
	"github.com/linguoapp/linguo/internal/client/storage"
	"github.com/linguoapp/linguo/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config         *config.Config
	authService    *services.AuthService
	catalogService *services.CatalogService
	deckService    *services.DeckService
	reviewService  *services.ReviewService
	syncService    *services.SyncService
	session        *services.Session
	db             *sql.DB
	reader         *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, db, err := storage.Open(ctx, c.DatabaseFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	httpClient := &http.Client{Timeout: c.RequestTimeout}
	apiClient := api.NewHTTPClient(c.ServerBaseURL, httpClient)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient),
		catalogService: services.NewCatalogService(c.CatalogURL, httpClient, repos.Catalog, logger),
		deckService:    services.NewDeckService(httpClient, repos.Decks, logger),
		reviewService:  services.NewReviewService(repos.ReviewMeta),
		syncService:    services.NewSyncService(apiClient, repos.ReviewMeta, logger),
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}
