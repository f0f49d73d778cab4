package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/agusespa/testsmith/internal/assistant"
	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderFactory builds a chat provider; empty arguments select the
// configured defaults.
type ProviderFactory func(provider, model string) (llm.Provider, error)

type GithubWriter interface {
	CreateOrUpdateFile(ctx context.Context, owner, repo, path, content, message, branch string) (tools.GithubSaveResult, error)
}

type SuiteRunner interface {
	Run(ctx context.Context, kind tools.TestKind, cwd string) tools.TestRunResult
}

type Formatter interface {
	Format(ctx context.Context, code string, lang types.TargetLanguage) string
}

type SyntaxChecker interface {
	Check(code string, lang types.TargetLanguage) (tools.SyntaxReport, error)
}

// DefaultProviderCacheSize bounds how many provider/model pairs keep a live
// provider between requests.
const DefaultProviderCacheSize = 32

// Deps are the collaborators behind the HTTP API. Formatter and Checker are
// optional.
type Deps struct {
	Providers ProviderFactory
	Storage   assistant.Saver
	Git       assistant.Pusher
	Github    func() (GithubWriter, error)
	Runner    SuiteRunner
	Formatter Formatter
	Checker   SyntaxChecker
	Logger    *slog.Logger

	// ProviderCacheSize defaults to DefaultProviderCacheSize.
	ProviderCacheSize int
}

type Server struct {
	deps   Deps
	logger *slog.Logger
	router *gin.Engine

	mu        sync.Mutex
	providers *lru.Cache[string, llm.Provider]
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	size := deps.ProviderCacheSize
	if size <= 0 {
		size = DefaultProviderCacheSize
	}
	// lru.New only fails for a non-positive size.
	providers, _ := lru.New[string, llm.Provider](size)

	s := &Server{
		deps:      deps,
		logger:    logger,
		providers: providers,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(s.logger),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:   []string{RequestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
	)

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/generate/test-cases", s.generateTestCases)
	router.POST("/generate/test-code", s.generateTestCode)
	router.POST("/generate/demo-app", s.generateDemoApp)
	router.POST("/review/test", s.reviewTest)

	router.POST("/save/local", s.saveLocal)
	router.POST("/save/github", s.saveGithub)
	router.POST("/git/push", s.gitPush)
	router.POST("/tests/run", s.runTests)

	router.GET("/templates", s.listTemplates)
	router.POST("/templates/:name/render", s.renderTemplate)

	return router
}

// assistantFor returns an assistant over the requested provider. Providers are
// kept in a bounded LRU per provider/model pair so their rate limiters are
// shared between requests.
func (s *Server) assistantFor(provider, model string) (*assistant.Assistant, error) {
	if s.deps.Providers == nil {
		return nil, errors.New("no chat provider configured")
	}

	key := provider + "|" + model
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.providers.Get(key)
	if !ok {
		var err error
		p, err = s.deps.Providers(provider, model)
		if err != nil {
			return nil, err
		}
		if s.providers.Add(key, p) {
			s.logger.Debug("evicted least recently used provider", "size", s.providers.Len())
		}
	}
	return assistant.New(p, s.logger), nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
