// Package web serves the cvboard page. Each request is one binder event;
// requests are handled one at a time.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/ui"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address string
	logger  logging.Logger

	mu     sync.Mutex
	binder *ui.Binder
	view   *pageView

	engine *gin.Engine
}

// NewServer binds a page to records. Binder options (time zone, collation)
// are passed through.
func NewServer(address string, records ui.RecordService, l logging.Logger, opts ...ui.Option) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "web"),
		view:    newPageView(),
	}
	s.binder = ui.NewBinder(records, s.view, append([]ui.Option{ui.WithLogger(l)}, opts...)...)
	s.engine = s.newEngine()
	return s
}

func (s *Server) newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(s.requestLogger(), gin.Recovery())
	engine.SetHTMLTemplate(pageTemplate)

	engine.GET("/", s.event(func(ctx context.Context, _ *gin.Context) { s.binder.Load(ctx) }))
	engine.POST("/", s.event(func(context.Context, *gin.Context) {}))
	engine.POST("/select-skill", s.event(func(_ context.Context, c *gin.Context) {
		s.binder.SelectSkill(c.PostForm("preset"))
	}))
	engine.POST("/add", s.event(func(ctx context.Context, _ *gin.Context) { s.binder.Add(ctx) }))
	engine.POST("/view", s.event(func(ctx context.Context, _ *gin.Context) { s.binder.ViewStudents(ctx) }))
	engine.POST("/search", s.event(func(ctx context.Context, c *gin.Context) {
		s.binder.SearchBySkill(ctx, c.PostForm("search"))
	}))
	engine.POST("/delete", s.event(func(ctx context.Context, _ *gin.Context) { s.binder.DeleteAll(ctx) }))

	return engine
}

// event serializes fn with every other request, keeping posted form values,
// and renders the page.
func (s *Server) event(fn func(ctx context.Context, c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if c.Request.Method == http.MethodPost {
			form := s.binder.Form()
			form.Title = c.PostForm("title")
			form.Description = c.PostForm("description")
			form.Skills = c.PostForm("skills")
		}

		fn(c.Request.Context(), c)

		c.HTML(http.StatusOK, pageTemplateName, pageData{
			IDs:          ids,
			Form:         *s.binder.Form(),
			Presets:      ui.PresetSkills,
			SkillOptions: s.view.skills,
			Jobs:         s.view.lists[ui.AllListID],
			Students:     s.view.lists[ui.FilteredListID],
			Alerts:       s.view.takeAlerts(),
		})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
	}
}

// Handler exposes the routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting web server", "address", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
