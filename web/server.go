// Package web 提供谱面浏览、预处理和回放的HTTP接口。
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/replay"
	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/transport"
)

////////////////////////////////////////////////////////////////////////////////
// Web服务模块
////////////////////////////////////////////////////////////////////////////////

// OpenFunc 打开设备传输
type OpenFunc func(cfg config.Config, log *zap.Logger) (transport.Transport, error)

// Server Web服务器
type Server struct {
	cfg     config.Config
	log     *zap.Logger
	scanner *chart.Scanner
	pre     *sequence.Preprocessor
	tracker *replay.Tracker
	open    OpenFunc
	playCtx context.Context
	handler http.Handler
}

// New 创建Web服务器
func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		log:     log.Named("web"),
		scanner: chart.NewScanner(),
		pre:     sequence.NewPreprocessor(log),
		tracker: replay.NewTracker(),
		open:    transport.Open,
		playCtx: context.Background(),
	}
	s.handler = s.routes()
	return s
}

// WithOpener 替换传输的打开方式
func (s *Server) WithOpener(open OpenFunc) *Server {
	s.open = open
	return s
}

// Tracker 回放状态
func (s *Server) Tracker() *replay.Tracker {
	return s.tracker
}

// Handler 带跨域处理的HTTP入口
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	// 轻量级路由，只保留错误恢复
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/charts", s.listCharts)
	api.GET("/chart", s.getChart)
	api.POST("/preprocess", s.preprocess)
	api.GET("/exec/check", s.checkExec)
	api.POST("/exec/play", s.playExec)
	api.GET("/playback/status", s.playbackStatus)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// Run 监听直到ctx取消，然后优雅退出
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	s.playCtx = ctx
	srv := &http.Server{Addr: s.cfg.Web.Addr, Handler: s.handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("🌐 Web服务启动", zap.String("addr", s.cfg.Web.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// chartPath 请求中的文件名只取基本名，不允许跳出谱面目录
func (s *Server) chartPath(filename string) string {
	return filepath.Join(s.cfg.ChartDir, filepath.Base(filename))
}

func (s *Server) execPath(filename string) string {
	return sequence.ExecPath(s.cfg.ExecDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
