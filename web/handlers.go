package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/replay"
	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/transport"
)

type fileRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// listCharts 谱面列表
func (s *Server) listCharts(c *gin.Context) {
	files, err := s.scanner.Scan(s.cfg.ChartDir, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"count": len(files),
	})
}

// getChart 单个谱面的统计
func (s *Server) getChart(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少filename参数"})
		return
	}
	path := s.chartPath(filename)
	if !fileExists(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "谱面文件不存在"})
		return
	}
	info := s.scanner.Info(path)
	if info == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "谱面文件无法解析"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// preprocess 生成预计算序列
func (s *Server) preprocess(c *gin.Context) {
	var req fileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	path := s.chartPath(req.Filename)
	if !fileExists(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "谱面文件不存在"})
		return
	}

	out := s.execPath(req.Filename)
	seq, err := s.pre.Generate(path, out)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "预处理失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "预处理完成",
		"exec_path":    out,
		"total_events": seq.Meta.TotalEvents,
		"touch_notes":  seq.Meta.TouchNotes,
		"duration_ms":  seq.Meta.TotalDurationMS,
	})
}

// checkExec 预计算序列是否存在
func (s *Server) checkExec(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少filename参数"})
		return
	}
	out := s.execPath(filename)
	if !fileExists(out) {
		c.JSON(http.StatusOK, gin.H{"exists": false, "exec_path": out})
		return
	}
	seq, err := sequence.Load(out)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"exists": false, "exec_path": out, "error": "文件损坏: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exists":       true,
		"exec_path":    out,
		"total_events": seq.Meta.TotalEvents,
		"duration_ms":  seq.Meta.TotalDurationMS,
		"generated_at": seq.Meta.GeneratedAt,
	})
}

// playExec 在后台回放预计算序列
func (s *Server) playExec(c *gin.Context) {
	var req fileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	if s.tracker.IsRunning() {
		c.JSON(http.StatusConflict, gin.H{"error": "已有回放在进行"})
		return
	}
	out := s.execPath(req.Filename)
	if !fileExists(out) {
		c.JSON(http.StatusNotFound, gin.H{"error": "执行序列文件不存在，请先预处理"})
		return
	}
	seq, err := sequence.Load(out)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	tr, err := s.open(s.cfg, s.log)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "设备连接失败: " + err.Error()})
		return
	}
	engine := replay.NewEngine(seq, tr, replay.Options{
		LagWarn:         s.cfg.LagWarn(),
		ProgressLog:     s.cfg.ProgressLogInterval(),
		ReleaseOnFinish: s.cfg.Replay.ReleaseOnFinish,
	}, s.log).WithTracker(s.tracker)

	err = engine.PlayAsync(s.playCtx, func(replay.Stats, error) {
		closeTransport(s.log, tr)
	})
	if err != nil {
		closeTransport(s.log, tr)
		if errors.Is(err, replay.ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": "已有回放在进行"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "开始回放",
		"exec_path":    out,
		"total_events": seq.Meta.TotalEvents,
		"duration_ms":  seq.Meta.TotalDurationMS,
	})
}

// playbackStatus 回放状态
func (s *Server) playbackStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Status())
}

func closeTransport(log *zap.Logger, tr transport.Transport) {
	if err := tr.Close(); err != nil {
		log.Warn("⚠️  关闭设备连接失败", zap.Error(err))
	}
}
