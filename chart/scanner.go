package chart

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Crush251/touchplay/util"
)

////////////////////////////////////////////////////////////////////////////////
// 谱面文件扫描器
////////////////////////////////////////////////////////////////////////////////

// ChartInfo 谱面文件信息
type ChartInfo struct {
	Filename   string  `json:"filename"`    // 文件名
	Title      string  `json:"title"`       // 曲目标题
	Level      float64 `json:"level"`       // 难度等级（meta.playlevel）
	BPM        float64 `json:"bpm"`         // 开头BPM
	Taps       int     `json:"taps"`        // 点击音符数
	Flicks     int     `json:"flicks"`      // 方向音符数
	Slides     int     `json:"slides"`      // 长条数
	FilePath   string  `json:"file_path"`   // 完整文件路径
	FileSize   int64   `json:"file_size"`   // 文件大小
	ModifiedAt string  `json:"modified_at"` // 修改时间
}

// Scanner 谱面文件扫描器
type Scanner struct{}

// NewScanner 创建新的谱面扫描器
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan 扫描谱面文件夹，search非空时按文件名过滤
func (s *Scanner) Scan(dir string, search string) ([]ChartInfo, error) {
	files := []ChartInfo{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsChartFile(d.Name()) {
			return nil
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name()), strings.ToLower(search)) {
			return nil
		}

		// 无法解析的文件不出现在列表里
		if info := s.Info(path); info != nil {
			files = append(files, *info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})
	return files, nil
}

// Info 提取单个谱面文件的信息，解析失败返回nil
func (s *Scanner) Info(path string) *ChartInfo {
	c, err := Load(path)
	if err != nil {
		return nil
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil
	}

	info := Summarize(c)
	info.Filename = filepath.Base(path)
	info.FilePath = path
	info.FileSize = stat.Size()
	info.ModifiedAt = stat.ModTime().Format("2006-01-02 15:04:05")
	if info.Title == "" {
		info.Title = info.Filename
	}
	return &info
}

// Summarize 统计谱面内容
func Summarize(c *Chart) ChartInfo {
	info := ChartInfo{
		Title:  c.Title(),
		BPM:    c.Tempo.InitialBPM(),
		Taps:   len(c.Taps),
		Flicks: len(c.Directionals),
		Slides: len(c.Slides),
	}
	if c.Meta != nil {
		if lv, ok := util.ConvertToFloat(c.Meta["playlevel"]); ok {
			info.Level = lv
		}
	}
	return info
}
