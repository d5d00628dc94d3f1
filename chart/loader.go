package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// 谱面文件读取器
////////////////////////////////////////////////////////////////////////////////

// Format 谱面文件格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// chartFile 谱面文件结构（谱面解析器输出的中间格式）
type chartFile struct {
	Meta         map[string]any    `json:"meta" yaml:"meta"`
	BPMs         [][]float64       `json:"bpms" yaml:"bpms"`             // [[tick, bpm], ...]
	BarLengths   [][]float64       `json:"barLengths" yaml:"barLengths"` // [[tick, 拍数], ...]
	Taps         []TapNote         `json:"taps" yaml:"taps"`
	Directionals []DirectionalNote `json:"directionals" yaml:"directionals"`
	Slides       [][]SlideNote     `json:"slides" yaml:"slides"`
}

// FormatOf 根据扩展名判断格式
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("unsupported chart file extension: %s", path)
}

// IsChartFile 是否为可读取的谱面文件（exec序列文件除外）
func IsChartFile(path string) bool {
	if strings.HasSuffix(strings.ToLower(path), ".exec.json") {
		return false
	}
	_, err := FormatOf(path)
	return err == nil
}

// Load 读取谱面文件
func Load(path string) (*Chart, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read chart %s", path)
	}

	c, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load chart %s", path)
	}
	return c, nil
}

// Decode 解析谱面数据
func Decode(data []byte, format Format) (*Chart, error) {
	var raw chartFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Errorf("unknown chart format %q", format)
	}
	return raw.build()
}

func (raw *chartFile) build() (*Chart, error) {
	changes := make([]BPMChange, 0, len(raw.BPMs))
	for i, pair := range raw.BPMs {
		if len(pair) != 2 {
			return nil, errors.Errorf("bpm entry %d: want [tick, bpm], got %v", i, pair)
		}
		changes = append(changes, BPMChange{Tick: int(pair[0]), BPM: pair[1]})
	}
	tempo, err := NewTempoMap(changes)
	if err != nil {
		return nil, err
	}

	c := &Chart{
		Meta:  raw.Meta,
		Tempo: tempo,
	}

	for i, pair := range raw.BarLengths {
		if len(pair) != 2 {
			return nil, errors.Errorf("bar length entry %d: want [tick, beats], got %v", i, pair)
		}
		c.BarLengths = append(c.BarLengths, BarLength{Tick: int(pair[0]), Beats: pair[1]})
	}

	// 轨道外的是fever等控制音符，直接忽略
	for _, n := range raw.Taps {
		if IsPlayableLane(n.Lane) {
			c.Taps = append(c.Taps, n)
		}
	}
	for _, n := range raw.Directionals {
		if IsPlayableLane(n.Lane) {
			c.Directionals = append(c.Directionals, n)
		}
	}

	for i, group := range raw.Slides {
		if err := validateSlide(group); err != nil {
			return nil, errors.Wrapf(err, "slide %d", i)
		}
		c.Slides = append(c.Slides, append([]SlideNote(nil), group...))
	}

	return c, nil
}

// validateSlide 每个长条有且仅有一个开始和一个结束，中继点按tick升序
func validateSlide(group []SlideNote) error {
	if len(group) < 2 {
		return errors.Errorf("needs a start and an end, got %d notes", len(group))
	}
	if group[0].Type != SlideStart {
		return errors.Errorf("first note type %d is not a start", group[0].Type)
	}
	last := len(group) - 1
	if group[last].Type != SlideEnd {
		return errors.Errorf("last note type %d is not an end", group[last].Type)
	}
	for i := 1; i < len(group); i++ {
		n := group[i]
		if i < last && n.Type != SlideWaypoint && n.Type != SlideHiddenWaypoint {
			return errors.Errorf("note %d has type %d inside the slide", i, n.Type)
		}
		if n.Tick < group[i-1].Tick {
			return errors.Errorf("note %d at tick %d comes before tick %d", i, n.Tick, group[i-1].Tick)
		}
	}
	return nil
}
