package sequence

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/synth"
)

// Preprocessor 谱面到触摸序列的预处理器
type Preprocessor struct {
	log *zap.Logger
	now func() time.Time
}

// NewPreprocessor 创建预处理器，log为nil时不输出
func NewPreprocessor(log *zap.Logger) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preprocessor{log: log.Named("preprocess"), now: time.Now}
}

// Generate 读取谱面、合成、校验并保存到outPath
func (p *Preprocessor) Generate(chartPath, outPath string) (*TouchSequence, error) {
	p.log.Info("🔄 开始预处理", zap.String("chart", chartPath))

	c, err := chart.Load(chartPath)
	if err != nil {
		return nil, err
	}
	seq, err := p.Build(c, chartPath)
	if err != nil {
		return nil, errors.Wrapf(err, "synthesize %s", chartPath)
	}
	if err := seq.Save(outPath); err != nil {
		return nil, err
	}

	p.log.Info("✅ 预处理完成",
		zap.String("output", outPath),
		zap.Int("touches", seq.Meta.TouchNotes),
		zap.Int("records", seq.Meta.TotalEvents),
		zap.Duration("duration", seq.Duration()),
	)
	return seq, nil
}

// Build 在内存中生成序列
func (p *Preprocessor) Build(c *chart.Chart, source string) (*TouchSequence, error) {
	notes, err := synth.Classify(c)
	if err != nil {
		return nil, err
	}
	raw, err := synth.Trajectories(c.Tempo, notes)
	if err != nil {
		return nil, err
	}
	records := FromEvents(synth.Assemble(raw))
	if err := Validate(records); err != nil {
		return nil, err
	}

	touches := 0
	for _, n := range notes {
		if n.Kind != synth.KindSlide || n.Anchor.Role == synth.RoleStart {
			touches++
		}
	}
	p.log.Debug("synthesized", zap.Int("notes", len(notes)), zap.Int("touches", touches))

	return &TouchSequence{
		Meta: SequenceMeta{
			ID:              uuid.NewString(),
			SourceFile:      filepath.Base(source),
			Title:           c.Title(),
			BPM:             c.Tempo.InitialBPM(),
			TotalDurationMS: records[len(records)-1].TimeMS,
			TotalEvents:     len(records),
			TouchNotes:      touches,
			GeneratedAt:     p.now(),
			Version:         Version,
		},
		Records: records,
	}, nil
}
