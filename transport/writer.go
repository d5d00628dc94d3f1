package transport

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/Crush251/touchplay/sequence"
)

// Writer 以文本格式写入记录，用于调试模式
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter 包装任意io.Writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Send 写一行"<ms> <id> <x> <y> <action>"
func (w *Writer) Send(r sequence.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintln(w.w, r.String())
	return errors.Wrap(err, "write record")
}

// Close 底层是io.Closer时一并关闭
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok && !isStd(c) {
		return c.Close()
	}
	return nil
}

func isStd(c io.Closer) bool {
	f, ok := c.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
