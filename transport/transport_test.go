package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/sequence"
)

// recorder 记录收到的全部记录
type recorder struct {
	mu      sync.Mutex
	records []sequence.Record
	failAt  int
}

func (r *recorder) Send(rec sequence.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if r.failAt > 0 && len(r.records) == r.failAt {
		return assert.AnError
	}
	return nil
}

func (r *recorder) Close() error { return nil }

// fakePort 记录写入内容和关闭状态的假串口
type fakePort struct {
	bytes.Buffer
	closed bool
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestWriterFormatsText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Send(sequence.Record{TimeMS: 16, TouchID: 2, X: 3000, Y: 7668, Action: 0}))
	require.NoError(t, w.Send(sequence.Record{TimeMS: 40, TouchID: 2, X: 3000, Y: 8000, Action: 1}))
	assert.Equal(t, "16 2 3000 7668 0\n40 2 3000 8000 1\n", buf.String())
	assert.NoError(t, w.Close())
}

func TestSerialWritesDeviceLines(t *testing.T) {
	port := &fakePort{}
	s := newSerial("/dev/ttyUSB0", port)

	require.NoError(t, s.Send(sequence.Record{TimeMS: 0, TouchID: 4, X: 2667, Y: 8000, Action: 0}))
	require.NoError(t, s.Send(sequence.Record{TimeMS: 20, TouchID: 4, X: 2667, Y: 8000, Action: 1}))
	assert.Equal(t, "4,2667,8000,0\r4,2667,8000,1\r", port.String())

	require.NoError(t, s.Close())
	assert.True(t, port.closed)
	assert.NoError(t, s.Close())
	assert.Error(t, s.Send(sequence.Record{}))
}

func TestPickPort(t *testing.T) {
	name, ok := pickPort([]string{"/dev/ttyS0", "/dev/ttyACM0", "/dev/ttyUSB3", "/dev/cu.usbserial-1"})
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB3", name)

	_, ok = pickPort([]string{"COM1"})
	assert.False(t, ok)
}

func TestBridgePostsRecords(t *testing.T) {
	var mu sync.Mutex
	var got []sequence.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/touch" {
			http.NotFound(w, r)
			return
		}
		var rec sequence.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if rec.TouchID == 9 {
			http.Error(w, "device busy", http.StatusServiceUnavailable)
			return
		}
		mu.Lock()
		got = append(got, rec)
		mu.Unlock()
	}))
	defer srv.Close()

	b := NewBridge(srv.URL+"/", time.Second)
	defer b.Close()

	want := sequence.Record{TimeMS: 120, TouchID: 1, X: 5000, Y: 8000, Action: 0}
	require.NoError(t, b.Send(want))
	assert.Equal(t, []sequence.Record{want}, got)

	err := b.Send(sequence.Record{TouchID: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "device busy")
}

func TestReleaseAll(t *testing.T) {
	r := &recorder{}
	require.NoError(t, ReleaseAll(r))
	require.Len(t, r.records, 10)
	for id, rec := range r.records {
		assert.Equal(t, sequence.Record{TouchID: id, Action: 1}, rec)
	}

	// 中途失败也会继续发送其余编号
	r = &recorder{failAt: 3}
	assert.Error(t, ReleaseAll(r))
	assert.Len(t, r.records, 10)
}

func TestOpenSelectsByKind(t *testing.T) {
	cfg := config.Default()
	cfg.DryRun = true
	tr, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &Writer{}, tr)

	cfg.DryRun = false
	cfg.Transport.Kind = config.TransportBridge
	tr, err = Open(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &Bridge{}, tr)

	cfg.Transport.Kind = "carrier-pigeon"
	_, err = Open(cfg, nil)
	assert.Error(t, err)
}
