package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Crush251/touchplay/sequence"
)

// Bridge 通过HTTP桥接服务转发触摸记录
type Bridge struct {
	url    string
	client *http.Client
}

// NewBridge 创建桥接传输，客户端复用连接
func NewBridge(baseURL string, timeout time.Duration) *Bridge {
	return &Bridge{
		url: strings.TrimRight(baseURL, "/") + "/api/touch",
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableCompression:  true,
			},
		},
	}
}

// Send 同步POST一条记录，非200视为失败
func (b *Bridge) Send(r sequence.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "marshal record")
	}
	resp, err := b.client.Post(b.url, "application/json", bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "post to touch bridge")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("touch bridge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Close 释放空闲连接
func (b *Bridge) Close() error {
	b.client.CloseIdleConnections()
	return nil
}
