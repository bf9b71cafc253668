// Package medals 把成就解锁异步上报到外部网关。
//
// 游戏循环只调用 Unlock，它从不阻塞：请求进入有界队列，由单个后台
// goroutine 逐个 POST。队列满时丢弃并记录日志。
package medals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultQueueSize 默认队列容量
const DefaultQueueSize = 16

// Unlock 上报请求体
type unlockRequest struct {
	MedalID int    `json:"medalId"`
	Echo    string `json:"echo"`
}

// Client 异步成就上报客户端
type Client struct {
	url        string
	httpClient *http.Client
	queue      chan unlockRequest

	done chan struct{}

	mu      sync.Mutex
	closed  bool
	sent    int
	dropped int
}

// New 创建客户端并启动后台 worker
// queueSize <= 0 时使用 DefaultQueueSize；httpClient 为 nil 时使用 10s 超时的默认客户端
func New(gatewayURL string, queueSize int, httpClient *http.Client) *Client {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	c := &Client{
		url:        gatewayURL,
		httpClient: httpClient,
		queue:      make(chan unlockRequest, queueSize),
		done:       make(chan struct{}),
	}
	go c.run()
	return c
}

// Unlock 请求解锁成就，立即返回
func (c *Client) Unlock(medalID int) {
	req := unlockRequest{MedalID: medalID, Echo: uuid.Must(uuid.NewV7()).String()}

	// 持锁入队，Close 之后不再向队列发送
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		log.Printf("[Medals] client closed, medal %d ignored", medalID)
		return
	}
	select {
	case c.queue <- req:
	default:
		c.dropped++
		log.Printf("[Medals] queue full, medal %d dropped", medalID)
	}
}

func (c *Client) run() {
	defer close(c.done)
	for req := range c.queue {
		if err := c.post(req); err != nil {
			log.Printf("[Medals] unlock %d failed: %v", req.MedalID, err)
			continue
		}
		c.mu.Lock()
		c.sent++
		c.mu.Unlock()
		log.Printf("[Medals] unlocked %d (echo %s)", req.MedalID, req.Echo)
	}
}

func (c *Client) post(req unlockRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	resp, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned %s", resp.Status)
	}
	return nil
}

// Stats 返回成功上报与被丢弃的数量
func (c *Client) Stats() (sent, dropped int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent, c.dropped
}

// Close 停止接收新请求并等待队列排空
// ctx 到期时直接返回 ctx.Err()，后台 worker 会继续把剩余请求发完
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Noop 不上报任何成就，只记录日志
type Noop struct{}

// Unlock 实现 systems.MedalUnlocker
func (Noop) Unlock(medalID int) {
	log.Printf("[Medals] unlock %d (no gateway configured)", medalID)
}
