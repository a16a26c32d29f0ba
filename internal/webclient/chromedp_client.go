package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/karandeol-26/VeriCura/internal/logging"
)

// ChromedpClient renders pages in a shared headless Chrome and returns the
// DOM after the network goes idle. Each request runs in its own tab.
type ChromedpClient struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	idleAfter     time.Duration
	timeout       time.Duration
	logger        logging.Logger
}

func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("webclient: nil logger")
	}
	l := logger.With(logging.Field{Key: "backend", Value: "chromedp"})

	idleAfter := cfg.IdleAfter
	if idleAfter <= 0 {
		idleAfter = 2 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so construction fails where Chrome is missing.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	l.Debug("created chromedp webclient",
		logging.Field{Key: "idle_after", Value: idleAfter.String()},
		logging.Field{Key: "headless", Value: cfg.Headless})

	return &ChromedpClient{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		idleAfter:     idleAfter,
		timeout:       timeout,
		logger:        l,
	}, nil
}

// NewTab opens a tab in the shared browser. The returned context drives the
// tab; cancel closes it.
func (c *ChromedpClient) NewTab() (context.Context, context.CancelFunc) {
	return chromedp.NewContext(c.browserCtx)
}

// waitNetworkIdle signals once no request has been in flight for idleAfter.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) (<-chan struct{}, func()) {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) <= 0 {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	return idleChan, startTimer
}

// Do navigates a fresh tab to req.URL and returns the rendered outer HTML.
// Only GET is supported.
func (c *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if m := strings.ToUpper(req.Method); m != "" && m != http.MethodGet {
		return nil, fmt.Errorf("chromedp: method %s not supported", m)
	}

	tabCtx, cancel := c.NewTab()
	defer cancel()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var (
		statusMu sync.Mutex
		status   int
		headers  = http.Header{}
	)
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			statusMu.Lock()
			defer statusMu.Unlock()
			if status == 0 {
				status = int(e.Response.Status)
				for k, v := range e.Response.Headers {
					headers.Set(k, fmt.Sprint(v))
				}
			}
		}
	})
	idle, kick := waitNetworkIdle(tabCtx, c.idleAfter)

	c.logger.Debug("navigating", logging.Field{Key: "url", Value: req.URL})
	if err := chromedp.Run(tabCtx, network.Enable(), chromedp.Navigate(req.URL)); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", req.URL, err)
	}
	kick()

	select {
	case <-idle:
	case <-tabCtx.Done():
		return nil, fmt.Errorf("wait for network idle: %w", tabCtx.Err())
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read rendered html: %w", err)
	}

	statusMu.Lock()
	code := status
	statusMu.Unlock()
	if code == 0 {
		code = http.StatusOK
	}

	return &Response{
		Request:    req,
		Body:       []byte(html),
		Headers:    headers,
		StatusCode: code,
		FetchedAt:  time.Now(),
	}, nil
}

func (c *ChromedpClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

// Close shuts the browser down.
func (c *ChromedpClient) Close() error {
	c.browserCancel()
	c.allocCancel()
	c.logger.Debug("closed chromedp webclient")
	return nil
}
