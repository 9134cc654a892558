package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pump_bot/internal/modules/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Network.BaseURL = baseURL
	cfg.Network.Timeout = 2 * time.Second
	return NewClient(cfg)
}

func TestKlinesParsesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			[1000,"1.0","2.0","0.5","1.5","100",1999],
			[2000,"1.5","2.5","1.0","2.0","200",2999]
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	series, err := c.Klines(context.Background(), "ABCUSDT", "1m", 2)
	if err != nil {
		t.Fatalf("Klines: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	first := series[0]
	if first.OpenTime != 1000 || first.CloseTime != 1999 {
		t.Errorf("timestamps = %d/%d, want 1000/1999", first.OpenTime, first.CloseTime)
	}
	if first.Open != 1.0 || first.High != 2.0 || first.Low != 0.5 || first.Close != 1.5 || first.Volume != 100 {
		t.Errorf("OHLCV mismatch: %+v", first)
	}
}

func TestKlinesRejectsNonIncreasingOpenTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			[2000,"1.0","2.0","0.5","1.5","100",2999],
			[1000,"1.5","2.5","1.0","2.0","200",1999]
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Klines(context.Background(), "ABCUSDT", "1m", 2); err == nil {
		t.Fatal("want error on non-increasing openTime")
	}
}

func TestGetReportsTruncatedBody(t *testing.T) {
	// сервер обещает больше, чем отдаёт: обрыв должен всплыть как ошибка
	// чтения, а не как загадочная ошибка декода
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte(`{"symbols":[`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ExchangeInfo(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read body") {
		t.Fatalf("err = %v, want wrapped read body error", err)
	}
}

func TestGetReportsHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.TickerPrices(context.Background())
	if err == nil || !strings.Contains(err.Error(), "http 429") {
		t.Fatalf("err = %v, want http 429 error", err)
	}
}

func TestWatchPriceReturnsWithoutSymbol(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")

	done := make(chan struct{})
	go func() {
		c.WatchPrice(context.Background(), "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WatchPrice must return immediately for an empty symbol")
	}
}
