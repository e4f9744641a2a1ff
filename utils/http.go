package utils

import (
	"net/http"
	"time"
)

const (
	UserAgent = "Showscout/1.0 <github.com/marcus-crane/showscout>"
)

type UARoundtripper struct {
	RT http.RoundTripper
}

func (uart *UARoundtripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := uart.RT
	if rt == nil {
		rt = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return rt.RoundTrip(req)
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &UARoundtripper{},
	}
}
