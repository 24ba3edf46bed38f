package model

import (
	"net/http"
	"time"
)

// Request is a backend-agnostic page request executed by a WebClient.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Response is the outcome of a Request, with the body fully read.
type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}
