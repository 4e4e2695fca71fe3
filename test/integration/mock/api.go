package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is a recording HTTP server standing in for third party APIs.
// Responses are keyed by method+path; unmatched requests get 200 and {}.
type ApiMock struct {
	mu               sync.Mutex
	requestsReceived map[string][]map[string]any
	responseMap      map[string]any
	responseStatus   map[string]int
	server           *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		responseMap:      map[string]any{},
		responseStatus:   map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				key := r.Method + r.URL.Path

				body, _ := io.ReadAll(r.Body)
				var request map[string]any
				_ = json.Unmarshal(body, &request)
				if request == nil {
					request = map[string]any{}
				}

				a.mu.Lock()
				a.requestsReceived[key] = append(a.requestsReceived[key], request)
				status, ok := a.responseStatus[key]
				if !ok || status == 0 {
					status = http.StatusOK
				}
				response, ok := a.responseMap[key]
				if !ok || response == nil {
					response = map[string]any{}
				}
				a.mu.Unlock()

				responseString, _ := json.Marshal(response)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write(responseString)
			},
		),
	)
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) SetResponse(method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responseStatus[method+path] = status
	a.responseMap[method+path] = response
}

// GetRequestBody returns the index-th JSON body received on method+path, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

// Reset forgets every recorded request and configured response.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.responseMap = map[string]any{}
	a.responseStatus = map[string]int{}
}
