package server

// PageRequest names the page a session works on. URL makes the server fetch
// the page itself; Agent attaches a live page served by a bridge agent.
// Agent wins when both are set.
type PageRequest struct {
	URL   string `json:"url,omitempty" example:"https://www.cdc.gov/flu/symptoms/index.html"`
	Agent string `json:"agent,omitempty" example:"ws://localhost:9333/bridge"`
}

// SessionResponse is returned when a session is opened.
type SessionResponse struct {
	ID string `json:"id" example:"5d9b7c1e-8e0a-4f43-9d7e-3f0a6c2a11aa"`
}

// BatchScanRequest lists the URLs of a session-less batch scan. With Crawl
// set, each URL is expanded into the same-site pages it links to first.
type BatchScanRequest struct {
	URLs  []string `json:"urls" example:"[\"https://www.cdc.gov/flu/\"]"`
	Crawl bool     `json:"crawl"`
}

// HealthResponse reports liveness and whether deep analysis is available.
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	DeepAnalysis bool   `json:"deep_analysis" example:"true"`
	Client       string `json:"client" example:"nethttp"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"session not found"`
}
