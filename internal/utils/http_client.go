package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the sync client to the record service.
const UserAgent = "diary-sync/1"

// HTTPClient is a resty client preset for the JSON record service API.
//
//	client := utils.NewHTTPClient("http://localhost:8080", 30*time.Second)
//	resp, err := client.R().SetBody(q).Post("/api/records/query")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client whose relative request URLs resolve against
// baseURL. A positive timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
