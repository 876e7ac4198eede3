package llm

import (
	"net/http"
	"time"

	"github.com/ppiankov/civiclens/internal/util"
)

// newHTTPClient builds the client shared by the HTTP-based providers.
// The per-request deadline comes from the caller's context; the client timeout
// is only a backstop.
func newHTTPClient(config Config, fallback time.Duration) *http.Client {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = fallback
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}
}
