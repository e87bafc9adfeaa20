package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/version"
)

const defaultCallTimeout = 30 * time.Second

// server is the interface for http server.
type server interface {
	call(ctx context.Context, u *url.URL, method string, bodyReader io.Reader) (int, []byte, error)
}

// httpServer is the http implement for server
type httpServer struct {
	cli *http.Client
}

// newHttpServer provides a new httpServer
func newHttpServer() *httpServer {
	return &httpServer{cli: http.DefaultClient}
}

func (hs *httpServer) call(ctx context.Context, u *url.URL, method string, bodyReader io.Reader) (int, []byte, error) {
	req, err := http.NewRequest(method, u.String(), bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent("cli"))

	resp, err := hs.cli.Do(req.WithContext(ctx))
	if err != nil && ctx.Err() != nil { // check if it timed out
		return 0, nil, ctx.Err()
	} else if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.CPrint(logging.ERROR, "fail on request with code", logging.LogFormat{"code": resp.StatusCode})
	}

	body, err := ioutil.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

// Client is the top level for http server
type Client struct {
	url string
	s   server
}

// HTTPClient creates a client based on http
func HTTPClient(apiURL string) *Client {
	return &Client{url: apiURL, s: newHttpServer()}
}

// APIError is a non-2xx answer of the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Call posts request as JSON to path and decodes a 2xx answer into response.
func (c *Client) Call(ctx context.Context, path string, request, response interface{}) error {
	u, err := url.Parse(c.url)
	if err != nil {
		return err
	}
	u.Path = path

	var jsonBody bytes.Buffer
	if err := json.NewEncoder(&jsonBody).Encode(request); err != nil {
		return err
	}

	status, body, err := c.s.call(ctx, u, http.MethodPost, &jsonBody)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) != nil || e.Error == "" {
			e.Error = string(bytes.TrimSpace(body))
		}
		return &APIError{Status: status, Message: e.Error}
	}
	return json.Unmarshal(body, response)
}

// ClientCall posts to the configured API with the default timeout.
func ClientCall(path string, request, response interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCallTimeout)
	defer cancel()
	return HTTPClient(config.APIURL).Call(ctx, path, request, response)
}

func printJSON(w io.Writer, data interface{}) error {
	str, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		logging.CPrint(logging.ERROR, "fail to marshal json", logging.LogFormat{"err": err})
		return err
	}
	_, err = fmt.Fprintln(w, string(str))
	return err
}
