package http

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kardolus/taskpilot/api"
	"github.com/kardolus/taskpilot/config"
)

const (
	contentType              = "application/json"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"
	headerAccept             = "Accept"
	defaultRequestTimeout    = 5 * time.Minute
)

//go:generate mockgen -destination=../../advisor/callermocks_test.go -package=advisor_test github.com/kardolus/taskpilot/api/http Caller
type Caller interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
	PostStream(ctx context.Context, url string, body []byte, w io.Writer) ([]byte, error)
}

type RestCaller struct {
	client *http.Client
	config config.Config
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg config.Config) *RestCaller {
	client := &http.Client{Timeout: defaultRequestTimeout}
	if cfg.SkipTLSVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &RestCaller{
		client: client,
		config: cfg,
	}
}

// Post sends body and returns the full response body. A non-2xx status is
// returned as *api.StatusError.
func (r *RestCaller) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	response, err := r.do(ctx, url, body, false)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	result, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}
	return result, nil
}

// PostStream sends body expecting a server-sent event stream, copies each
// content delta to w as it arrives and returns the assembled text.
func (r *RestCaller) PostStream(ctx context.Context, url string, body []byte, w io.Writer) ([]byte, error) {
	response, err := r.do(ctx, url, body, true)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	return ProcessResponse(response.Body, w)
}

func (r *RestCaller) do(ctx context.Context, url string, body []byte, stream bool) (*http.Response, error) {
	req, err := r.newRequest(ctx, url, body, stream)
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		defer response.Body.Close()
		return nil, statusError(response)
	}

	return response, nil
}

func statusError(response *http.Response) error {
	serr := &api.StatusError{Status: response.StatusCode}

	errorResponse, err := io.ReadAll(response.Body)
	if err != nil {
		return serr
	}
	serr.Body = errorResponse

	var errorData api.ErrorResponse
	if err := json.Unmarshal(errorResponse, &errorData); err == nil {
		serr.Message = errorData.Error.Message
	}
	return serr
}

func (r *RestCaller) newRequest(ctx context.Context, url string, body []byte, stream bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if r.config.APIKey != "" {
		req.Header.Set(r.config.AuthHeader, r.config.AuthTokenPrefix+r.config.APIKey)
	}
	req.Header.Set(headerContentType, contentType)
	if r.config.UserAgent != "" {
		req.Header.Set(headerUserAgent, r.config.UserAgent)
	}
	if stream {
		req.Header.Set(headerAccept, "text/event-stream")
	}
	for k, v := range r.config.CustomHeaders {
		req.Header.Set(k, v)
	}

	return req, nil
}

// ProcessResponse reads a chat completion event stream until [DONE]. Chunks
// that fail to decode are reported inline on w and skipped.
func ProcessResponse(reader io.Reader, writer io.Writer) ([]byte, error) {
	var result []byte

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			_, _ = writer.Write([]byte("\n"))
			result = append(result, '\n')
			return result, nil
		}

		var data api.Data
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			_, _ = fmt.Fprintf(writer, "Error: %s\n", err.Error())
			continue
		}
		for _, choice := range data.Choices {
			if content, ok := choice.Delta["content"].(string); ok {
				_, _ = writer.Write([]byte(content))
				result = append(result, content...)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf(errFailedToRead, err)
	}
	return result, nil
}
