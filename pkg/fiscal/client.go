package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"integrarural/config"
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

var baseURLByEnv = map[string]string{
	config.EnvSandbox:    "https://homologacao.focusnfe.com.br",
	config.EnvProduction: "https://api.focusnfe.com.br",
}

// Submitter is the external fiscal submission collaborator. One attempt
// per invocation; retry policy belongs to the caller.
type Submitter interface {
	Submit(ctx context.Context, ref string, payload *Payload) (*SubmissionResult, error)
	Query(ctx context.Context, ref string) (*SubmissionResult, error)
}

type client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewClient(cfg config.AppConfig) Submitter {
	base := cfg.FocusBaseURL
	if base == "" {
		base = baseURLByEnv[cfg.FocusEnv]
	}
	return &client{
		baseURL: strings.TrimRight(base, "/"),
		token:   cfg.FocusToken,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) Submit(ctx context.Context, ref string, payload *Payload) (*SubmissionResult, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &apperr.SubmissionError{Detail: "encode payload", Err: err}
	}
	url := fmt.Sprintf("%s/v2/nfe?ref=%s", c.baseURL, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, &apperr.SubmissionError{Detail: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token token="+c.token)
	return c.do(req)
}

func (c *client) Query(ctx context.Context, ref string) (*SubmissionResult, error) {
	url := fmt.Sprintf("%s/v2/nfe/%s", c.baseURL, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperr.SubmissionError{Detail: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Token token="+c.token)
	return c.do(req)
}

func (c *client) do(req *http.Request) (*SubmissionResult, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &apperr.SubmissionError{Detail: "fiscal authority unreachable", Err: err}
	}
	defer resp.Body.Close()

	var out SubmissionResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &apperr.SubmissionError{Detail: fmt.Sprintf("decode response (http %d)", resp.StatusCode), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperr.SubmissionError{Detail: fmt.Sprintf("http %d: %s", resp.StatusCode, errorList(&out))}
	}
	// The authority reports rejections as an embedded error list on 2xx.
	if len(out.Errors) > 0 {
		return nil, &apperr.SubmissionError{Detail: errorList(&out)}
	}
	return &out, nil
}

func errorList(r *SubmissionResult) string {
	if len(r.Errors) == 0 {
		if r.Message != "" {
			return r.Message
		}
		return "rejected"
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Upstream status vocabulary mapped to the internal one. Anything not in
// the table maps to error; an unknown status is never treated as
// authorized.
var statusTable = map[string]string{
	"autorizado":              entities.NFeStatusAuthorized,
	"processando":             entities.NFeStatusProcessing,
	"processando_autorizacao": entities.NFeStatusProcessing,
	"cancelado":               entities.NFeStatusCancelled,
	"erro_autorizacao":        entities.NFeStatusError,
	"denegado":                entities.NFeStatusError,
}

func MapStatus(upstream string) string {
	if s, ok := statusTable[upstream]; ok {
		return s
	}
	return entities.NFeStatusError
}

// StripKeyPrefix drops the "NFe" prefix from a returned document key so
// the bare 44-digit key fits the storage column.
func StripKeyPrefix(key string) string {
	return strings.TrimPrefix(key, "NFe")
}
