// Package cnpj looks registrant data up in the public registry
// (BrasilAPI) so warehouse records can be pre-filled from a CNPJ.
package cnpj

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Registrant struct {
	LegalName string `json:"razao_social"`
	TradeName string `json:"nome_fantasia"`
	Street    string `json:"logradouro"`
	Number    string `json:"numero"`
	District  string `json:"bairro"`
	City      string `json:"municipio"`
	UF        string `json:"uf"`
	CEP       string `json:"cep"`
	Status    string `json:"situacao_cadastral"`
}

// ErrNotFound marks a CNPJ absent from the public registry.
var ErrNotFound = fmt.Errorf("cnpj not found in public registry")

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Fetch(ctx context.Context, cnpj string) (*Registrant, error) {
	clean := digits(cnpj)
	if len(clean) != 14 {
		return nil, fmt.Errorf("cnpj must have 14 digits")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+clean, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry lookup failed: http %d", resp.StatusCode)
	}
	var r Registrant
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	// Some registrants publish only the trade name.
	if r.LegalName == "" {
		r.LegalName = r.TradeName
	}
	return &r, nil
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
