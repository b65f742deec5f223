// Package addresslookup resolves Brazilian postal codes (CEP) to address
// fields used to prefill checkout forms.
package addresslookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"food-delivery/internal/domain"
)

// Address holds the fields the lookup service can fill in.
type Address struct {
	ZipCode      string `json:"zipCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type viaCEPReply struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// Lookup returns domain.ErrNotFound for codes the service does not know.
func (c *Client) Lookup(ctx context.Context, postalCode string) (*Address, error) {
	cep := Digits(postalCode)
	if len(cep) != 8 {
		return nil, domain.Invalid("zipCode", "CEP deve ter 8 dígitos")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", c.baseURL, cep), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("address lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("address lookup: status %d", resp.StatusCode)
	}

	var reply viaCEPReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("address lookup: decode: %w", err)
	}
	// the service reports unknown codes as {"erro": true}, or "true" in
	// newer versions
	switch v := reply.Erro.(type) {
	case bool:
		if v {
			return nil, domain.ErrNotFound
		}
	case string:
		if v == "true" {
			return nil, domain.ErrNotFound
		}
	}

	return &Address{
		ZipCode:      cep,
		Street:       reply.Logradouro,
		Neighborhood: reply.Bairro,
		City:         reply.Localidade,
		State:        reply.UF,
	}, nil
}

func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
