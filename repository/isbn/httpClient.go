package isbnrepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"booknetwork/util/httpx"
)

type httpRepo struct {
	apiKey string
	client *http.Client
}

func NewHTTP(apiKey string) Repo { return &httpRepo{apiKey: apiKey, client: httpx.Client()} }

// Lookup queries the API Ninjas books endpoint by ISBN. Best-effort metadata
// only; callers treat any error as "no enrichment".
func (r *httpRepo) Lookup(isbn string) (*BookMeta, error) {
	if r.apiKey == "" {
		return nil, errors.New("isbn lookup disabled: no api key")
	}

	u := "https://api.api-ninjas.com/v1/books?title=&isbn=" + url.QueryEscape(isbn)
	httpReq, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("isbn lookup failed: %s", resp.Status)
	}

	var out []struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("isbn: no match")
	}

	return &BookMeta{Title: out[0].Title, Author: out[0].Author}, nil
}
