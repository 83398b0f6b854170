// Package catalog is the boundary to the services that hold works and their
// incipits. Similarity is computed elsewhere; this side only builds queries
// from PAE text and reads back records.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/incipitdex/constants"
	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/pkg/errors"
)

type Mode string

const (
	Similar   Mode = "similar"
	Substring Mode = "substring"
)

var ErrEmptyQuery = errors.New("draw or paste a PAE string to search")

type Query struct {
	PAE       string
	Mode      Mode
	Threshold float64
	Window    int
}

// ParseThreshold accepts "0,4" as well as "0.4".
func ParseThreshold(s string) float64 {
	f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return constants.DefaultThreshold
	}
	return f
}

func ParseWindow(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return constants.DefaultWindow
	}
	return n
}

// Values validates q and renders it as URL query parameters.
func (q Query) Values() (url.Values, error) {
	pae := strings.TrimSpace(q.PAE)
	if pae == "" {
		return nil, ErrEmptyQuery
	}
	v := url.Values{}
	v.Set("pae", pae)
	switch q.Mode {
	case Similar, "":
		th := q.Threshold
		if th <= 0 {
			th = constants.DefaultThreshold
		}
		v.Set("mode", string(Similar))
		v.Set("threshold", strconv.FormatFloat(th, 'f', -1, 64))
	case Substring:
		w := q.Window
		if w <= 0 {
			w = constants.DefaultWindow
		}
		v.Set("mode", string(Substring))
		v.Set("window", strconv.Itoa(w))
	default:
		return nil, errors.Errorf("unknown search mode %q", q.Mode)
	}
	return v, nil
}

type Searcher interface {
	Search(ctx context.Context, q Query) ([]model.Work, error)
}

// HTTPSearcher calls GET {BaseURL}/incipit/search.
type HTTPSearcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSearcher(baseURL string) *HTTPSearcher {
	return &HTTPSearcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPSearcher) Search(ctx context.Context, q Query) ([]model.Work, error) {
	v, err := q.Values()
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/incipit/search?%s", s.BaseURL, v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building search request")
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading search response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("search service answered %d", resp.StatusCode)
	}
	works, err := DecodeResults(body)
	if err != nil {
		return nil, err
	}
	logger.CAT.Printf("%s search returned %d record(s)", v.Get("mode"), len(works))
	return works, nil
}

// DecodeResults accepts a bare array or an object wrapping it in "results"
// or "items".
func DecodeResults(body []byte) ([]model.Work, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var works []model.Work
		if err := json.Unmarshal(body, &works); err != nil {
			return nil, errors.Wrap(err, "decoding search results")
		}
		return works, nil
	}
	var wrapped struct {
		Results []model.Work `json:"results"`
		Items   []model.Work `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errors.Wrap(err, "decoding search results")
	}
	if wrapped.Results != nil {
		return wrapped.Results, nil
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	return []model.Work{}, nil
}
