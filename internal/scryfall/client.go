// Package scryfall is the HTTP client for the Scryfall card oracle.
//
// All calls go through one serialized lane with a mandatory minimum delay
// between requests (Scryfall ToS). Each request carries a fixed timeout and
// is never retried: a timeout is a hard failure for that single lookup and
// the caller decides whether to report or skip.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"DeckBox/internal/model"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Scryfall API endpoint.
const DefaultBaseURL = "https://api.scryfall.com"

// Error describes an oracle failure.
type Error struct {
	Message    string
	StatusCode int
	NotFound   bool
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an oracle not-found response.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.NotFound
}

// Client talks to the oracle. Safe for concurrent use; requests are
// serialized internally.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.SugaredLogger

	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

// NewClient builds a client with a per-request timeout and a minimum
// inter-call delay. An empty baseURL means the public API.
func NewClient(baseURL string, timeout, delay time.Duration, log *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
		delay:   delay,
	}
}

// NamedExact fetches a card by exact name. A non-empty setCode pins the
// lookup to that edition; otherwise the oracle picks its default printing.
func (c *Client) NamedExact(ctx context.Context, name, setCode string) (model.Card, error) {
	q := url.Values{"exact": {name}}
	if setCode != "" {
		q.Set("set", strings.ToLower(setCode))
	}
	return c.getCard(ctx, "/cards/named", q)
}

// NamedFuzzy fetches a card by fuzzy name match, tolerating typos.
func (c *Client) NamedFuzzy(ctx context.Context, name string) (model.Card, error) {
	return c.getCard(ctx, "/cards/named", url.Values{"fuzzy": {name}})
}

// ByPrinting fetches one specific printing by set code and collector number.
func (c *Client) ByPrinting(ctx context.Context, setCode, collectorNumber string) (model.Card, error) {
	path := "/cards/" + url.PathEscape(strings.ToLower(setCode)) + "/" + url.PathEscape(collectorNumber)
	return c.getCard(ctx, path, nil)
}

// Printings returns every printing sharing an oracle id, newest first.
func (c *Client) Printings(ctx context.Context, oracleID string) ([]model.Card, error) {
	body, err := c.get(ctx, "/cards/search", url.Values{
		"q":      {"oracleid:" + oracleID},
		"unique": {"prints"},
		"order":  {"released"},
		"dir":    {"desc"},
	})
	if err != nil {
		return nil, err
	}
	var list struct {
		Data []cardJSON `json:"data"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &Error{Message: fmt.Sprintf("scryfall: bad search response: %v", err)}
	}
	cards := make([]model.Card, 0, len(list.Data))
	for i := range list.Data {
		cards = append(cards, list.Data[i].toModel())
	}
	return cards, nil
}

func (c *Client) getCard(ctx context.Context, path string, query url.Values) (model.Card, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return model.Card{}, err
	}
	var cj cardJSON
	if err := json.Unmarshal(body, &cj); err != nil {
		return model.Card{}, &Error{Message: fmt.Sprintf("scryfall: bad card response: %v", err)}
	}
	return cj.toModel(), nil
}

// get performs one rate-limited request. The mutex is held for the whole
// call so at most one request is in flight per process, including the
// periodic refresher.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.delay - time.Since(c.lastCall); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, &Error{Message: "scryfall: " + ctx.Err().Error()}
		}
	}
	c.lastCall = time.Now()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Message: "scryfall: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json;q=0.9,*/*;q=0.8")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Message: "scryfall: request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "scryfall: read body: " + err.Error(), StatusCode: resp.StatusCode}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Message: "card not found", StatusCode: resp.StatusCode, NotFound: true}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Message: "scryfall rate limit hit", StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		c.log.Warnw("scryfall error response", "status", resp.StatusCode, "path", path)
		return nil, &Error{
			Message:    fmt.Sprintf("scryfall returned %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return body, nil
}

// cardJSON mirrors the subset of the Scryfall card object we keep.
type cardJSON struct {
	ID              string            `json:"id"`
	OracleID        string            `json:"oracle_id"`
	Name            string            `json:"name"`
	Set             string            `json:"set"`
	SetName         string            `json:"set_name"`
	CollectorNumber string            `json:"collector_number"`
	ImageURIs       map[string]string `json:"image_uris"`
	Prices          map[string]string `json:"prices"`
	ManaCost        string            `json:"mana_cost"`
	CMC             float64           `json:"cmc"`
	TypeLine        string            `json:"type_line"`
	OracleText      string            `json:"oracle_text"`
	Colors          []string          `json:"colors"`
	ColorIdentity   []string          `json:"color_identity"`
	Rarity          string            `json:"rarity"`
	CardFaces       []cardFaceJSON    `json:"card_faces"`
}

type cardFaceJSON struct {
	ImageURIs  map[string]string `json:"image_uris"`
	OracleText string            `json:"oracle_text"`
}

// toModel flattens the oracle object into our cached Card. Double-faced
// cards keep the front-face images and both faces' text joined with " // ".
func (cj *cardJSON) toModel() model.Card {
	images := cj.ImageURIs
	if len(images) == 0 && len(cj.CardFaces) > 0 {
		images = cj.CardFaces[0].ImageURIs
	}

	text := cj.OracleText
	if text == "" && len(cj.CardFaces) > 0 {
		parts := make([]string, 0, len(cj.CardFaces))
		for _, f := range cj.CardFaces {
			if f.OracleText != "" {
				parts = append(parts, f.OracleText)
			}
		}
		text = strings.Join(parts, " // ")
	}

	return model.Card{
		ScryfallID:      cj.ID,
		OracleID:        cj.OracleID,
		Name:            cj.Name,
		SetCode:         strings.ToUpper(cj.Set),
		SetName:         cj.SetName,
		CollectorNumber: cj.CollectorNumber,
		ImageNormal:     images["normal"],
		ImageSmall:      images["small"],
		ImageArtCrop:    images["art_crop"],
		USD:             parsePrice(cj.Prices["usd"]),
		USDFoil:         parsePrice(cj.Prices["usd_foil"]),
		ManaCost:        cj.ManaCost,
		CMC:             cj.CMC,
		TypeLine:        cj.TypeLine,
		OracleText:      text,
		Colors:          strings.Join(cj.Colors, ""),
		ColorIdentity:   strings.Join(cj.ColorIdentity, ""),
		Rarity:          cj.Rarity,
		LastUpdated:     time.Now().UTC(),
	}
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
