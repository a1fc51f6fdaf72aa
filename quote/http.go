package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPSource gets quotes from a JSON web API, one request per ticker.
type HTTPSource struct {
	// URL is the request URL, "{ticker}" is replaced by the escaped ticker,
	// e.g. "https://api.example.com/quote?symbol={ticker}".
	URL string
	// Path is the JSONPath of the price in the response, e.g. "$.price" or
	// "$.chart.result[0].meta.regularMarketPrice".
	Path string
	// Timeout of each request, none when zero.
	Timeout time.Duration

	Client *http.Client // http.DefaultClient when nil.
	Log    zerolog.Logger
}

// Quotes implements Source. Tickers that cannot be priced are logged and
// reported in the error; the others are returned.
func (s *HTTPSource) Quotes(ctx context.Context, tickers []string) (map[string]decimal.Decimal, error) {
	quotes := make(map[string]decimal.Decimal)
	var errs []error
	for _, ticker := range tickers {
		p, err := s.quote(ctx, ticker)
		if err != nil {
			s.Log.Warn().Err(err).Str("ticker", ticker).Msg("no quote")
			errs = append(errs, err)
			continue
		}
		s.Log.Debug().Str("ticker", ticker).Stringer("price", p).Msg("quote")
		quotes[ticker] = p
	}
	return quotes, errors.Join(errs...)
}

func (s *HTTPSource) quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	addr := strings.ReplaceAll(s.URL, "{ticker}", url.QueryEscape(ticker))
	var jobj any
	if err := s.jwget(ctx, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get quote for %q: %w", ticker, err)
	}
	jval, err := jsonpath.Get(s.Path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot read quote for %q at %q: %w", ticker, s.Path, err)
	}
	// jsonpath may return a list of one answer or the answer itself.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	p, err := parsePrice(jval)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot read quote for %q at %q: %w", ticker, s.Path, err)
	}
	return p, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func (s *HTTPSource) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// parsePrice reads a positive price from a JSON number or string. Strings
// may use a decimal comma.
func parsePrice(jval any) (decimal.Decimal, error) {
	var p decimal.Decimal
	switch v := jval.(type) {
	case float64:
		p = decimal.NewFromFloat(v)
	case string:
		s := strings.ReplaceAll(strings.ReplaceAll(v, " ", ""), ",", ".")
		var err error
		if p, err = decimal.NewFromString(s); err != nil {
			return decimal.Zero, fmt.Errorf("invalid price string %q: %w", v, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("price is neither a number nor a string: %v", jval)
	}
	if !p.IsPositive() {
		return decimal.Zero, fmt.Errorf("price must be positive, got %s", p)
	}
	return p, nil
}
