package currency

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

const currenciesBody = `{"usd":"US Dollar","eur":"Euro","inr":"Indian Rupee","gbp":"British Pound"}`

func newTestClient(t *testing.T, primary, fallback http.HandlerFunc) *Client {
	t.Helper()
	pSrv := httptest.NewServer(primary)
	t.Cleanup(pSrv.Close)
	fSrv := httptest.NewServer(fallback)
	t.Cleanup(fSrv.Close)

	c := NewClient()
	t.Cleanup(c.Close)
	c.SetEndpoints(pSrv.URL, fSrv.URL)
	return c
}

func primaryHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/currencies.min.json"):
			_, _ = w.Write([]byte(currenciesBody))
		case strings.HasSuffix(r.URL.Path, "/usd.min.json"):
			_, _ = w.Write([]byte(`{"date":"2024-01-15","usd":{"eur":0.92,"inr":83.1,"gbp":0.79}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		amount  float64
		from    string
		to      string
		wantErr bool
	}{
		{name: "plain", query: "100 USD to INR", amount: 100, from: "usd", to: "inr"},
		{name: "thousands commas", query: "2,000 INR to USD", amount: 2000, from: "inr", to: "usd"},
		{name: "decimal", query: "1,000.50 eur in gbp", amount: 1000.50, from: "eur", to: "gbp"},
		{name: "arrow connector", query: "5 usd -> eur", amount: 5, from: "usd", to: "eur"},
		{name: "no connector", query: "50 usd eur", amount: 50, from: "usd", to: "eur"},
		{name: "sticky", query: "100aed to inr", amount: 100, from: "aed", to: "inr"},
		{name: "garbage", query: "convert my money please", wantErr: true},
		{name: "empty", query: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, from, to, err := ParseQuery(tt.query)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !apperrors.IsValidation(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if amount != tt.amount || from != tt.from || to != tt.to {
				t.Errorf("got (%v, %s, %s), want (%v, %s, %s)", amount, from, to, tt.amount, tt.from, tt.to)
			}
		})
	}
}

func TestConvert_PrimaryAPI(t *testing.T) {
	c := newTestClient(t, primaryHandler(t), func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback should not be called when primary succeeds")
	})

	conv, err := c.Convert(context.Background(), 100, "USD", "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Rate != 83.1 {
		t.Errorf("expected rate 83.1, got %v", conv.Rate)
	}
	if math.Abs(conv.Converted-8310) > 1e-9 {
		t.Errorf("expected 8310, got %v", conv.Converted)
	}
	if conv.From != "USD" || conv.To != "INR" {
		t.Errorf("expected uppercase codes, got %s -> %s", conv.From, conv.To)
	}
	if conv.Symbol != "₹" {
		t.Errorf("expected rupee symbol, got %q", conv.Symbol)
	}
}

func TestConvert_FallbackAPI(t *testing.T) {
	primary := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/currencies.min.json") {
			_, _ = w.Write([]byte(currenciesBody))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
	fallback := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("expected base=USD, got %q", got)
		}
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-01-15","rates":{"EUR":0.91,"INR":83.0}}`))
	}

	c := newTestClient(t, primary, fallback)

	conv, err := c.Convert(context.Background(), 10, "usd", "eur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Rate != 0.91 {
		t.Errorf("expected fallback rate 0.91, got %v", conv.Rate)
	}
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	c := newTestClient(t, primaryHandler(t), func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.Convert(context.Background(), 5, "usd", "xyz")
	if !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError for unsupported code, got %v", err)
	}
}

func TestConvert_MissingRate(t *testing.T) {
	primary := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/currencies.min.json"):
			_, _ = w.Write([]byte(`{"usd":"US Dollar","gbp":"British Pound"}`))
		case strings.HasSuffix(r.URL.Path, "/usd.min.json"):
			_, _ = w.Write([]byte(`{"date":"2024-01-15","usd":{"eur":0.92}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
	c := newTestClient(t, primary, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Convert(context.Background(), 5, "usd", "gbp")
	if err == nil {
		t.Fatal("expected error for missing rate")
	}
}

func TestRates_Cached(t *testing.T) {
	var calls atomic.Int32
	primary := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/usd.min.json") {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"usd":{"eur":0.92}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
	c := newTestClient(t, primary, func(w http.ResponseWriter, r *http.Request) {})

	for i := 0; i < 3; i++ {
		if _, err := c.Rates(context.Background(), "USD"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls.Load())
	}
}

func TestConvertCurrencyMCP(t *testing.T) {
	c := newTestClient(t, primaryHandler(t), func(w http.ResponseWriter, r *http.Request) {})

	result, err := c.ConvertCurrencyMCP(context.Background(), ConvertCurrencyArgs{Query: "100 usd to inr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Converted != 8310 {
		t.Errorf("expected 8310, got %v", result.Converted)
	}
	if !strings.Contains(result.Formatted, "100.00 USD") {
		t.Errorf("expected formatted input, got %q", result.Formatted)
	}
}

func TestSymbol(t *testing.T) {
	if Symbol("USD") != "$" {
		t.Error("expected $ for USD")
	}
	if Symbol("ZZZ") != "" {
		t.Error("expected empty symbol for unknown code")
	}
}
