package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Preto, Branco, Dourado", []string{"Preto", "Branco", "Dourado"}},
		{" 128GB ,256GB", []string{"128GB", "256GB"}},
		{"", nil},
		{" , ,", nil},
		{"Único", []string{"Único"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitList(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseProductFormValid(t *testing.T) {
	form := url.Values{
		"name":       {"iPhone 16 Pro"},
		"category":   {"iPhone 16 Pro"},
		"price":      {"7899.90"},
		"stock":      {"25"},
		"colors":     {"Preto, Branco"},
		"capacities": {"128GB, 256GB"},
		"status":     {"active"},
	}
	r := httptest.NewRequest("POST", "/admin/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, errs := parseProductForm(r)
	require.Empty(t, errs)
	assert.Equal(t, "iPhone 16 Pro", in.Name)
	assert.InDelta(t, 7899.90, in.Price, 0.001)
	assert.Equal(t, 25, in.Stock)
	assert.Equal(t, []string{"Preto", "Branco"}, in.Colors)
	assert.Equal(t, []string{"128GB", "256GB"}, in.Capacities)
}

func TestParseProductFormRejectsBadNumbers(t *testing.T) {
	form := url.Values{
		"name":     {"iPhone"},
		"category": {"iPhone"},
		"price":    {"abc"},
		"stock":    {"1.5"},
	}
	r := httptest.NewRequest("POST", "/admin/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, errs := parseProductForm(r)
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "stock")
}

func TestParseProductFormRequiredFields(t *testing.T) {
	form := url.Values{"price": {"10"}, "stock": {"1"}}
	r := httptest.NewRequest("POST", "/admin/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, errs := parseProductForm(r)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "category")
}

func TestParseProductFormDefaultsStatus(t *testing.T) {
	form := url.Values{
		"name":     {"AirPods"},
		"category": {"AirPods"},
		"price":    {"1899"},
		"stock":    {"5"},
	}
	r := httptest.NewRequest("POST", "/admin/products", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, errs := parseProductForm(r)
	require.Empty(t, errs)
	assert.Equal(t, "active", in.Status)
}
