package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/models"
)

func TestResolve(t *testing.T) {
	tax := category.New()
	log := zerolog.Nop()

	tests := []struct {
		provider     models.Provider
		wantName     string
		wantFallback bool
	}{
		{models.ProviderPhonePe, "wallet", false},
		{models.ProviderKotak, "kotak", false},
		{models.ProviderGPay, "wallet", true},
		{models.ProviderBHIM, "wallet", true},
		{models.ProviderPaytm, "wallet", true},
		{models.ProviderBank, "wallet", true},
		{models.Provider("SOMETHING_NEW"), "wallet", true},
	}

	for _, tt := range tests {
		g, warning := Resolve(tt.provider, tax, log)
		if g.Name() != tt.wantName {
			t.Errorf("Resolve(%s) grammar = %s, want %s", tt.provider, g.Name(), tt.wantName)
		}
		if tt.wantFallback != (warning != "") {
			t.Errorf("Resolve(%s) warning = %q, fallback expected %v", tt.provider, warning, tt.wantFallback)
		}
		if warning != "" && !strings.Contains(warning, string(tt.provider)) {
			t.Errorf("fallback warning %q does not name the provider", warning)
		}
	}
}

// A fallback provider must produce exactly the same transactions as the
// wallet grammar it degrades to, differing only in the warning.
func TestResolveFallbackEquivalence(t *testing.T) {
	tax := category.New()
	log := zerolog.Nop()
	doc := &decoder.Document{Lines: []string{
		"May 30, 2025",
		"Paid to Example Store",
		"Debit INR 250.00",
	}}

	wallet, _ := Resolve(models.ProviderPhonePe, tax, log)
	fallback, warning := Resolve(models.ProviderPaytm, tax, log)
	if warning == "" {
		t.Fatal("expected fallback warning")
	}

	a, _, _ := wallet.Parse(doc, "pdf-wallet")
	b, _, _ := fallback.Parse(doc, "pdf-wallet")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("fallback parse differs from wallet parse:\n%+v\n%+v", a, b)
	}
}
