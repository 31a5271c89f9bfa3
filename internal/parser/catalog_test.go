package parser

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func catalogRows() [][]string {
	return [][]string{
		{"Lista de preços"},
		{"CÓDIGO", "REF", "MODELO", "À VISTA", "CARTÃO", "PARCELA EM 10X", "COR", "ESTOQUE", "LINK"},
		{"1", "a", "Galaxy A15", "R$ 1.100,00", "1.234,56", "123,46", "azul", "3", "https://img/a15.png"},
		{"2", "b", "MODELO", "À VISTA", "CARTÃO", "", "", "", ""},
		{"3", "c", "Sem preço", "", "consultar", "", "", "", ""},
		{"4", "d", "   ", "10", "20", "", "", "", ""},
		{"5", "e", "Moto G84", "900", "1.000,00", "100", "grafite", "1", `=IMAGE("https://img/g84.webp")`},
	}
}

// TestNormalizeCatalog verifies echo rows and bad-price rows are dropped
// while order is preserved.
func TestNormalizeCatalog(t *testing.T) {
	products, err := NormalizeCatalog(catalogRows())
	if err != nil {
		t.Fatalf("NormalizeCatalog failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	if products[0].Name != "Galaxy A15" || products[1].Name != "Moto G84" {
		t.Errorf("order not preserved: %q, %q", products[0].Name, products[1].Name)
	}

	if want := decimal.RequireFromString("1234.56"); !products[0].CardPrice.Equal(want) {
		t.Errorf("CardPrice = %s, want %s", products[0].CardPrice, want)
	}
	if products[0].ImageURL != "https://img/a15.png" {
		t.Errorf("ImageURL = %q", products[0].ImageURL)
	}
	if products[1].ImageURL != "https://img/g84.webp" {
		t.Errorf("formula image not extracted: %q", products[1].ImageURL)
	}
}

// TestNormalizeCatalogHints verifies the display hints are captured when
// their columns exist.
func TestNormalizeCatalogHints(t *testing.T) {
	products, err := NormalizeCatalog(catalogRows())
	if err != nil {
		t.Fatalf("NormalizeCatalog failed: %v", err)
	}

	p := products[0]
	if p.CashPriceHint == nil || !p.CashPriceHint.Equal(decimal.RequireFromString("1100")) {
		t.Errorf("CashPriceHint = %v, want 1100", p.CashPriceHint)
	}
	if p.InstallmentHint == nil || !p.InstallmentHint.Equal(decimal.RequireFromString("123.46")) {
		t.Errorf("InstallmentHint = %v, want 123.46", p.InstallmentHint)
	}
}

// TestNormalizeCatalogFreshIDs verifies records are rebuilt wholesale on
// every pass.
func TestNormalizeCatalogFreshIDs(t *testing.T) {
	first, err := NormalizeCatalog(catalogRows())
	if err != nil {
		t.Fatalf("NormalizeCatalog failed: %v", err)
	}
	second, err := NormalizeCatalog(catalogRows())
	if err != nil {
		t.Fatalf("NormalizeCatalog failed: %v", err)
	}

	if first[0].ID == second[0].ID {
		t.Error("IDs should be fresh per normalization pass")
	}
}

// TestNormalizeCatalogHeaderNotFound verifies the structural error
// propagates.
func TestNormalizeCatalogHeaderNotFound(t *testing.T) {
	rows := [][]string{
		{"só", "dados"},
		{"sem", "cabeçalho"},
	}
	if _, err := NormalizeCatalog(rows); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("err = %v, want ErrHeaderNotFound", err)
	}
}
