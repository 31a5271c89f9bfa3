package parser

import (
	"errors"
	"fmt"
	"testing"
)

// TestResolveHeadersSkipsTitleRows verifies the header is found even when
// title rows precede it.
func TestResolveHeadersSkipsTitleRows(t *testing.T) {
	rows := [][]string{
		{"Tabela de preços — agosto"},
		{},
		{"CÓDIGO", "REF", "MODELO", "À VISTA", "CARTÃO"},
		{"1", "x", "Galaxy A15", "1.100,00", "1.234,56"},
	}

	m, headerIdx, err := ResolveHeaders(rows)
	if err != nil {
		t.Fatalf("ResolveHeaders failed: %v", err)
	}
	if headerIdx != 2 {
		t.Errorf("headerIdx = %d, want 2", headerIdx)
	}
	if m.ProductName != 2 {
		t.Errorf("ProductName column = %d, want 2", m.ProductName)
	}
	if m.CardPrice != 4 {
		t.Errorf("CardPrice column = %d, want 4", m.CardPrice)
	}
	if m.CashPriceHint != 3 {
		t.Errorf("CashPriceHint column = %d, want 3", m.CashPriceHint)
	}
}

// TestResolveHeadersWindow verifies a header past the scan window is not
// found.
func TestResolveHeadersWindow(t *testing.T) {
	rows := make([][]string, 0, 26)
	for i := 0; i < 25; i++ {
		rows = append(rows, []string{fmt.Sprintf("linha %d", i)})
	}
	rows = append(rows, []string{"MODELO", "CARTÃO"})

	if _, _, err := ResolveHeaders(rows); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("ResolveHeaders err = %v, want ErrHeaderNotFound", err)
	}
}

// TestResolveHeadersSubstringFallback verifies drifted labels still map via
// the substring tier.
func TestResolveHeadersSubstringFallback(t *testing.T) {
	rows := [][]string{
		{"", "MODELO", "CART. DÉBITO", "PARCELA ÚNICA"},
	}

	m, _, err := ResolveHeaders(rows)
	if err != nil {
		t.Fatalf("ResolveHeaders failed: %v", err)
	}
	if m.CardPrice != 2 {
		t.Errorf("CardPrice column = %d, want 2 (substring CART)", m.CardPrice)
	}
	if m.InstallmentHint != 3 {
		t.Errorf("InstallmentHint column = %d, want 3 (substring PARCELA)", m.InstallmentHint)
	}
}

// TestResolveHeadersImageLabel verifies the image column maps from any
// accepted label.
func TestResolveHeadersImageLabel(t *testing.T) {
	rows := [][]string{
		{"MODELO", "CARTÃO", "LINK"},
	}

	m, _, err := ResolveHeaders(rows)
	if err != nil {
		t.Fatalf("ResolveHeaders failed: %v", err)
	}
	if m.ImageRef != 2 {
		t.Errorf("ImageRef column = %d, want 2", m.ImageRef)
	}
}

// TestResolveHeadersImagePositionFallback verifies the fixed 9th-column
// fallback when no image label exists.
func TestResolveHeadersImagePositionFallback(t *testing.T) {
	rows := [][]string{
		{"CÓDIGO", "REF", "MODELO", "À VISTA", "CARTÃO", "PARCELA EM 10X", "COR", "ESTOQUE", "OBS"},
	}

	m, _, err := ResolveHeaders(rows)
	if err != nil {
		t.Fatalf("ResolveHeaders failed: %v", err)
	}
	if m.ImageRef != 8 {
		t.Errorf("ImageRef column = %d, want 8 (positional fallback)", m.ImageRef)
	}
}

// TestResolveHeadersNoImageColumn verifies a narrow sheet leaves image
// unmapped rather than claiming a wrong column.
func TestResolveHeadersNoImageColumn(t *testing.T) {
	rows := [][]string{
		{"MODELO", "CARTÃO"},
	}

	m, _, err := ResolveHeaders(rows)
	if err != nil {
		t.Fatalf("ResolveHeaders failed: %v", err)
	}
	if m.ImageRef != -1 {
		t.Errorf("ImageRef column = %d, want -1", m.ImageRef)
	}
}

// TestResolveHeadersMissingAnchors verifies rows without the required
// anchors never become headers.
func TestResolveHeadersMissingAnchors(t *testing.T) {
	cases := [][][]string{
		{{"MODELO", "COR", "ESTOQUE"}},     // no price anchor
		{{"PRODUTO", "CARTÃO", "À VISTA"}}, // no name anchor
		{},
	}

	for i, rows := range cases {
		if _, _, err := ResolveHeaders(rows); !errors.Is(err, ErrHeaderNotFound) {
			t.Errorf("case %d: err = %v, want ErrHeaderNotFound", i, err)
		}
	}
}
