package parser

import (
	"errors"
	"regexp"
	"strings"
)

// ErrHeaderNotFound means no row inside the scan window looked like a header.
// Fatal for the whole refresh; the previous cache entry stays in place.
var ErrHeaderNotFound = errors.New("header row not found")

// headerScanWindow bounds how many leading rows are inspected while looking
// for the header. Sheet revisions put one or two title rows above it, never
// more than a handful.
const headerScanWindow = 20

// imageColumnFallback is the fixed position of the image column (column I of
// the source sheet) used when no recognizable image label exists.
const imageColumnFallback = 8

// ColumnMap resolves canonical fields to column indexes. -1 means the field
// has no column in this sheet revision.
type ColumnMap struct {
	ProductName     int
	CardPrice       int
	CashPriceHint   int
	InstallmentHint int
	ImageRef        int
}

func emptyColumnMap() ColumnMap {
	return ColumnMap{
		ProductName:     -1,
		CardPrice:       -1,
		CashPriceHint:   -1,
		InstallmentHint: -1,
		ImageRef:        -1,
	}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeLabel trims, collapses internal whitespace and upper-cases a
// header cell so label comparison survives spacing and casing drift.
func NormalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.ToUpper(s)
}

// Anchor labels that make a row a header candidate. The name anchor is
// mandatory; at least one price anchor must be present alongside it.
var (
	nameAnchors  = []string{"MODELO"}
	priceAnchors = []string{"CARTÃO", "CARTAO", "À VISTA", "A VISTA", "PARCELA EM 10X"}
)

// isHeaderRow reports whether the normalized cells contain the required
// anchors. Price anchors also match on the CART stem so renamed variants
// like "CARTÃO 12X" still count.
func isHeaderRow(cells []string) bool {
	labels := make(map[string]bool, len(cells))
	hasPrice := false
	for _, c := range cells {
		l := NormalizeLabel(c)
		if l == "" {
			continue
		}
		labels[l] = true
		if strings.Contains(l, "CART") {
			hasPrice = true
		}
	}
	hasName := false
	for _, a := range nameAnchors {
		if labels[a] {
			hasName = true
			break
		}
	}
	if !hasPrice {
		for _, a := range priceAnchors {
			if labels[a] {
				hasPrice = true
				break
			}
		}
	}
	return hasName && hasPrice
}

// Resolution strategies, applied in priority order. Each one is a pure
// function over the normalized header row; later tiers never overwrite a
// field an earlier tier already claimed.

// applyExactLabels claims columns whose label matches a canonical spelling.
func applyExactLabels(labels []string, m *ColumnMap) {
	for i, l := range labels {
		switch l {
		case "MODELO":
			if m.ProductName < 0 {
				m.ProductName = i
			}
		case "CARTÃO", "CARTAO":
			if m.CardPrice < 0 {
				m.CardPrice = i
			}
		case "À VISTA", "A VISTA":
			if m.CashPriceHint < 0 {
				m.CashPriceHint = i
			}
		case "PARCELA EM 10X":
			if m.InstallmentHint < 0 {
				m.InstallmentHint = i
			}
		case "IMAGEM", "FOTO", "IMG", "LINK":
			if m.ImageRef < 0 {
				m.ImageRef = i
			}
		}
	}
}

// applySubstringFallbacks claims still-unresolved fields by label stems,
// tolerating renames like "CARTÃO 12X" or "MODELO DO APARELHO".
func applySubstringFallbacks(labels []string, m *ColumnMap) {
	for i, l := range labels {
		if l == "" || claimed(m, i) {
			continue
		}
		switch {
		case m.ProductName < 0 && strings.Contains(l, "MODELO"):
			m.ProductName = i
		case m.CardPrice < 0 && strings.Contains(l, "CART"):
			m.CardPrice = i
		case m.CashPriceHint < 0 && strings.Contains(l, "VISTA"):
			m.CashPriceHint = i
		case m.InstallmentHint < 0 && strings.Contains(l, "PARCELA"):
			m.InstallmentHint = i
		case m.ImageRef < 0 && (strings.Contains(l, "IMAGEM") || strings.Contains(l, "FOTO")):
			m.ImageRef = i
		}
	}
}

// applyImagePosition falls back to the fixed image column when no label
// claimed one and the sheet is wide enough to have it.
func applyImagePosition(labels []string, m *ColumnMap) {
	if m.ImageRef >= 0 {
		return
	}
	if len(labels) > imageColumnFallback && !claimed(m, imageColumnFallback) {
		m.ImageRef = imageColumnFallback
	}
}

func claimed(m *ColumnMap, idx int) bool {
	return idx == m.ProductName || idx == m.CardPrice ||
		idx == m.CashPriceHint || idx == m.InstallmentHint || idx == m.ImageRef
}

// ResolveHeaders locates the header row inside the scan window and maps its
// labels to canonical fields. It returns the header row index so callers know
// where data starts. Failing to resolve both the product name and the card
// price is a hard error: the sheet drifted beyond the recognized fallbacks.
func ResolveHeaders(rows [][]string) (ColumnMap, int, error) {
	limit := len(rows)
	if limit > headerScanWindow {
		limit = headerScanWindow
	}

	for i := 0; i < limit; i++ {
		if !isHeaderRow(rows[i]) {
			continue
		}

		labels := make([]string, len(rows[i]))
		for j, c := range rows[i] {
			labels[j] = NormalizeLabel(c)
		}

		m := emptyColumnMap()
		applyExactLabels(labels, &m)
		applySubstringFallbacks(labels, &m)
		applyImagePosition(labels, &m)

		if m.ProductName < 0 || m.CardPrice < 0 {
			return ColumnMap{}, 0, ErrHeaderNotFound
		}
		return m, i, nil
	}

	return ColumnMap{}, 0, ErrHeaderNotFound
}
