package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/odlagro/apoiov/internal/cache"
	"github.com/odlagro/apoiov/internal/config"
	"github.com/odlagro/apoiov/internal/logger"
	"github.com/odlagro/apoiov/internal/model"
	"github.com/odlagro/apoiov/internal/parser"
	"github.com/odlagro/apoiov/internal/quote"
	"github.com/odlagro/apoiov/internal/sheets"
)

// Cache table ids.
const (
	tableProdutos = "produtos"
	tableFrete    = "frete"
)

// Fetcher is the outbound surface the handlers need. *sheets.Client
// satisfies it; tests substitute a stub.
type Fetcher interface {
	FetchTable(ctx context.Context, gid string) ([][]string, error)
	FetchImage(ctx context.Context, url string) ([]byte, string, error)
}

// Handlers wires the refresh cache, the sheet fetcher and the quote
// calculator to the HTTP surface. All state lives in the cache; handlers are
// safe for concurrent use.
type Handlers struct {
	cfg     *config.AppConfig
	cache   *cache.Cache
	fetcher Fetcher
}

// NewHandlers creates the handler set.
func NewHandlers(cfg *config.AppConfig, c *cache.Cache, fetcher Fetcher) *Handlers {
	return &Handlers{
		cfg:     cfg,
		cache:   c,
		fetcher: fetcher,
	}
}

// RegisterRoutes mounts the API routes.
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/produtos", h.Produtos)
	rg.GET("/ufs", h.UFs)
	rg.GET("/frete", h.Frete)
	rg.GET("/cotacao", h.Cotacao)
	rg.GET("/imagem", h.Imagem)
}

func respondOK(c *gin.Context, payload gin.H) {
	payload["ok"] = true
	c.JSON(http.StatusOK, payload)
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// respondLoadError maps a refresh failure to a status. Upstream transport
// failures read as bad gateway; a sheet whose layout drifted past the
// recognizers reads as an internal error.
func respondLoadError(c *gin.Context, err error) {
	logger.Log.Error("table refresh failed", zap.Error(err))
	switch {
	case errors.Is(err, sheets.ErrFetchFailed):
		respondError(c, http.StatusBadGateway, "planilha indisponível no momento")
	case errors.Is(err, parser.ErrHeaderNotFound):
		respondError(c, http.StatusInternalServerError, "planilha em formato inesperado")
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handlers) loadCatalog(ctx context.Context) ([]model.Product, error) {
	v, err := h.cache.GetOrRefresh(ctx, tableProdutos, h.cfg.CatalogTTL(), func(ctx context.Context) (any, error) {
		rows, err := h.fetcher.FetchTable(ctx, h.cfg.Sheet.ProductGID)
		if err != nil {
			return nil, err
		}
		return parser.NormalizeCatalog(rows)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

func (h *Handlers) loadShipping(ctx context.Context) (model.ShippingTable, error) {
	v, err := h.cache.GetOrRefresh(ctx, tableFrete, h.cfg.ShippingTTL(), func(ctx context.Context) (any, error) {
		rows, err := h.fetcher.FetchTable(ctx, h.cfg.Sheet.ShippingGID)
		if err != nil {
			return nil, err
		}
		return parser.NormalizeShipping(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(model.ShippingTable), nil
}

// produtoView is a catalog row plus the prices the listing table shows,
// computed under the default discount with no frete.
type produtoView struct {
	model.Product
	AvistaPadrao decimal.Decimal `json:"avista_padrao"`
	Parcela10x   decimal.Decimal `json:"parcela_10x"`
}

// Produtos returns the normalized catalog.
func (h *Handlers) Produtos(c *gin.Context) {
	products, err := h.loadCatalog(c.Request.Context())
	if err != nil {
		respondLoadError(c, err)
		return
	}

	defaultDiscount := decimal.NewFromFloat(h.cfg.Quote.DefaultDiscountPct)
	items := make([]produtoView, 0, len(products))
	for _, p := range products {
		q := quote.Compute(p.CardPrice, defaultDiscount, decimal.Zero)
		items = append(items, produtoView{
			Product:      p,
			AvistaPadrao: q.CashPrice,
			Parcela10x:   q.InstallmentAmount,
		})
	}

	respondOK(c, gin.H{"items": items})
}

// UFs returns the region selector contents, falling back to the canonical
// UF list when the frete table came back empty.
func (h *Handlers) UFs(c *gin.Context) {
	table, err := h.loadShipping(c.Request.Context())
	if err != nil {
		respondLoadError(c, err)
		return
	}
	respondOK(c, gin.H{"ufs": table.Regions()})
}

// Frete returns the shipping fee for one UF.
func (h *Handlers) Frete(c *gin.Context) {
	uf := parser.NormalizeUF(c.Query("uf"))
	if uf == "" {
		respondError(c, http.StatusBadRequest, "UF não informada")
		return
	}

	table, err := h.loadShipping(c.Request.Context())
	if err != nil {
		respondLoadError(c, err)
		return
	}

	fee, ok := table[uf]
	if !ok {
		respondError(c, http.StatusNotFound, fmt.Sprintf("UF '%s' não encontrada", uf))
		return
	}

	respondOK(c, gin.H{"uf": uf, "frete": fee})
}

// Cotacao computes the three quoted prices for one product. The frete comes
// from the table by UF, or from an explicit frete override; the discount
// defaults to the configured percentage.
func (h *Handlers) Cotacao(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("produto"))
	if productID == "" {
		respondError(c, http.StatusBadRequest, "produto não informado")
		return
	}

	discount := decimal.NewFromFloat(h.cfg.Quote.DefaultDiscountPct)
	if raw := strings.TrimSpace(c.Query("desconto")); raw != "" {
		d, ok := parser.ParseMoney(raw)
		if !ok || d.Sign() < 0 || d.GreaterThan(decimal.NewFromInt(100)) {
			respondError(c, http.StatusBadRequest, "desconto inválido (0 a 100)")
			return
		}
		discount = d
	}

	products, err := h.loadCatalog(c.Request.Context())
	if err != nil {
		respondLoadError(c, err)
		return
	}

	var product *model.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		respondError(c, http.StatusNotFound, "produto não encontrado")
		return
	}

	var fee decimal.Decimal
	uf := parser.NormalizeUF(c.Query("uf"))
	if raw := strings.TrimSpace(c.Query("frete")); raw != "" {
		f, ok := parser.ParseMoney(raw)
		if !ok || f.Sign() < 0 {
			respondError(c, http.StatusBadRequest, "frete inválido")
			return
		}
		fee = f
	} else {
		if uf == "" {
			respondError(c, http.StatusBadRequest, "informe uf ou frete")
			return
		}
		table, err := h.loadShipping(c.Request.Context())
		if err != nil {
			respondLoadError(c, err)
			return
		}
		f, ok := table[uf]
		if !ok {
			respondError(c, http.StatusNotFound, fmt.Sprintf("UF '%s' não encontrada", uf))
			return
		}
		fee = f
	}

	q := quote.Compute(product.CardPrice, discount, fee)
	respondOK(c, gin.H{
		"produto":  gin.H{"id": product.ID, "modelo": product.Name},
		"uf":       uf,
		"frete":    fee,
		"desconto": discount,
		"cotacao":  q,
	})
}

// Imagem proxies a product image, forwarding the origin's content type. An
// unreachable origin is a distinct bad-gateway failure, never a hang.
func (h *Handlers) Imagem(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		respondError(c, http.StatusBadRequest, "url inválida")
		return
	}

	body, contentType, err := h.fetcher.FetchImage(c.Request.Context(), url)
	if err != nil {
		logger.Log.Warn("image fetch failed", zap.String("url", url), zap.Error(err))
		respondError(c, http.StatusBadGateway, "falha ao buscar imagem")
		return
	}

	c.Data(http.StatusOK, contentType, body)
}
