package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"labelpress/internal"
	"labelpress/internal/pipeline"
	"labelpress/internal/settings"
	"labelpress/internal/tableio"
)

// Result is one finished generation run.
type Result struct {
	PDF    []byte
	Pages  int
	Rows   int
	Format internal.Format
}

// Generator drives one spreadsheet-to-document run. Caches live for a
// single run so settings changes always take effect on the next one.
type Generator struct {
	pipe      *pipeline.Pipeline
	geo       Geometry
	fetcher   ImageFetcher
	codes     CodeRenderer
	logger    *slog.Logger
	newWriter func() DocumentWriter

	imageCache map[string]image.Image
	orderCache map[string]image.Image
}

func NewGenerator(cfg settings.Settings, labelSize string, fetcher ImageFetcher, codes CodeRenderer, logger *slog.Logger) *Generator {
	if labelSize == "" {
		labelSize = cfg.DefaultLabelSize
	}
	return &Generator{
		pipe:       pipeline.New(cfg),
		geo:        GeometryFor(labelSize),
		fetcher:    fetcher,
		codes:      codes,
		logger:     logger,
		newWriter:  func() DocumentWriter { return NewPDFWriter() },
		imageCache: map[string]image.Image{},
		orderCache: map[string]image.Image{},
	}
}

// Generate turns a loaded table into a finished label document. Rows
// sort into picking order first; bins only apply to the extended
// schema, where orders are known. Each row emits quantity many pages.
func (g *Generator) Generate(ctx context.Context, t *tableio.Table) (Result, error) {
	rows, format, err := g.pipe.BuildRows(t)
	if err != nil {
		return Result{}, err
	}
	pipeline.SortRows(rows)

	extended := format == internal.FormatExtended
	if extended {
		cfg := g.pipe.Settings()
		pipeline.AssignBins(rows, cfg.MaxBins, cfg.OverflowName)
	}

	var page LabelPage
	if extended {
		page = ExtendedPage{Geo: g.geo}
	} else {
		page = BasicPage{Geo: g.geo}
	}

	w := g.newWriter()
	pages := 0
	for _, row := range rows {
		assets := g.assets(ctx, row, extended)
		for i := 0; i < row.Quantity; i++ {
			page.Draw(w, row, assets)
			pages++
		}
	}

	pdf, err := w.Output()
	if err != nil {
		return Result{}, fmt.Errorf("write document: %w", err)
	}
	g.logger.Info("generated labels",
		"format", format, "rows", len(rows), "pages", pages)
	return Result{PDF: pdf, Pages: pages, Rows: len(rows), Format: format}, nil
}

// assets resolves the raster artwork for one row. Failures leave the
// affected zone blank instead of aborting the run; only successes are
// cached, so a transient fetch error is retried on the next row that
// shares the URL.
func (g *Generator) assets(ctx context.Context, row internal.NormalizedRow, extended bool) PageAssets {
	var a PageAssets

	if row.ImageURL != "" {
		if img, ok := g.imageCache[row.ImageURL]; ok {
			a.ProductCode = img
		} else if img, err := g.fetcher.Fetch(ctx, row.ImageURL); err != nil {
			g.logger.Warn("code image unavailable", "url", row.ImageURL, "error", err)
		} else {
			mono := Monochrome(img, g.geo.codePixels())
			g.imageCache[row.ImageURL] = mono
			a.ProductCode = mono
		}
	}

	if extended && row.OrderNumber != "" {
		if img, ok := g.orderCache[row.OrderNumber]; ok {
			a.OrderCode = img
		} else if img, err := g.renderOrderCode(row.OrderNumber); err != nil {
			g.logger.Warn("order code render failed", "order", row.OrderNumber, "error", err)
		} else {
			g.orderCache[row.OrderNumber] = img
			a.OrderCode = img
		}
	}
	return a
}

func (g *Generator) renderOrderCode(order string) (image.Image, error) {
	px := g.geo.codePixels()
	if g.geo.LinearOrder {
		return g.codes.Linear(order, px*2, px/2)
	}
	return g.codes.Matrix(order, px)
}
