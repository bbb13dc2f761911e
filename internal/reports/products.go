package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"stockroom/internal/repository"
	"stockroom/internal/utils/logger"

	"github.com/google/uuid"
)

// Uploader stores a generated report and returns a stable URL for it.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Generator builds the periodic inventory reports.
type Generator struct {
	store    repository.Store
	uploader Uploader
	log      *logger.Logger
}

func NewGenerator(store repository.Store, uploader Uploader) *Generator {
	return &Generator{
		store:    store,
		uploader: uploader,
		log:      logger.New("report_generator"),
	}
}

// ShareProductsReport renders the full product catalog with on-hand
// quantities as CSV and uploads it.
func (g *Generator) ShareProductsReport(ctx context.Context) (string, error) {
	if g.uploader == nil {
		return "", fmt.Errorf("report storage is not configured")
	}

	products, err := g.store.Repos().Products.FindAll(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"product_id", "product_name", "product_size", "quantity", "warehouse_id"}); err != nil {
		return "", err
	}
	for _, p := range products {
		quantity, warehouseID := "0", ""
		stock, err := g.store.Repos().Stocks.FindByProductID(ctx, p.ID)
		if err != nil {
			return "", err
		}
		if stock != nil {
			quantity = strconv.FormatInt(stock.Quantity, 10)
			warehouseID = strconv.FormatUint(uint64(stock.WarehouseID), 10)
		}
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			string(p.Size),
			quantity,
			warehouseID,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("reports/products-%s-%s.csv", time.Now().UTC().Format("20060102"), uuid.New().String())
	url, err := g.uploader.Upload(ctx, key, buf.Bytes(), "text/csv")
	if err != nil {
		return "", err
	}

	g.log.Info("shared products report with %d rows", len(products))
	return url, nil
}
