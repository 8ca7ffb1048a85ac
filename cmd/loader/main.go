// The loader populates the food catalog from the TACO table spreadsheet
// (4th edition .xlsx). Nutrient columns are per 100 g in the source and are
// stored per gram. The catalog is replaced wholesale on every run.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/julio-sa/DieTI/config"
	"github.com/julio-sa/DieTI/logger"
	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/utils"
)

// necessaryColumns maps the spreadsheet headers to catalog fields.
var necessaryColumns = map[string]string{
	"Número do Alimento":      "id",
	"Descrição dos alimentos": "description",
	"Energia":                 "calorias_kcal",
	"Proteína":                "proteinas_g",
	"Lipídeos":                "gordura_g",
	"Carboidrato":             "carbo_g",
}

func main() {
	file := flag.String("file", "Taco-4a-Edicao.xlsx", "path to the TACO spreadsheet, or an s3://bucket/key URI")
	flag.Parse()

	if err := logger.Init(); err != nil {
		panic(err)
	}
	log := logger.L()

	cfg := config.Load(log)
	db := config.ConnectDB(cfg, log)

	path := *file
	if strings.HasPrefix(path, "s3://") {
		bucket, key, err := utils.ParseS3URI(path)
		if err != nil {
			log.Fatal("bad -file value", zap.Error(err))
		}
		log.Info("downloading spreadsheet", zap.String("bucket", bucket), zap.String("key", key))
		path, err = utils.DownloadS3Object(context.Background(), cfg.AWSRegion, bucket, key)
		if err != nil {
			log.Fatal("download failed", zap.Error(err))
		}
		defer os.Remove(path)
	}

	items, err := readSpreadsheet(path)
	if err != nil {
		log.Fatal("failed to read spreadsheet", zap.Error(err))
	}
	log.Info("records processed", zap.Int("count", len(items)))

	if len(items) == 0 {
		log.Warn("no data to insert")
		return
	}

	// replace the whole catalog, same as the previous seed
	if err := db.Exec("DELETE FROM food_items").Error; err != nil {
		log.Fatal("failed to clean catalog", zap.Error(err))
	}
	if err := db.CreateInBatches(items, 200).Error; err != nil {
		log.Fatal("failed to insert catalog", zap.Error(err))
	}
	log.Info("catalog imported", zap.Int("items", len(items)))
}

func readSpreadsheet(path string) ([]models.FoodItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// locate the needed columns by header text
	colIndex := map[string]int{}
	for i, header := range rows[0] {
		if field, ok := necessaryColumns[strings.TrimSpace(header)]; ok {
			colIndex[field] = i
		}
	}
	for _, field := range necessaryColumns {
		if _, ok := colIndex[field]; !ok {
			logger.L().Warn("missing expected column", zap.String("field", field))
		}
	}

	var items []models.FoodItem
	for _, row := range rows[1:] {
		id, ok := cellInt(row, colIndex, "id")
		if !ok {
			continue
		}
		items = append(items, models.FoodItem{
			ID:           id,
			Description:  cellString(row, colIndex, "description"),
			CaloriasKcal: perGram(row, colIndex, "calorias_kcal"),
			ProteinasG:   perGram(row, colIndex, "proteinas_g"),
			GorduraG:     perGram(row, colIndex, "gordura_g"),
			CarboG:       perGram(row, colIndex, "carbo_g"),
		})
	}
	return items, nil
}

func cellString(row []string, colIndex map[string]int, field string) string {
	i, ok := colIndex[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellInt(row []string, colIndex map[string]int, field string) (int, bool) {
	raw := cellString(row, colIndex, field)
	if raw == "" {
		return 0, false
	}
	// the source stores codes as floats ("123.0")
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// perGram parses a per-100g value and scales it down; non-numeric cells
// (the table uses "Tr" and "*" markers) stay absent.
func perGram(row []string, colIndex map[string]int, field string) *float64 {
	raw := cellString(row, colIndex, field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil
	}
	v /= 100.0
	return &v
}
