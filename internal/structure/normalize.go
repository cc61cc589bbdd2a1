package structure

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/model"
	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

const maxKeywords = 10

// normalizeSections applies the fail-fast policy: the first section with
// empty content aborts the whole batch.
func normalizeSections(ctx context.Context, items []interface{}) ([]model.DocumentSection, error) {
	now := time.Now().UnixMilli()
	sections := make([]model.DocumentSection, 0, len(items))
	for idx, item := range items {
		fields, _ := item.(map[string]interface{})
		content := strings.TrimSpace(stringField(fields, "content"))
		if content == "" {
			return nil, fmt.Errorf("%w: section %d has empty content", apperr.ErrSectionInvalid, idx)
		}
		section := model.DocumentSection{
			ID:         stringField(fields, "id"),
			Title:      strings.TrimSpace(stringField(fields, "title")),
			Content:    content,
			Importance: clampImportance(stringField(fields, "importance")),
			Keywords:   filterKeywords(fields["keywords"]),
		}
		if section.ID == "" {
			section.ID = "section_" + strconv.Itoa(idx) + "_" + strconv.FormatInt(now, 10)
		}
		if section.Title == "" {
			section.Title = "Untitled Section"
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// normalizeTables is tolerant: malformed entries are cleaned or dropped, and
// a table that ends up with no headers and no rows is discarded.
func normalizeTables(ctx context.Context, items []interface{}) []model.DocumentTable {
	now := time.Now().UnixMilli()
	tables := make([]model.DocumentTable, 0, len(items))
	for idx, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			logutil.GetLogger(ctx).Warn("dropping non-object table entry", zap.Int("index", idx))
			continue
		}
		table := model.DocumentTable{
			ID:          stringField(fields, "id"),
			Title:       strings.TrimSpace(stringField(fields, "title")),
			Headers:     coerceHeaders(ctx, idx, fields["headers"]),
			Rows:        coerceRows(fields["rows"]),
			Description: strings.TrimSpace(stringField(fields, "description")),
		}
		if table.ID == "" {
			table.ID = "table_" + strconv.Itoa(idx) + "_" + strconv.FormatInt(now, 10)
		}
		if len(table.Headers) == 0 && len(table.Rows) == 0 {
			logutil.GetLogger(ctx).Warn("dropping empty table", zap.Int("index", idx), zap.String("title", table.Title))
			continue
		}
		tables = append(tables, table)
	}
	return tables
}

func clampImportance(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case model.ImportanceHigh:
		return model.ImportanceHigh
	case model.ImportanceLow:
		return model.ImportanceLow
	case model.ImportanceMedium:
		return model.ImportanceMedium
	default:
		return model.ImportanceMedium
	}
}

// filterKeywords keeps only string entries, trimmed, capped at maxKeywords,
// preserving order.
func filterKeywords(value interface{}) []string {
	items, _ := value.([]interface{})
	keywords := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		keywords = append(keywords, s)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}

func coerceHeaders(ctx context.Context, tableIdx int, value interface{}) []string {
	items, _ := value.([]interface{})
	headers := make([]string, 0, len(items))
	for i, item := range items {
		header := strings.TrimSpace(coerceString(item))
		if header == "" {
			logutil.GetLogger(ctx).Warn("dropping blank table header",
				zap.Int("table", tableIdx), zap.Int("header", i))
			continue
		}
		headers = append(headers, header)
	}
	return headers
}

// coerceRows accepts both {"cells": [...]} and bare-array row shapes.
func coerceRows(value interface{}) []model.TableRow {
	items, _ := value.([]interface{})
	rows := make([]model.TableRow, 0, len(items))
	for _, item := range items {
		var rawCells []interface{}
		switch v := item.(type) {
		case map[string]interface{}:
			rawCells, _ = v["cells"].([]interface{})
		case []interface{}:
			rawCells = v
		default:
			continue
		}
		cells := make([]string, 0, len(rawCells))
		for _, cell := range rawCells {
			cells = append(cells, strings.TrimSpace(coerceString(cell)))
		}
		rows = append(rows, model.TableRow{Cells: cells})
	}
	return rows
}

func stringField(fields map[string]interface{}, key string) string {
	if fields == nil {
		return ""
	}
	s, _ := fields[key].(string)
	return s
}

// coerceString renders scalar JSON values as cell text.
func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
