package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

type MenuItemWriter interface {
	Create(ctx context.Context, companyID string, m domain.MenuItem) (*domain.MenuItem, error)
}

type VariationWriter interface {
	List(ctx context.Context, companyID string) ([]domain.Variation, error)
	Create(ctx context.Context, companyID string, v domain.Variation) (*domain.Variation, error)
}

type CategoryWriter interface {
	List(ctx context.Context, companyID string) ([]domain.Category, error)
	Upsert(ctx context.Context, companyID string, c domain.Category) (*domain.Category, error)
}

// CSVImporter reads menu spreadsheets. Item files may carry variation groups
// on continuation rows (blank name) below the item they belong to.
type CSVImporter struct {
	reader     *csv.Reader
	items      MenuItemWriter
	variations VariationWriter
	categories CategoryWriter
	companyID  string

	categoryIDs  map[string]string
	variationIDs map[string]string
}

func NewCSVImporter(r io.Reader, items MenuItemWriter, variations VariationWriter, categories CategoryWriter, companyID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		items:      items,
		variations: variations,
		categories: categories,
		companyID:  companyID,
	}
}

type Kind string

const (
	KindMenuItems  Kind = "menu-items"
	KindVariations Kind = "variations"
)

// DetectKind inspects the header row. Variation files have an
// additionalPrice column; everything else is read as menu items.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	if _, ok := headerIndex(headers)["additionalPrice"]; ok {
		return KindVariations, nil
	}
	return KindMenuItems, nil
}

// Run imports every row and returns how many records were created.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["additionalPrice"]; ok {
		return i.runVariations(ctx, index)
	}
	return i.runItems(ctx, index)
}

func (i *CSVImporter) runVariations(ctx context.Context, index map[string]int) (int, error) {
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			return imported, nil
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		name := pick(record, index, "name")
		if name == "" {
			continue
		}
		price, err := parsePrice(pick(record, index, "additionalPrice"))
		if err != nil {
			return imported, fmt.Errorf("variation %q: %w", name, err)
		}
		v := domain.Variation{
			Name:            name,
			Description:     pick(record, index, "description"),
			AdditionalPrice: price,
			Available:       parseBool(pick(record, index, "available"), true),
		}
		if cat := pick(record, index, "category"); cat != "" {
			id, err := i.categoryID(ctx, cat)
			if err != nil {
				return imported, err
			}
			v.CategoryIDs = []string{id}
		}
		if _, err := i.variations.Create(ctx, i.companyID, v); err != nil {
			return imported, fmt.Errorf("create variation %q: %w", name, err)
		}
		imported++
	}
}

func (i *CSVImporter) runItems(ctx context.Context, index map[string]int) (int, error) {
	var (
		current  *domain.MenuItem
		imported int
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		name := pick(record, index, "name")
		if name != "" {
			if current != nil {
				if err := i.saveItem(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current, err = i.parseItem(ctx, record, index)
			if err != nil {
				return imported, err
			}
			continue
		}

		if current != nil && pick(record, index, "group") != "" {
			g, err := i.parseGroup(ctx, record, index)
			if err != nil {
				return imported, fmt.Errorf("item %q: %w", current.Name, err)
			}
			current.VariationGroups = append(current.VariationGroups, g)
		}
	}

	if current != nil {
		if err := i.saveItem(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) parseItem(ctx context.Context, record []string, index map[string]int) (*domain.MenuItem, error) {
	name := pick(record, index, "name")
	price, err := parsePrice(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", name, err)
	}
	m := &domain.MenuItem{
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		Image:       pick(record, index, "image"),
		Popular:     parseBool(pick(record, index, "popular"), false),
		Available:   parseBool(pick(record, index, "available"), true),
		PriceFrom:   parseBool(pick(record, index, "priceFrom"), false),
	}
	if cat := pick(record, index, "category"); cat != "" {
		if m.CategoryID, err = i.categoryID(ctx, cat); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (i *CSVImporter) parseGroup(ctx context.Context, record []string, index map[string]int) (domain.VariationGroup, error) {
	g := domain.VariationGroup{
		Name:          pick(record, index, "group"),
		CustomMessage: pick(record, index, "group.message"),
	}
	var err error
	if g.MinRequired, err = parseInt(pick(record, index, "group.min"), 0); err != nil {
		return g, fmt.Errorf("group %q min: %w", g.Name, err)
	}
	if g.MaxAllowed, err = parseInt(pick(record, index, "group.max"), 1); err != nil {
		return g, fmt.Errorf("group %q max: %w", g.Name, err)
	}
	for _, name := range strings.Split(pick(record, index, "group.variations"), ";") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := i.variationID(ctx, name)
		if err != nil {
			return g, err
		}
		g.VariationIDs = append(g.VariationIDs, id)
	}
	return g, nil
}

func (i *CSVImporter) saveItem(ctx context.Context, m *domain.MenuItem) error {
	if _, err := i.items.Create(ctx, i.companyID, *m); err != nil {
		return fmt.Errorf("create item %q: %w", m.Name, err)
	}
	return nil
}

// categoryID resolves a category by name, creating it at the end of the
// display order when missing.
func (i *CSVImporter) categoryID(ctx context.Context, name string) (string, error) {
	if i.categoryIDs == nil {
		list, err := i.categories.List(ctx, i.companyID)
		if err != nil {
			return "", fmt.Errorf("list categories: %w", err)
		}
		i.categoryIDs = make(map[string]string, len(list))
		for _, c := range list {
			i.categoryIDs[strings.ToLower(c.Name)] = c.ID
		}
	}
	key := strings.ToLower(name)
	if id, ok := i.categoryIDs[key]; ok {
		return id, nil
	}
	c, err := i.categories.Upsert(ctx, i.companyID, domain.Category{Name: name, DisplayOrder: len(i.categoryIDs) + 1})
	if err != nil {
		return "", fmt.Errorf("create category %q: %w", name, err)
	}
	i.categoryIDs[key] = c.ID
	return c.ID, nil
}

func (i *CSVImporter) variationID(ctx context.Context, name string) (string, error) {
	if i.variationIDs == nil {
		list, err := i.variations.List(ctx, i.companyID)
		if err != nil {
			return "", fmt.Errorf("list variations: %w", err)
		}
		i.variationIDs = make(map[string]string, len(list))
		for _, v := range list {
			i.variationIDs[strings.ToLower(v.Name)] = v.ID
		}
	}
	id, ok := i.variationIDs[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown variation %q", name)
	}
	return id, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// parsePrice accepts "25.00" and the Brazilian "25,00".
func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
}

func parseBool(raw string, def bool) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "sim", "yes":
		return true
	case "false", "0", "nao", "não", "no":
		return false
	}
	return def
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
