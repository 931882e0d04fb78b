package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/inventory"
	"github.com/jhoicas/nexus-inventory/pkg/money"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printKV(w io.Writer, rows [][2]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "sin resultados")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func printProducts(w io.Writer, items []entity.Product) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			p.SKU,
			p.Name,
			deref(p.Category),
			money.Format(p.Price.Decimal()),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.MinStockLevel),
			string(inventory.ClassifyStatus(p)),
			money.Format(inventory.Valuation(p)),
			p.ID,
		})
	}
	printTable(w, []string{"SKU", "NOMBRE", "CATEGORÍA", "PRECIO", "STOCK", "MÍNIMO", "ESTADO", "VALOR", "ID"}, rows)
}

func printProduct(w io.Writer, p entity.Product) {
	printKV(w, [][2]string{
		{"id", p.ID},
		{"sku", p.SKU},
		{"nombre", p.Name},
		{"categoría", deref(p.Category)},
		{"precio", money.Format(p.Price.Decimal())},
		{"stock", strconv.Itoa(p.StockQuantity)},
		{"mínimo", strconv.Itoa(p.MinStockLevel)},
		{"estado", string(inventory.ClassifyStatus(p))},
	})
}

func printMovements(w io.Writer, items []entity.StockMovement) {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			formatTime(m.CreatedAt),
			m.Type,
			m.SKU,
			signed(m.Adjustment),
			strconv.Itoa(m.ResultingStock),
			deref(m.FromBusiness),
			deref(m.ToBusiness),
			deref(m.PerformedByEmail),
		})
	}
	printTable(w, []string{"FECHA", "TIPO", "SKU", "AJUSTE", "RESULTANTE", "DESDE", "HACIA", "USUARIO"}, rows)
}

func printAudit(w io.Writer, items []entity.AuditLogEntry) {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, []string{
			formatTime(e.CreatedAt),
			e.ActionType,
			e.UserEmail,
			e.Description,
		})
	}
	printTable(w, []string{"FECHA", "ACCIÓN", "USUARIO", "DESCRIPCIÓN"}, rows)
}

func printUsers(w io.Writer, items []entity.AppUser) {
	rows := make([][]string, 0, len(items))
	for _, u := range items {
		rows = append(rows, []string{u.Email, deref(u.DisplayName), formatTime(u.LastLoginAt), u.ID})
	}
	printTable(w, []string{"EMAIL", "NOMBRE", "ÚLTIMO LOGIN", "ID"}, rows)
}

func printSummary(w io.Writer, s inventory.Summary, cats []inventory.CategoryRow) {
	printKV(w, [][2]string{
		{"productos", money.Units(s.TotalItems)},
		{"valor del inventario", money.Format(s.TotalValue)},
		{"stock bajo", money.Units(s.LowStockCount)},
		{"agotados", money.Units(s.OutOfStockCount)},
	})
	_, _ = fmt.Fprintln(w)
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.SKUs), money.Units(c.Units), money.Format(c.Value)})
	}
	printTable(w, []string{"CATEGORÍA", "SKUS", "UNIDADES", "VALOR"}, rows)
}
