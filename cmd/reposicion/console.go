package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/bootstrap"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
)

// console diálogo línea a línea con el operador.
type console struct {
	app     *bootstrap.App
	in      *bufio.Scanner
	out     io.Writer
	printer *message.Printer
}

func newConsole(app *bootstrap.App, in io.Reader, out io.Writer, lang language.Tag) *console {
	return &console{app: app, in: bufio.NewScanner(in), out: out, printer: message.NewPrinter(lang)}
}

func (c *console) money(d decimal.Decimal) string {
	return c.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// ask imprime la pregunta y devuelve la respuesta sin espacios; ok=false en EOF.
func (c *console) ask(format string, args ...interface{}) (string, bool) {
	fmt.Fprintf(c.out, format, args...)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func affirmative(s string) bool {
	switch strings.ToLower(s) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

// plan muestra los candidatos, recoge la decisión por línea y crea las órdenes
// con esas mismas líneas, aunque el stock cambie mientras el operador responde.
func (c *console) plan(ctx context.Context, filter inventory.Filter, date string, yes bool) error {
	filter = filter.Normalize()
	candidates, err := c.app.Planner.Propose(ctx, filter)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(c.out, "ningún artículo bajo nivel par")
		return nil
	}

	decisions := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		l := cand.Line
		prompt := fmt.Sprintf("%-24s %-12s en mano %3d / par %3d  pedir %3d × %s",
			l.ItemName, l.Vendor, cand.Item.QuantityOnHand, cand.Item.Par, l.ExpectedQuantity, c.money(l.ExpectedUnitPrice))
		if yes {
			fmt.Fprintln(c.out, prompt)
			decisions[l.ItemID] = true
			continue
		}
		answer, ok := c.ask("%s  ¿pedir? [s/N]: ", prompt)
		if !ok {
			break
		}
		decisions[l.ItemID] = affirmative(answer)
	}

	accepted := 0
	for _, v := range decisions {
		if v {
			accepted++
		}
	}
	if accepted == 0 {
		fmt.Fprintln(c.out, "sin líneas aceptadas: no se crean órdenes")
		return nil
	}

	orders, err := c.app.Planner.PlaceCandidates(ctx, candidates, decisions, date)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Fprintf(c.out, "orden %s  %s  %d líneas  total esperado %s  entrega %s\n",
			o.ID, o.Vendor, len(o.Lines), c.money(o.ExpectedTotal()), o.ExpectedDeliveryDate.Format("2006-01-02"))
		for _, l := range o.Lines {
			fmt.Fprintf(c.out, "  %-24s %3d × %s\n", l.ItemName, l.ExpectedQuantity, c.money(l.ExpectedUnitPrice))
		}
	}
	return nil
}

// count pide la cantidad contada de cada artículo del proveedor y aplica
// todos los conteos en una transacción. Línea vacía omite el artículo.
func (c *console) count(ctx context.Context, vendor string) error {
	list, err := c.app.ItemUC.List(ctx, vendor, "")
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Fprintf(c.out, "sin artículos para %s\n", vendor)
		return nil
	}

	counts := make([]dto.ItemCountDTO, 0, len(list.Items))
	for _, it := range list.Items {
		for {
			answer, ok := c.ask("%-24s en sistema %3d  contado: ", it.Name, it.QuantityOnHand)
			if !ok || answer == "" {
				break
			}
			n, err := strconv.Atoi(answer)
			if err != nil || n < 0 {
				fmt.Fprintln(c.out, "  ingrese un entero >= 0 o deje vacío para omitir")
				continue
			}
			counts = append(counts, dto.ItemCountDTO{ItemID: it.ID, Counted: n})
			break
		}
	}
	if len(counts) == 0 {
		fmt.Fprintln(c.out, "sin conteos")
		return nil
	}

	results, err := c.app.Valuation.ApplyCounts(ctx, counts)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(c.out, "%-24s sistema %3d  contado %3d  discrepancia %+d\n", r.ItemName, r.QuantityOnHand, r.Counted, r.Discrepancy)
	}
	return nil
}
