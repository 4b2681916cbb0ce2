package order

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"shopyz-be/internal/pricing"
	"shopyz-be/internal/syncer"
)

// CSVHeader is the first row of an order export.
var CSVHeader = []string{"ID", "Name", "Phone", "Items", "Total", "Status", "Date"}

// Ledger is the admin's live, read-only view of every order.
type Ledger interface {
	Orders() []Order
	Err() error
	Revenue() int64
	Stats() Stats
	ExportCSV(w io.Writer) error
	Wait(ctx context.Context) error
	Close()
}

type ledger struct {
	mirror *syncer.Mirror[Order]
	loc    *time.Location
}

// NewLedger mirrors orders until Close. Export dates are rendered in loc.
func NewLedger(ctx context.Context, repo Repository, loc *time.Location) Ledger {
	if loc == nil {
		loc = time.UTC
	}
	return &ledger{mirror: repo.Watch(ctx), loc: loc}
}

func (l *ledger) Orders() []Order {
	return l.mirror.Items()
}

func (l *ledger) Err() error {
	return l.mirror.Err()
}

// Revenue sums the parsed totals of delivered orders.
func (l *ledger) Revenue() int64 {
	return Revenue(l.mirror.Items())
}

func (l *ledger) Stats() Stats {
	items := l.mirror.Items()
	return Stats{Orders: len(items), Revenue: Revenue(items)}
}

func (l *ledger) ExportCSV(w io.Writer) error {
	return WriteCSV(w, l.mirror.Items(), l.loc)
}

func (l *ledger) Wait(ctx context.Context) error {
	return l.mirror.Wait(ctx)
}

func (l *ledger) Close() {
	l.mirror.Close()
}

func Revenue(orders []Order) int64 {
	var total int64
	for _, o := range orders {
		if o.Status == StatusDelivered && o.Total != "" {
			total += pricing.ParseAmount(o.Total)
		}
	}
	return total
}

// WriteCSV writes one row per order in the given order. Item titles are joined with
// " | " and dates rendered as M/D/YYYY.
func WriteCSV(w io.Writer, orders []Order, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, o := range orders {
		titles := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			titles = append(titles, it.Title)
		}

		row := []string{
			o.ID,
			o.Name,
			o.Phone,
			strings.Join(titles, " | "),
			o.Total,
			string(o.Status),
			time.UnixMilli(o.Date).In(loc).Format("1/2/2006"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
