package document

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"samudra/internal/entities"
)

const (
	title      = "SAMUDRA PAKET - RESI PENGIRIMAN"
	dateLayout = "02/01/2006 15:04"
	dayLayout  = "02/01/2006"
)

// Renderer печатает текстовую накладную с индонезийским форматом чисел:
// разделитель тысяч ".", десятичный ",".
type Renderer struct {
	printer *message.Printer
}

func New() *Renderer {
	return &Renderer{
		printer: message.NewPrinter(language.Indonesian),
	}
}

func (r *Renderer) RenderWaybill(order entities.ShipmentOrder) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	lines := []string{
		title,
		"",
		"No. Resi\t: " + order.Waybill,
		"Tanggal\t: " + order.CreatedAt.Format(dateLayout),
		"Layanan\t: " + order.ServiceType.String(),
		"Pengirim\t: " + order.SenderName,
		"Penerima\t: " + order.ReceiverName,
		"Asal / Tujuan\t: " + order.OriginArea + " -> " + order.DestinationArea,
		"Berat\t: " + r.printer.Sprintf("%.2f kg", order.TotalWeight),
		"Estimasi Tiba\t: " + order.EstimatedDeliveryAt.Format(dayLayout),
		"Status\t: " + order.Status.String(),
		"",
		"Barang:",
	}
	for i, item := range order.Items {
		lines = append(lines, r.printer.Sprintf("  %d. %s\tx%d @ %.2f kg", i+1, item.Description, item.Quantity, item.Weight))
	}

	lines = append(lines,
		"",
		"Biaya:",
		"  Tarif Dasar\t"+r.Rupiah(order.Amount.BaseRate),
		"  Layanan Tambahan\t"+r.Rupiah(order.Amount.AdditionalServices),
		"  Diskon\t-"+r.Rupiah(order.Amount.Discount),
		"  Asuransi\t"+r.Rupiah(order.Amount.Insurance),
		"  Pajak\t"+r.Rupiah(order.Amount.Tax),
		"  Total\t"+r.Rupiah(order.Amount.Total),
	)
	if order.DiscountCode != "" {
		lines = append(lines, "  Kode Promo\t"+order.DiscountCode)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return nil, fmt.Errorf("write waybill: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flush waybill: %w", err)
	}
	return buf.Bytes(), nil
}

// Rupiah: "Rp 1.234.567", копейки выводятся только если они есть ("Rp 1.234,50").
func (r *Renderer) Rupiah(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).Abs().Mul(decimal.NewFromInt(100)).IntPart()

	s := "Rp " + r.printer.Sprintf("%d", whole)
	if cents != 0 {
		s += fmt.Sprintf(",%02d", cents)
	}
	return s
}
