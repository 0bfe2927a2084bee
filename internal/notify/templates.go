package notify

import (
	"bytes"
	"html/template"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	"github.com/shopspring/decimal"
)

type emailItem struct {
	Name      string
	Quantity  int64
	UnitPrice string
	LineTotal string
}

type emailData struct {
	OrderNumber  string
	CustomerName string
	Items        []emailItem
	Subtotal     string
	DeliveryCost string
	Total        string
	Address      string
	ZoneLabel    string
	ZoneETA      string
	PaymentLabel string
	ProofURL     string
	Notes        string
}

// お客様向けの注文確認。
// 新しい送信ドメインはPromocionesやSpamに落ちやすいので、
// 迷惑メール確認のお願いは本文に必ず入れる（運用上の実要件）。
var customerTmpl = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#1a1a1a;max-width:600px;margin:0 auto">
  <h2 style="color:#c8102e">¡Gracias por tu pedido, {{.CustomerName}}!</h2>
  <p>Tu orden <strong>{{.OrderNumber}}</strong> fue recibida.</p>
  <table style="width:100%;border-collapse:collapse">
    <tr style="background:#f4f4f4">
      <th style="text-align:left;padding:8px">Producto</th>
      <th style="text-align:center;padding:8px">Cant.</th>
      <th style="text-align:right;padding:8px">Precio</th>
      <th style="text-align:right;padding:8px">Total</th>
    </tr>
    {{range .Items}}
    <tr>
      <td style="padding:8px;border-bottom:1px solid #eee">{{.Name}}</td>
      <td style="text-align:center;padding:8px;border-bottom:1px solid #eee">{{.Quantity}}</td>
      <td style="text-align:right;padding:8px;border-bottom:1px solid #eee">${{.UnitPrice}}</td>
      <td style="text-align:right;padding:8px;border-bottom:1px solid #eee">${{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>
  <p style="text-align:right">
    Subtotal: ${{.Subtotal}}<br>
    Envío ({{.ZoneLabel}}, {{.ZoneETA}}): ${{.DeliveryCost}}<br>
    <strong>Total: ${{.Total}}</strong>
  </p>
  <p>Dirección de entrega: {{.Address}}<br>
  Método de pago: {{.PaymentLabel}}</p>
  {{if .Notes}}<p>Notas: {{.Notes}}</p>{{end}}
  <p style="background:#fff8e1;padding:12px;border-radius:4px;font-size:13px">
    📬 Si no ves nuestros correos, revisa tu carpeta de
    <strong>Spam o Promociones</strong> y márcanos como remitente seguro.
  </p>
  <p style="font-size:12px;color:#888">RepuestoHoy — repuestos a domicilio</p>
</body>
</html>`))

// 社内向け。comprobanteの有無がひと目で分かるようにする。
var adminTmpl = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#1a1a1a;max-width:600px;margin:0 auto">
  <h2>Pedido {{.OrderNumber}}</h2>
  <p>
    Cliente: {{.CustomerName}}<br>
    Dirección: {{.Address}}<br>
    Zona: {{.ZoneLabel}} ({{.ZoneETA}})<br>
    Pago: {{.PaymentLabel}}
  </p>
  <table style="width:100%;border-collapse:collapse">
    <tr style="background:#f4f4f4">
      <th style="text-align:left;padding:8px">Producto</th>
      <th style="text-align:center;padding:8px">Cant.</th>
      <th style="text-align:right;padding:8px">Precio</th>
      <th style="text-align:right;padding:8px">Total</th>
    </tr>
    {{range .Items}}
    <tr>
      <td style="padding:8px;border-bottom:1px solid #eee">{{.Name}}</td>
      <td style="text-align:center;padding:8px;border-bottom:1px solid #eee">{{.Quantity}}</td>
      <td style="text-align:right;padding:8px;border-bottom:1px solid #eee">${{.UnitPrice}}</td>
      <td style="text-align:right;padding:8px;border-bottom:1px solid #eee">${{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>
  <p style="text-align:right">
    Subtotal: ${{.Subtotal}}<br>
    Envío: ${{.DeliveryCost}}<br>
    <strong>Total: ${{.Total}}</strong>
  </p>
  {{if .Notes}}<p>Notas: {{.Notes}}</p>{{end}}
  {{if .ProofURL}}
  <p><a href="{{.ProofURL}}" style="color:#1a73e8">📎 Ver comprobante de pago</a></p>
  {{else}}
  <p style="background:#fdecea;color:#b71c1c;padding:12px;border-radius:4px">
    ⚠️ Sin comprobante de pago todavía
  </p>
  {{end}}
</body>
</html>`))

func buildEmailData(o model.Order) emailData {
	items := make([]emailItem, 0, len(o.Items))
	for _, it := range o.Items {
		qty := it.Quantity
		items = append(items, emailItem{
			Name:      it.Name,
			Quantity:  qty,
			UnitPrice: it.UnitPrice.StringFixed(2),
			LineTotal: it.UnitPrice.Mul(decimal.NewFromInt(qty)).StringFixed(2),
		})
	}

	zoneLabel := o.DeliveryZone
	zoneETA := ""
	if z, ok := model.FindDeliveryZone(o.DeliveryZone); ok {
		zoneLabel = z.Label
		zoneETA = z.ETA
	}

	return emailData{
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Items:        items,
		Subtotal:     o.Subtotal.StringFixed(2),
		DeliveryCost: o.DeliveryCost.StringFixed(2),
		Total:        o.Total.StringFixed(2),
		Address:      o.Address,
		ZoneLabel:    zoneLabel,
		ZoneETA:      zoneETA,
		PaymentLabel: o.PaymentMethod.Label(),
		ProofURL:     o.ProofURL,
		Notes:        o.Notes,
	}
}

func renderCustomerEmail(o model.Order) (string, error) {
	var buf bytes.Buffer
	if err := customerTmpl.Execute(&buf, buildEmailData(o)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderAdminEmail(o model.Order) (string, error) {
	var buf bytes.Buffer
	if err := adminTmpl.Execute(&buf, buildEmailData(o)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
