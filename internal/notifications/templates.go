package notifications

import (
	"bytes"
	"fmt"
	"html/template"
)

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #222;">
{{template "content" .}}
<p style="color: #888; font-size: 12px;">ToyBlox</p>
</body></html>{{end}}`

var (
	welcomeTmpl = mustTemplate("welcome", `{{define "content"}}
<h2>Welcome to ToyBlox, {{.FirstName}}!</h2>
<p>Please confirm your email address to finish setting up your account.</p>
<p><a href="{{.VerifyURL}}">Verify my email</a></p>
{{end}}`)

	placedTmpl = mustTemplate("placed", `{{define "content"}}
<h2>Thank you, {{.FirstName}}!</h2>
<p>Your order #{{.OrderID}} has been placed and will ship soon.</p>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th></tr>
{{range .Lines}}<tr><td>{{.Description}}</td><td align="center">{{.Quantity}}</td><td align="right">{{printf "%.2f" .PriceAtOrder}}</td></tr>
{{end}}</table>
<p><strong>Total: {{printf "%.2f" .Total}}</strong></p>
{{end}}`)

	shippedTmpl = mustTemplate("shipped", `{{define "content"}}
<h2>Good news, {{.FirstName}}!</h2>
<p>Your order #{{.OrderID}} has shipped{{if .Address}} to {{.Address}}{{end}}.</p>
{{end}}`)

	deliveredTmpl = mustTemplate("delivered", `{{define "content"}}
<h2>Your order has arrived, {{.FirstName}}!</h2>
<p>Order #{{.Receipt.OrderID}} was delivered. Your receipt is attached.</p>
<table cellpadding="6" style="border-collapse: collapse;">
{{range .Receipt.Lines}}<tr><td>{{.Description}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.Amount.StringFixed 2}}</td></tr>
{{end}}<tr><td colspan="2" align="right">Subtotal</td><td align="right">{{.Receipt.Subtotal.StringFixed 2}}</td></tr>
<tr><td colspan="2" align="right">Shipping</td><td align="right">{{.Receipt.Shipping.StringFixed 2}}</td></tr>
<tr><td colspan="2" align="right">Tax (12%)</td><td align="right">{{.Receipt.Tax.StringFixed 2}}</td></tr>
<tr><td colspan="2" align="right"><strong>Total</strong></td><td align="right"><strong>{{.Receipt.Total.StringFixed 2}}</strong></td></tr>
</table>
{{end}}`)
)

func mustTemplate(name, content string) *template.Template {
	t := template.Must(template.New(name).Parse(layoutHTML))
	return template.Must(t.Parse(content))
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
