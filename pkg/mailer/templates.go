package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	TemplateOrderDelivery = "order-delivery"
	TemplateResetPassword = "reset-password"
)

var templates = template.Must(template.New("emails").Parse(`
{{define "order-delivery"}}
<html><body>
<h2>{{.brandName}}</h2>
<p>Hi {{.name}},</p>
<p>Good news! Your order <strong>{{.orderCode}}</strong> is out for delivery.</p>
<p>Once it arrives, please confirm receipt so we can close out order {{.orderId}}:</p>
<p><a href="{{.confirmLink}}">Confirm you received your order</a></p>
<p>The link stays valid for 30 days.</p>
</body></html>
{{end}}

{{define "reset-password"}}
<html><body>
<h2>{{.brandName}}</h2>
<p>Hi {{.name}},</p>
<p>We received a request to reset your password. The link below expires soon:</p>
<p><a href="{{.link}}">Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>
</body></html>
{{end}}
`))

// Render executes a registered template by name.
func Render(templateRef string, data map[string]interface{}) (string, error) {
	t := templates.Lookup(templateRef)
	if t == nil {
		return "", fmt.Errorf("mailer: unknown template %q", templateRef)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", templateRef, err)
	}
	return buf.String(), nil
}
