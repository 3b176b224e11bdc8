package email

// customerOrderContentTemplate is the content section for customer order emails
const customerOrderContentTemplate = `
<h1 style="color: #eebbba; margin: 0 0 10px 0;">¡Gracias por tu compra!</h1>
<p>Hola {{.CustomerName}},</p>
<p>Hemos recibido tu pedido correctamente. Aquí están los detalles:</p>

<div style="background: #f9f9f9; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">Orden #{{.OrderNumber}}</h3>
    {{if .OrderDate}}<p style="margin: 0 0 10px 0; color: #888;">{{.OrderDate}}</p>{{end}}
    <table style="width: 100%; border-collapse: collapse;">
        {{range .Items}}
        <tr>
            <td style="padding: 10px; border-bottom: 1px solid #eee;">
                <strong>{{.ProductName}}</strong><br>
                <small>{{.Size}}</small>
            </td>
            <td style="padding: 10px; border-bottom: 1px solid #eee;">x{{.Quantity}}</td>
            <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right;">{{soles .Price}}</td>
        </tr>
        {{end}}
    </table>
    <p style="text-align: right; margin: 10px 0 0 0;">Subtotal: {{soles .Subtotal}}<br>Envío: {{soles .Shipping}}</p>
    <p style="text-align: right; font-size: 1.2em; margin: 5px 0 0 0;"><strong>Total: {{soles .Total}}</strong></p>
</div>

<h3>Datos de Envío:</h3>
<p>
    {{.ShippingAddress.Street}}<br>
    {{.ShippingAddress.Locality}}{{if .ShippingAddress.Region}}, {{.ShippingAddress.Region}}{{end}}<br>
    {{if .ShippingAddress.Reference}}Ref: {{.ShippingAddress.Reference}}{{end}}
</p>

<p>
    <strong>Método de Pago:</strong> {{.PaymentMethod}}<br>
    Si elegiste transferencia o Yape/Plin, por favor envía el comprobante a nuestro WhatsApp.
</p>
`

// adminOrderContentTemplate is the content section for the new-sale alert
const adminOrderContentTemplate = `
<h2 style="margin-top: 0;">¡Nueva venta en VALÚ Baby!</h2>
<p><strong>Orden:</strong> #{{.OrderNumber}}</p>
<p><strong>Cliente:</strong> {{.CustomerName}} ({{.CustomerPhone}})</p>
<p><strong>Email:</strong> <a href="mailto:{{.CustomerEmail}}">{{.CustomerEmail}}</a></p>
<p><strong>Monto:</strong> {{soles .Total}}</p>
<p><strong>Pago:</strong> {{.PaymentMethod}}</p>
<p><strong>Envío a:</strong> {{.ShippingAddress.Street}}, {{.ShippingAddress.Locality}}</p>
{{if .Notes}}<p><strong>Notas:</strong> {{.Notes}}</p>{{end}}

<ul>
    {{range .Items}}<li>{{.Quantity}} x {{.ProductName}} ({{.Size}}) - {{soles .Total}}</li>
    {{end}}
</ul>

{{if .DashboardURL}}
<p style="margin-top: 25px;">
    <a href="{{.DashboardURL}}" style="background: #eebbba; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Ver en Dashboard</a>
</p>
{{end}}
`
