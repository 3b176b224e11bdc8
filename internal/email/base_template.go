package email

import (
	"bytes"
	"html/template"
)

// BaseEmailData contains data for the base email wrapper
type BaseEmailData struct {
	Content template.HTML
	Subject string
}

const baseEmailTemplate = `
<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, Helvetica, sans-serif; color: #4a3f3f; background: #fdf6f5; margin: 0; padding: 0; line-height: 1.6; }
        .wrapper { max-width: 600px; margin: 0 auto; background: #ffffff; }
        .masthead { background: #eebbba; padding: 24px 30px; text-align: center; }
        .masthead .name { color: #ffffff; font-size: 24px; font-weight: 700; letter-spacing: 1px; }
        .masthead .tagline { color: #fff7f7; font-size: 13px; }
        .body { padding: 30px 24px; }
        .foot { background: #f7e4e3; color: #8a7474; text-align: center; font-size: 12px; padding: 20px; }
        @media only screen and (max-width: 600px) {
            .body { padding: 20px 14px; }
        }
    </style>
</head>
<body>
    <div class="wrapper">
        <div class="masthead">
            <div class="name">VALÚ Baby</div>
            <div class="tagline">Ropa hermosa para momentos únicos</div>
        </div>
        <div class="body">
            {{.Content}}
        </div>
        <div class="foot">
            VALÚ Baby &middot; Lima, Perú<br>
            VALÚ BABY E.I.R.L.
        </div>
    </div>
</body>
</html>
`

var baseTmpl = template.Must(template.New("base").Parse(baseEmailTemplate))

// WrapEmailContent wraps content in the base email template
func WrapEmailContent(content string, subject string) (string, error) {
	data := BaseEmailData{
		Content: template.HTML(content),
		Subject: subject,
	}

	var result bytes.Buffer
	if err := baseTmpl.Execute(&result, data); err != nil {
		return "", err
	}

	return result.String(), nil
}
