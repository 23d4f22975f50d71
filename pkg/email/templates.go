package email

// notificationTemplate is the internal email sent to the business inbox
const notificationTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Nueva solicitud de contacto</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #1f2933; }
        .container { max-width: 640px; margin: 0 auto; padding: 20px; }
        .header { background: #0b1f33; color: #ffffff; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f5f7fa; }
        .field { margin-bottom: 14px; }
        .label { font-weight: bold; color: #52606d; }
        .value { margin-top: 4px; }
        .service { display: inline-block; background: #00b37e; color: #ffffff; padding: 2px 10px; border-radius: 4px; }
        .message-box { background: #ffffff; padding: 15px; border-left: 4px solid #00b37e; margin-top: 8px; white-space: pre-wrap; }
        .meta { margin-top: 20px; padding: 12px; background: #e4e7eb; font-size: 12px; color: #52606d; }
        .footer { text-align: center; padding: 20px; color: #9aa5b1; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Nueva solicitud de contacto</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Nombre:</div>
                <div class="value">{{.Name}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value"><a href="mailto:{{.MailtoAddress}}">{{.Email}}</a></div>
            </div>
            <div class="field">
                <div class="label">Empresa:</div>
                <div class="value">{{.Company}}</div>
            </div>
            <div class="field">
                <div class="label">Teléfono:</div>
                <div class="value">{{if .Phone}}{{.Phone}}{{else}}No indicado{{end}}</div>
            </div>
            <div class="field">
                <div class="label">Servicio solicitado:</div>
                <div class="value"><span class="service">{{.ServiceLabel}}</span></div>
            </div>
            <div class="field">
                <div class="label">Mensaje:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
            <div class="meta">
                <div><strong>Fecha:</strong> {{.Timestamp}}</div>
                <div><strong>IP:</strong> {{.IP}}</div>
                <div><strong>User-Agent:</strong> {{.UserAgent}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Enviado desde el formulario de contacto de {{.BrandName}}.</p>
            <p>Responde directamente a este correo para contestar a {{.Email}}.</p>
        </div>
    </div>
</body>
</html>`

// autoReplyTemplate is the confirmation sent back to the submitter
const autoReplyTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Hemos recibido tu solicitud</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #1f2933; }
        .container { max-width: 640px; margin: 0 auto; padding: 20px; }
        .header { background: #0b1f33; color: #ffffff; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f5f7fa; }
        .summary { background: #ffffff; padding: 15px; border-left: 4px solid #00b37e; margin: 16px 0; }
        .message-box { white-space: pre-wrap; color: #52606d; }
        .footer { text-align: center; padding: 20px; color: #9aa5b1; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.BrandName}}</h1>
        </div>
        <div class="content">
            <p>Hola {{.Name}},</p>
            <p>Gracias por contactar con nosotros. Hemos recibido tu solicitud y un miembro de nuestro equipo te responderá en menos de 24 horas laborables.</p>
            <div class="summary">
                <p><strong>Servicio:</strong> {{.ServiceLabel}}</p>
                <p><strong>Empresa:</strong> {{.Company}}</p>
                <p><strong>Tu mensaje:</strong></p>
                <div class="message-box">{{.Message}}</div>
            </div>
            <p>Si tu consulta es urgente, puedes llamarnos al {{.ContactPhone}}.</p>
            <p>Un saludo,<br>El equipo de {{.BrandName}}</p>
        </div>
        <div class="footer">
            <p><a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
            <p>Este es un mensaje automático, por favor no respondas a este correo.</p>
        </div>
    </div>
</body>
</html>`
