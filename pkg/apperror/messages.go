package apperror

// Client-facing messages. They are part of the public response contract.
const (
	MsgValidation         = "Los datos del formulario no son válidos"
	MsgMalformed          = "El cuerpo de la solicitud no es un JSON válido"
	MsgInternal           = "Error al enviar el mensaje. Por favor, inténtalo de nuevo más tarde o llámanos por teléfono."
	MsgUnavailable        = "Servicio temporalmente no disponible. Por favor, inténtalo de nuevo más tarde."
	MsgNotFound           = "Endpoint no encontrado"
	MsgRateLimited        = "Demasiadas solicitudes desde esta IP. Por favor, inténtalo de nuevo más tarde."
	MsgContactRateLimited = "Has alcanzado el límite de envíos del formulario. Por favor, inténtalo de nuevo más tarde."
	MsgTooLarge           = "La solicitud es demasiado grande"
	MsgSubmitted          = "Mensaje enviado correctamente. Te responderemos en menos de 24 horas."
)
