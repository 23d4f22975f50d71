package formclient

import "fmt"

const (
	msgSuccess     = "¡Mensaje enviado! Te responderemos en menos de 24 horas."
	msgRateLimited = "Has enviado demasiadas solicitudes. Por favor, espera unos minutos antes de volver a intentarlo."
	msgInvalid     = "Revisa los datos del formulario e inténtalo de nuevo."
)

func serverFailureMessage(phone string) string {
	return fmt.Sprintf("No hemos podido enviar tu mensaje. Inténtalo de nuevo o llámanos al %s.", phone)
}

func connectivityMessage(phone string) string {
	return fmt.Sprintf("No se ha podido conectar con el servidor. Comprueba tu conexión e inténtalo de nuevo o llámanos al %s.", phone)
}

func malformedMessage(phone string) string {
	return fmt.Sprintf("Hemos recibido una respuesta inesperada. Inténtalo de nuevo o llámanos al %s.", phone)
}
