// Package artifact guarda las imágenes QR de los ítems, indexadas por código.
package artifact

import (
	"regexp"
)

// ContentType de todas las imágenes almacenadas.
const ContentType = "image/png"

var validCode = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// objectName nombre del archivo u objeto para un código; vacío si el código no es válido.
func objectName(code string) string {
	if !validCode.MatchString(code) {
		return ""
	}
	return code + ".png"
}
