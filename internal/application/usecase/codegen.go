package usecase

import "github.com/google/uuid"

// CodeLength longitud de los códigos de ítem (prefijo de un UUID v4).
const CodeLength = 8

// maxCodeAttempts intentos antes de rendirse al buscar un código libre.
const maxCodeAttempts = 5

// UUIDCodeGenerator genera códigos tomando los primeros caracteres de un UUID aleatorio.
type UUIDCodeGenerator struct{}

// NewCode implementa CodeGenerator.
func (UUIDCodeGenerator) NewCode() string {
	return uuid.New().String()[:CodeLength]
}
