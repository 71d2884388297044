package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El núcleo nunca reintenta: cada error se devuelve tipado y el llamador
// (capa de presentación) decide si reintenta, avisa o descarta.
var (
	ErrNotFound        = errors.New("producto no encontrado")
	ErrInvalidQuantity = errors.New("la cantidad resultante sería negativa")
	ErrValidation      = errors.New("entrada inválida")
	ErrPersistence     = errors.New("fallo de persistencia")
)
