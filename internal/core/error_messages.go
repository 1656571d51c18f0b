// Package core provides the parameter lookup logic for the laser catalog.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Messages are in Spanish, the display language of the catalog. When users
// report a problem they can quote the code for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source unavailable: the parameter table could not be read
//	         Action: try again later
//	         Patterns: "source unavailable"
//
//	SRC002 - Encoding error: the parameter table has an unsupported encoding
//	         Action: save the file as UTF-8
//	         Patterns: "encoding error"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid thickness: thickness is empty, non-numeric or negative
//	         Patterns: "invalid thickness"
//
//	VAL002 - Invalid material: material is empty or not offered
//	         Patterns: "invalid material"
//
//	VAL003 - Invalid request: request body could not be decoded
//	         Patterns: "invalid request"
//
// # Lookup Errors (LKP001-LKP099)
//
//	LKP001 - No match: no table entry for the material/thickness
//	         Action: contact Industrial Metal Systems
//	         Patterns: "no match"
//
//	LKP002 - Equipment not found: no robot or cobot with that model
//	         Patterns: "equipment not found"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout
//	         Patterns: "context deadline exceeded", "timeout"
//
//	REQ003 - Refresh busy: another refresh is still running
//	         Patterns: "refresh in progress"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: too many requests
//	          Patterns: "rate limit"
//
// # Authorization Errors (AUTH001-AUTH099)
//
//	AUTH001 - Missing API key on a protected endpoint
//	          Patterns: "missing api key"
//
//	AUTH002 - API key not recognised
//	          Patterns: "invalid api key"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check the
// application logs for the original technical error.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable is wrapped by sources that cannot be located or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoMatch reports that no record matches the requested material.
	ErrNoMatch = errors.New("no match: no table entry for this material/thickness")

	// ErrEquipmentNotFound reports an unknown robot or cobot model.
	ErrEquipmentNotFound = errors.New("equipment not found")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001-SRC002)
	// =========================================================================
	{
		pattern: "source unavailable",
		msg: UserMessage{
			Message: "Los parámetros del láser no están disponibles",
			Action:  "Por favor intente nuevamente más tarde",
			Code:    "SRC001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "El archivo de parámetros contiene caracteres inválidos",
			Action:  "Guarde el archivo con codificación UTF-8",
			Code:    "SRC002",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL003)
	// =========================================================================
	{
		pattern: "invalid thickness",
		msg: UserMessage{
			Message: MsgInvalidThickness,
			Action:  "Use un número positivo en milímetros, por ejemplo 6 o 2.5",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid material",
		msg: UserMessage{
			Message: MsgInvalidMaterial,
			Action:  "Elija un material de la lista",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "La solicitud no es válida",
			Action:  "Revise los valores ingresados",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// Lookup Errors (LKP001-LKP002)
	// =========================================================================
	{
		pattern: "no match",
		msg: UserMessage{
			Message: "No hay entrada en la tabla para este material/grosor.",
			Action:  "Por favor contacte a Industrial Metal Systems.",
			Code:    "LKP001",
		},
	},
	{
		pattern: "equipment not found",
		msg: UserMessage{
			Message: "Equipo no encontrado",
			Action:  "Verifique el modelo seleccionado",
			Code:    "LKP002",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ003)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "La solicitud fue cancelada",
			Action:  "Por favor intente nuevamente",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Tiempo de espera agotado.",
			Action:  "Por favor intente nuevamente.",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Tiempo de espera agotado.",
			Action:  "Por favor intente nuevamente.",
			Code:    "REQ002",
		},
	},

	{
		pattern: "refresh in progress",
		msg: UserMessage{
			Message: "Ya hay una actualización en curso",
			Action:  "Por favor espere un momento antes de intentar nuevamente",
			Code:    "REQ003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Por favor espere un momento antes de intentar nuevamente",
			Code:    "RATE001",
		},
	},

	// =========================================================================
	// Authorization Errors (AUTH001-AUTH002)
	// =========================================================================
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "Se requiere una clave de acceso",
			Action:  "Incluya el encabezado X-API-Key",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "Clave de acceso inválida",
			Action:  "Verifique la clave configurada",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Por favor intente nuevamente o contacte a soporte",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("cut table: %w", ErrSourceUnavailable))
//	// msg.Code == "SRC001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Código: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
