// Package cnpj formatea y valida el CNPJ (registro nacional de personas jurídicas de Brasil).
//
// Un CNPJ tiene 14 dígitos: 12 de base y 2 dígitos verificadores calculados
// con módulo 11 y pesos 2..9 que se repiten desde la derecha.
package cnpj

import (
	"strings"
	"unicode"
)

// Length cantidad de dígitos de un CNPJ completo.
const Length = 14

// Format elimina todo lo que no sea dígito e inserta los separadores de forma progresiva,
// de modo que sirve mientras el usuario escribe: "11222" → "11.222",
// "11222333000181" → "11.222.333/0001-81". Los dígitos sobrantes después del 14 se descartan.
func Format(raw string) string {
	d := string(extractDigits(raw))
	n := len(d)
	switch {
	case n <= 2:
		return d
	case n <= 5:
		return d[:2] + "." + d[2:]
	case n <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	case n <= 12:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:]
	}
	if n > Length {
		d = d[:Length]
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// Validate indica si raw (con o sin puntuación) es un CNPJ válido:
// exactamente 14 dígitos, no todos iguales, y ambos dígitos verificadores correctos.
func Validate(raw string) bool {
	digits := extractDigits(raw)
	if len(digits) != Length {
		return false
	}
	if allSame(digits) {
		return false
	}
	first, second, ok := CheckDigits(string(digits[:12]))
	if !ok {
		return false
	}
	return digits[12] == first && digits[13] == second
}

// CheckDigits calcula los dos dígitos verificadores para los 12 dígitos de base.
// ok es false si base no contiene exactamente 12 dígitos.
func CheckDigits(base string) (first, second byte, ok bool) {
	digits := extractDigits(base)
	if len(digits) != 12 {
		return 0, 0, false
	}
	first = checkDigit(digits)
	second = checkDigit(append(digits, first))
	return first, second, true
}

// Normalize devuelve solo los dígitos de raw.
func Normalize(raw string) string {
	return string(extractDigits(raw))
}

// checkDigit aplica pesos 2,3,...,9,2,3,... empezando por el dígito más a la derecha.
func checkDigit(digits []byte) byte {
	var sum int
	for i := len(digits) - 1; i >= 0; i-- {
		weight := 2 + (len(digits)-1-i)%8
		sum += int(digits[i]-'0') * weight
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allSame(digits []byte) bool {
	return strings.Count(string(digits), string(digits[0])) == len(digits)
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
