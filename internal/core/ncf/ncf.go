package ncf

import (
	"fmt"
	"strings"
)

// Type is a DGII comprobante fiscal type code (e.g. "B01", "E32").
type Type string

const (
	TipoCreditoFiscal      Type = "B01"
	TipoConsumidorFinal    Type = "B02"
	TipoRegimenEspecial    Type = "B14"
	TipoGubernamental      Type = "B15"
	TipoExportacion        Type = "B16"
	TipoECFCreditoFiscal   Type = "E31"
	TipoECFConsumo         Type = "E32"
	TipoECFNotaDebito      Type = "E33"
	TipoECFNotaCredito     Type = "E34"
	TipoECFRegimenEspecial Type = "E44"
	TipoECFGubernamental   Type = "E45"
	TipoECFExportacion     Type = "E46"
)

// SequenceDigits is the fixed width of the numeric suffix of an NCF.
const SequenceDigits = 8

// TypeInfo describes a comprobante type for lookups and UI labels.
type TypeInfo struct {
	Code       Type   `json:"code"`
	Label      string `json:"label"`
	Electronic bool   `json:"electronic"`
}

var typeTable = []TypeInfo{
	{TipoCreditoFiscal, "Crédito Fiscal", false},
	{TipoConsumidorFinal, "Consumidor Final", false},
	{TipoRegimenEspecial, "Régimen Especial", false},
	{TipoGubernamental, "Gubernamental", false},
	{TipoExportacion, "Exportación", false},
	{TipoECFCreditoFiscal, "e-CF Crédito Fiscal", true},
	{TipoECFConsumo, "e-CF Consumo", true},
	{TipoECFNotaDebito, "e-CF Nota de Débito", true},
	{TipoECFNotaCredito, "e-CF Nota de Crédito", true},
	{TipoECFRegimenEspecial, "e-CF Régimen Especial", true},
	{TipoECFGubernamental, "e-CF Gubernamental", true},
	{TipoECFExportacion, "e-CF Exportación", true},
}

var typeIndex = func() map[Type]TypeInfo {
	m := make(map[Type]TypeInfo, len(typeTable))
	for _, info := range typeTable {
		m[info.Code] = info
	}
	return m
}()

// Types returns all comprobante types in declaration order.
func Types() []TypeInfo {
	out := make([]TypeInfo, len(typeTable))
	copy(out, typeTable)
	return out
}

// Lookup returns the metadata for a type code.
func Lookup(t Type) (TypeInfo, bool) {
	info, ok := typeIndex[t]
	return info, ok
}

// IsValid reports whether t is one of the known DGII type codes.
func IsValid(t Type) bool {
	_, ok := typeIndex[t]
	return ok
}

// IsElectronic reports whether t is an e-CF type. All electronic series
// carry the "E" prefix.
func IsElectronic(t Type) bool {
	return strings.HasPrefix(string(t), "E")
}

// Format renders a full NCF from a type and a sequence number:
// the type code followed by the zero-padded 8-digit sequence.
func Format(t Type, seq int64) string {
	return fmt.Sprintf("%s%0*d", t, SequenceDigits, seq)
}
