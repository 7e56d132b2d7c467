package fixer

// predefinedNames is the static symbol→display-name table for symbols the
// other feeds never publish. A Fixer symbol that is neither stored yet nor
// listed here is skipped; a stored row with a blank name is back-filled from
// this table.
var predefinedNames = map[string]string{
	"BMD": "Dolar bermudzki",
	"BTN": "Ngultrum bhutański",
	"BTC": "Bitcoin (częściowo prawny)",
	"KPW": "Won północnokoreański",
	"CLF": "Chilijska jednostka rozliczeniowa UF",
	"CNH": "Juan offshore",
	"FKP": "Funt Wysp Falklandzkich",
	"GGP": "Funt Guernsey",
	"IMP": "Funt Wyspy Man",
	"JEP": "Funt Jersey",
	"KYD": "Dolar Kajmanów",
	"SHP": "Funt Wyspy Świętej Heleny",
	"SLL": "Leone Sierra Leone",
	"ZWL": "Dolar Zimbabwe",
}
