package dialect

// CreditAgricole returns the dialect for Crédit Agricole CSV statements.
// The first ten lines of the export are an account summary in another layout.
func CreditAgricole() Dialect {
	return Dialect{
		Name:        "ca",
		Description: "Crédit Agricole account statement (CSV export)",
		Encoding:    "cp1252",
		Delimiter:   ";",
		Decimal:     ",",
		Thousands:   " ",
		SkipLines:   10,
		Amount: AmountSpec{
			Mode:   AmountSplit,
			Debit:  "Débit euros",
			Credit: "Crédit euros",
		},
		Date: DateSpec{
			Mode:   DateOnly,
			Column: "Date",
			Layout: "2/1/2006",
		},
		Payee: PayeeSpec{
			Column: "Libellé",
			Boilerplate: []string{
				"VIREMENT EMIS",
				"PRELEVEMENT",
				"VIREMENT EN VOTRE FAVEUR",
				"PAIEMENT PAR CARTE",
			},
			StripReference:    true,
			StripTrailingDate: true,
			StripCardPrefix:   true,
		},
		NotesColumn: "Libellé",
		Output: OutputSpec{
			File: "ca_to_actual.csv",
		},
	}
}

// PayPal returns the dialect for PayPal's French tab-separated activity export.
func PayPal() Dialect {
	return Dialect{
		Name:        "paypal",
		Description: "PayPal activity download (tab-separated, French locale)",
		Encoding:    "utf-8",
		Delimiter:   "\t",
		Decimal:     ",",
		Thousands:   " ",
		Filters: []Predicate{
			{Column: "État", OneOf: []string{"Terminé", "En attente"}},
			{Column: "Impact sur le solde", OneOf: []string{"Crédit", "Débit"}},
			{Column: "Devise", OneOf: []string{"EUR"}, Toggle: ToggleRemoveOtherCurrencies},
		},
		Amount: AmountSpec{
			Mode: AmountNet,
			Net:  "Net",
		},
		Date: DateSpec{
			Mode:       DateTimeZone,
			Column:     "Date",
			Layout:     "2/1/2006",
			TimeColumn: "Heure",
			TimeLayout: "15:04:05",
			ZoneColumn: "Fuseau horaire",
			Zones: map[string]string{
				"CEST": "+02:00",
				"CET":  "+01:00",
				"UTC":  "+00:00",
			},
		},
		Payee: PayeeSpec{
			Column: "Nom",
		},
		NotesColumn: "Titre de l'objet",
		Output: OutputSpec{
			File:        "paypal_to_actual.csv",
			ReportTotal: true,
		},
	}
}

// Builtins returns every built-in dialect.
func Builtins() []Dialect {
	return []Dialect{CreditAgricole(), PayPal()}
}
