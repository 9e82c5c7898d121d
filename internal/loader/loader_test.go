package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/cleared-dev/tx2actual/internal/dialect"
)

const caPreamble = `Téléchargement du 02/01/2020;
;
CA Centre;
Compte de Dépôt carte;
N° 00000000000;
;
Solde au 31/12/2019 1 234,56 €;
;
"Liste des opérations du compte ""courant""";
;
`

func cp1252(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// utf8CA is the Crédit Agricole layout without the preamble, in UTF-8.
func utf8CA() dialect.Dialect {
	d := dialect.CreditAgricole()
	d.Encoding = "utf-8"
	d.SkipLines = 0
	return d
}

func TestLoad_CreditAgricole(t *testing.T) {
	content := caPreamble +
		"Date;Libellé;Débit euros;Crédit euros;\n" +
		"31/12/2019;\"PAIEMENT PAR CARTE X1234 CARREFOUR 30/12\n\n\nREF 0042\";12,50;;\n" +
		"02/01/2020;VIREMENT EN VOTRE FAVEUR SALAIRE;;3\u00a0000,00;\n"
	path := writeFile(t, "ca.csv", cp1252(t, content))

	rows, err := Load(path, dialect.CreditAgricole())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 12, first.Line)
	assert.Equal(t, "31/12/2019", first.Text("Date"))
	assert.Equal(t, "PAIEMENT PAR CARTE X1234 CARREFOUR 30/12\n\n\nREF 0042", first.Text("Libellé"))
	debit, _ := first.Get("Débit euros")
	require.True(t, debit.IsNumber())
	assert.Equal(t, "12.50", debit.Num.StringFixed(2))
	credit, _ := first.Get("Crédit euros")
	assert.True(t, credit.IsMissing())

	second := rows[1]
	assert.Equal(t, 16, second.Line)
	credit, _ = second.Get("Crédit euros")
	require.True(t, credit.IsNumber())
	assert.Equal(t, "3000.00", credit.Num.StringFixed(2))
	debit, _ = second.Get("Débit euros")
	assert.True(t, debit.IsMissing())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), dialect.CreditAgricole())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_PayPal(t *testing.T) {
	header := strings.Join([]string{
		"Date", "Heure", "Fuseau horaire", "Nom", "Type", "État", "Devise",
		"Avant commission", "Commission", "Net", "Titre de l'objet", "Impact sur le solde",
	}, "\t")
	row1 := strings.Join([]string{
		"31/12/2019", "12:34:56", "CET", "Boulangerie", "Paiement", "Terminé", "EUR",
		"-12,50", "0,00", "-12,50", "Pain", "Débit",
	}, "\t")
	row2 := strings.Join([]string{
		"01/01/2020", "08:00:00", "CET", "Client", "Paiement reçu", "Terminé", "EUR",
		"1\u00a0234,56", "", "1\u00a0234,56", "", "Crédit",
	}, "\t")
	content := "\ufeff" + header + "\n" + row1 + "\n" + row2 + "\n"

	rows, err := Read(strings.NewReader(content), "paypal.tsv", dialect.PayPal())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "31/12/2019", rows[0].Text("Date"), "BOM must not leak into the first column")
	net, _ := rows[0].Get("Net")
	require.True(t, net.IsNumber())
	assert.Equal(t, "-12.50", net.Num.StringFixed(2))

	net, _ = rows[1].Get("Net")
	require.True(t, net.IsNumber())
	assert.Equal(t, "1234.56", net.Num.StringFixed(2))
	commission, _ := rows[1].Get("Commission")
	assert.True(t, commission.IsMissing())
	assert.Equal(t, 3, rows[1].Line)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("Date;Libellé\n\xff\xfe;x\n"), "bad.csv", utf8CA())
	require.Error(t, err)

	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, "bad.csv", mie.Path)
	assert.Contains(t, err.Error(), "cannot decode as utf-8")
}

func TestParse_WrongSkipLines(t *testing.T) {
	content := caPreamble +
		"Date;Libellé;Débit euros;Crédit euros;\n" +
		"31/12/2019;PRELEVEMENT EDF;12,50;;\n"
	d := dialect.CreditAgricole()
	d.SkipLines = 9

	_, err := Parse(cp1252(t, content), "ca.csv", d)
	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, 10, mie.Line)
	assert.Contains(t, mie.Reason, "missing column")
}

func TestParse_FirstRowFieldCountMismatch(t *testing.T) {
	content := "Date;Libellé;Débit euros;Crédit euros\n" +
		"31/12/2019;PRELEVEMENT EDF;12,50\n"

	_, err := Parse([]byte(content), "ca.csv", utf8CA())
	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, 2, mie.Line)
	assert.Contains(t, mie.Reason, "first data row has 3 fields, header has 4")
}

func TestParse_LaterRowTooWide(t *testing.T) {
	content := "Date;Libellé;Débit euros;Crédit euros\n" +
		"31/12/2019;PRELEVEMENT EDF;12,50;\n" +
		"01/01/2020;A;B;C;D\n"

	_, err := Parse([]byte(content), "ca.csv", utf8CA())
	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, 3, mie.Line)
	assert.Contains(t, mie.Reason, "row has 5 fields")
}

func TestParse_ShortLaterRowPadsMissing(t *testing.T) {
	content := "Date;Libellé;Débit euros;Crédit euros\n" +
		"31/12/2019;PRELEVEMENT EDF;12,50;\n" +
		"01/01/2020;VIREMENT\n"

	rows, err := Parse([]byte(content), "ca.csv", utf8CA())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	v, ok := rows[1].Get("Crédit euros")
	assert.True(t, ok)
	assert.True(t, v.IsMissing())
}

func TestParse_DuplicateColumn(t *testing.T) {
	content := "Date;Libellé;Débit euros;Débit euros;Crédit euros\n"
	_, err := Parse([]byte(content), "ca.csv", utf8CA())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "Débit euros"`)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse([]byte("Date;Libellé;Débit euros;Crédit euros\n"), "ca.csv", utf8CA())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_NoHeader(t *testing.T) {
	_, err := Parse(cp1252(t, caPreamble), "ca.csv", dialect.CreditAgricole())
	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, "no header row", mie.Reason)
}

func TestParse_TooShortForSkip(t *testing.T) {
	_, err := Parse([]byte("one line\n"), "ca.csv", dialect.CreditAgricole())
	var mie *MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Contains(t, mie.Reason, "fewer than 10 lines")
}

func TestMalformedInputError_Message(t *testing.T) {
	err := &MalformedInputError{Path: "ca.csv", Line: 11, Reason: "missing column \"Date\""}
	assert.Equal(t, `malformed input ca.csv:11: missing column "Date"`, err.Error())

	inner := errors.New("boom")
	err = &MalformedInputError{Path: "ca.csv", Reason: "cannot decode", Err: inner}
	assert.Equal(t, "malformed input ca.csv: cannot decode: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
