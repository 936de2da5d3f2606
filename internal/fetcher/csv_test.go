package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCSV_Basic(t *testing.T) {
	t.Parallel()

	input := "COMPANY,DATES,DESCRIPTION\nAcme,5/8/2025,Hydraulic Press Model X\nGlobex,1/7/2025,Pot Mill 5L\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"COMPANY", "DATES", "DESCRIPTION"}, rows[0])
	assert.Equal(t, []string{"Acme", "5/8/2025", "Hydraulic Press Model X"}, rows[1])
}

func TestReadCSV_TrimSpace(t *testing.T) {
	t.Parallel()

	input := "COMPANY , OUTCOME \n Acme , no response \n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"COMPANY", "OUTCOME"}, rows[0])
	assert.Equal(t, []string{"Acme", "no response"}, rows[1])
}

func TestReadCSV_VariableFields(t *testing.T) {
	t.Parallel()

	input := "a,b,c\n1,2\n1,2,3,4\n"
	rows, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestReadCSV_Windows1252(t *testing.T) {
	t.Parallel()

	// "Café Exports" encoded as windows-1252.
	raw, err := charmap.Windows1252.NewEncoder().String("COMPANY\nCafé Exports\n")
	require.NoError(t, err)

	rows, err := ReadCSV(strings.NewReader(raw), CSVOptions{Encoding: "windows-1252"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Café Exports", rows[1][0])
}

func TestReadCSV_UnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("a\n"), CSVOptions{Encoding: "klingon-8"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader("a;b\n1;2\n"), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, rows[1])
}
