package sources

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantColumns []string
		wantRecords []Record
		wantErr     bool
	}{
		{
			name:        "simple table",
			content:     "customer_id,email\nC001,a@x.com\nC002,b@x.com\n",
			wantColumns: []string{"customer_id", "email"},
			wantRecords: []Record{
				{"customer_id": "C001", "email": "a@x.com"},
				{"customer_id": "C002", "email": "b@x.com"},
			},
		},
		{
			name:        "empty rows are skipped",
			content:     "customer_id,email\n,\nC001,a@x.com\n",
			wantColumns: []string{"customer_id", "email"},
			wantRecords: []Record{
				{"customer_id": "C001", "email": "a@x.com"},
			},
		},
		{
			name:        "short rows keep known columns",
			content:     "customer_id,email,city\nC001,a@x.com\n",
			wantColumns: []string{"customer_id", "email", "city"},
			wantRecords: []Record{
				{"customer_id": "C001", "email": "a@x.com"},
			},
		},
		{
			name:        "header cells are trimmed",
			content:     "customer_id , email\nC001,a@x.com\n",
			wantColumns: []string{"customer_id", "email"},
			wantRecords: []Record{
				{"customer_id": "C001", "email": "a@x.com"},
			},
		},
		{
			name:    "empty file fails",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "input.csv", []byte(tt.content), 0o644))

			table, err := ReadCSV(fs, "input.csv")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, table.Columns)
			assert.Equal(t, tt.wantRecords, table.Records)
		})
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(afero.NewMemMapFs(), "nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open source file")
}

func TestRowKey(t *testing.T) {
	t.Parallel()

	table := &Table{Columns: []string{"a", "b"}}

	first := Record{"a": "1", "b": "2"}
	second := Record{"a": "1", "b": "2"}
	third := Record{"a": "1", "b": "3"}

	assert.Equal(t, table.RowKey(first), table.RowKey(second))
	assert.NotEqual(t, table.RowKey(first), table.RowKey(third))
}
