package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantHeaders []string
		wantIsData  bool
	}{
		{
			name:        "Valid headers",
			input:       []string{"Name", "Age", "Email", "Phone"},
			wantHeaders: []string{"name", "age", "email", "phone"},
		},
		{
			name:        "Numeric data",
			input:       []string{"123", "456", "789", "101"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Date data",
			input:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Special characters",
			input:       []string{"User Name!", "Age#", "Email@", "Phone$"},
			wantHeaders: []string{"user_name", "age", "email", "phone"},
		},
		{
			name:        "Duplicate headers",
			input:       []string{"Name", "Name", "Name", "Age"},
			wantHeaders: []string{"name", "name_1", "name_2", "age"},
		},
		{
			name:        "Empty headers",
			input:       []string{"", "", "", ""},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Spanish headers",
			input:       []string{"Tipo Campaña", "Audiencia Objetivo", "fecha_campana"},
			wantHeaders: []string{"tipo_campana", "audiencia_objetivo", "fecha_campana"},
		},
		{
			name:        "Mixed data with numbers and text",
			input:       []string{"John", "30", "john@email.com", "123-456-7890"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeHeaders(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantHeaders, got.Headers)
			assert.Equal(t, tt.wantIsData, got.FirstRowIsData)
			assert.Equal(t, tt.input, got.FirstDataRow)
		})
	}
}

func TestAnalyzeHeadersEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeHeaders(nil))
}
