package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiration(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		valid   bool
		wantErr bool
	}{
		{"vacío es sin vencimiento", "", false, false},
		{"sentinel histórico 00", "00", false, false},
		{"fecha válida", "2027-03-01", true, false},
		{"formato inválido", "03/01/2027", false, true},
		{"basura", "pronto", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := entity.ParseExpiration(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.valid, e.Valid)
		})
	}
}

func TestExpirationEqual(t *testing.T) {
	none := entity.NoExpiration()
	march := entity.NewExpiration(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
	april := entity.NewExpiration(time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, none.Equal(entity.NoExpiration()))
	assert.True(t, march.Equal(march))
	assert.False(t, march.Equal(april))

	// Sin vencimiento nunca empata con una fecha real
	assert.False(t, none.Equal(march))
	assert.False(t, march.Equal(none))

	// La comparación es a nivel de día aunque las horas difieran
	sameDay := entity.NewExpiration(time.Date(2027, 3, 1, 23, 59, 0, 0, time.UTC))
	assert.True(t, march.Equal(sameDay))
}

func TestExpirationJSON(t *testing.T) {
	var e entity.ExpirationDate

	require.NoError(t, json.Unmarshal([]byte(`null`), &e))
	assert.False(t, e.Valid)

	require.NoError(t, json.Unmarshal([]byte(`"00"`), &e))
	assert.False(t, e.Valid)

	require.NoError(t, json.Unmarshal([]byte(`"2027-03-01"`), &e))
	assert.True(t, e.Valid)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t, `"2027-03-01"`, string(out))

	out, err = json.Marshal(entity.NoExpiration())
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestExpirationString(t *testing.T) {
	assert.Equal(t, "sin vencimiento", entity.NoExpiration().String())
	march := entity.NewExpiration(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2027-03-01", march.String())
}

func TestExpirationScan(t *testing.T) {
	var e entity.ExpirationDate

	require.NoError(t, e.Scan(nil))
	assert.False(t, e.Valid)

	require.NoError(t, e.Scan(time.Date(2027, 3, 1, 10, 30, 0, 0, time.UTC)))
	assert.True(t, e.Valid)
	assert.Equal(t, "2027-03-01", e.String())

	assert.Error(t, e.Scan(42))
}
