package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("en", []string{"ru", "en", "kk"})

	tests := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{"пусто", "", "", "en"},
		{"параметр lang", "ru", "kk", "ru"},
		{"регион сводится к языку", "ru-RU", "", "ru"},
		{"неподдерживаемый lang", "de", "kk", "kk"},
		{"q-значения", "", "de;q=1.0, ru;q=0.9, kk;q=0.8", "ru"},
		{"ничего не подошло", "", "de, fr", "en"},
		{"мусор в заголовке", "!!", "???", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.query, tt.accept))
		})
	}
}

func TestResolver_Supported(t *testing.T) {
	r := NewResolver("EN", []string{"ru", "en"})
	assert.Equal(t, "en", r.Default())
	assert.Equal(t, []string{"en", "ru"}, r.Supported())
	assert.True(t, r.IsSupported("RU"))
	assert.False(t, r.IsSupported("de"))
}
