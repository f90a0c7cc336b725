package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnual(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		term   int
		want   float64
	}{
		{"small amount short term", 10000, 3, 12},
		{"amount boundary inclusive", 20000, 6, 12},
		{"term boundary exclusive", 20000, 7, 18},
		{"just over amount boundary", 20001, 6, 24},
		{"mid tier short term", 35000, 6, 24},
		{"mid tier long term", 35000, 12, 30},
		{"mid tier boundary inclusive", 50000, 6, 24},
		{"over mid tier short term", 50001, 6, 36},
		{"large amount any term", 100000, 60, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Annual(tt.amount, tt.term))
		})
	}
}
