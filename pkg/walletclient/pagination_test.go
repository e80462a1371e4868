package walletclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// render flattens page items into a compact comparable form: numbers for
// pages, "…" for ellipsis markers.
func render(items []PageItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Ellipsis {
			out = append(out, "…")
			continue
		}
		s := ""
		if it.Current {
			s = "*"
		}
		out = append(out, s+itoa(it.Page))
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestBuildPageItems(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		{
			name:    "middle of a long list",
			current: 5, total: 10,
			want: []string{"1", "…", "4", "*5", "6", "…", "10"},
		},
		{
			name:    "two pages no ellipsis",
			current: 1, total: 2,
			want: []string{"*1", "2"},
		},
		{
			name:    "single page renders nothing",
			current: 1, total: 1,
			want: nil,
		},
		{
			name:    "zero pages renders nothing",
			current: 1, total: 0,
			want: nil,
		},
		{
			name:    "first page of long list",
			current: 1, total: 10,
			want: []string{"*1", "2", "…", "10"},
		},
		{
			name:    "last page of long list",
			current: 10, total: 10,
			want: []string{"1", "…", "9", "*10"},
		},
		{
			name:    "page three pins one without leading ellipsis",
			current: 3, total: 10,
			want: []string{"1", "2", "*3", "4", "…", "10"},
		},
		{
			name:    "near the end without trailing ellipsis",
			current: 8, total: 10,
			want: []string{"1", "…", "7", "*8", "9", "10"},
		},
		{
			name:    "current clamped into range",
			current: 99, total: 4,
			want: []string{"1", "…", "3", "*4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(BuildPageItems(tt.current, tt.total))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPageItemsCurrentIsDisabled(t *testing.T) {
	items := BuildPageItems(5, 10)

	var currents int
	for _, it := range items {
		if it.Current {
			currents++
			assert.Equal(t, 5, it.Page)
		}
		if it.Ellipsis {
			assert.Zero(t, it.Page, "ellipsis entries carry no page")
		}
	}
	assert.Equal(t, 1, currents)
}
