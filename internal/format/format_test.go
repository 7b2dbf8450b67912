package format

import (
	"testing"

	"stockbar/internal/models"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		sp   models.SessionPrice
		want string
	}{
		{
			name: "full",
			sp:   models.SessionPrice{Price: models.Float(100), Change: models.Float(1.5), ChangePercent: models.Float(0.01)},
			want: "100.00 (+1.00%, +1.50)",
		},
		{
			name: "price only",
			sp:   models.SessionPrice{Price: models.Float(100)},
			want: "100.00",
		},
		{
			name: "absent price",
			sp:   models.SessionPrice{Change: models.Float(1.5), ChangePercent: models.Float(0.01)},
			want: "N/A",
		},
		{
			name: "negative",
			sp:   models.SessionPrice{Price: models.Float(50), Change: models.Float(-2), ChangePercent: models.Float(-0.04)},
			want: "50.00 (-4.00%, -2.00)",
		},
		{
			name: "percent only",
			sp:   models.SessionPrice{Price: models.Float(100), ChangePercent: models.Float(0.0123)},
			want: "100.00 (+1.23%)",
		},
		{
			name: "change only",
			sp:   models.SessionPrice{Price: models.Float(100), Change: models.Float(0.45)},
			want: "100.00 (+0.45)",
		},
		{
			name: "present zero price",
			sp:   models.SessionPrice{Price: models.Float(0)},
			want: "0.00",
		},
		{
			name: "zero change is positive",
			sp:   models.SessionPrice{Price: models.Float(10), Change: models.Float(0)},
			want: "10.00 (+0.00)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.sp); got != tt.want {
				t.Errorf("Price() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPercent_Absent(t *testing.T) {
	if got := Percent(nil); got != "" {
		t.Errorf("Percent(nil) = %q, want empty", got)
	}
}

func TestChange_Absent(t *testing.T) {
	if got := Change(nil); got != "" {
		t.Errorf("Change(nil) = %q, want empty", got)
	}
}
