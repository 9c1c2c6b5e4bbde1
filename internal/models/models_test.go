package models

import "testing"

func TestParseGroupKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    GroupKey
		wantErr bool
	}{
		{"empty defaults", "", GroupCustomers, false},
		{"exact", "executives", GroupExecutives, false},
		{"mixed case and space", "  Consultants ", GroupConsultants, false},
		{"unknown", "investors", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGroupKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGroupKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGroupKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGroupKeyNextPrevWrap(t *testing.T) {
	if got := GroupConsultants.Next(); got != GroupCustomers {
		t.Errorf("Next() = %q, want %q", got, GroupCustomers)
	}
	if got := GroupCustomers.Prev(); got != GroupConsultants {
		t.Errorf("Prev() = %q, want %q", got, GroupConsultants)
	}
	if got := GroupCustomers.Next(); got != GroupExecutives {
		t.Errorf("Next() = %q, want %q", got, GroupExecutives)
	}
}

func TestScenarioCardStyle(t *testing.T) {
	price := 4990
	tests := []struct {
		name     string
		scenario Scenario
		want     CardStyle
		awaits   bool
	}{
		{
			name: "products win over product image",
			scenario: Scenario{
				Product:  ProductInfo{Image: "/images/a.png", Title: "A"},
				Products: []ProductInfo{{Image: "/images/b.png", Title: "B", Price: &price}},
			},
			want: CardCarousel,
		},
		{
			name:     "image makes a chart",
			scenario: Scenario{Product: ProductInfo{Image: "/images/chart.png"}},
			want:     CardChart,
			awaits:   true,
		},
		{
			name:     "no image is a table",
			scenario: Scenario{Product: ProductInfo{Title: "Summary"}},
			want:     CardTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scenario.CardStyle(); got != tt.want {
				t.Errorf("CardStyle() = %q, want %q", got, tt.want)
			}
			if got := tt.scenario.AwaitsImage(); got != tt.awaits {
				t.Errorf("AwaitsImage() = %v, want %v", got, tt.awaits)
			}
		})
	}
}

func TestFormatTHB(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "฿0"},
		{990, "฿990"},
		{8990, "฿8,990"},
		{1234567, "฿1,234,567"},
		{-4990, "-฿4,990"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTHB(tt.in); got != tt.want {
				t.Errorf("FormatTHB(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
