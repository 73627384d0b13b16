package invoice

import (
	"testing"
	"time"

	"pharmakart/internal/core/id"
	"pharmakart/internal/domain/pricing"
)

func TestFormatNumber(t *testing.T) {
	cfg := pricing.DefaultConfig()
	created := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "raw sequence gets prefix and year",
			raw:  "0892",
			want: "FK/2026/0892",
		},
		{
			name: "already formatted is returned unchanged",
			raw:  "FK/2026/0892",
			want: "FK/2026/0892",
		},
		{
			name: "formatted number from another year survives",
			raw:  "FK/2024/0031",
			want: "FK/2024/0031",
		},
		{
			name: "empty reference renders placeholder",
			raw:  "",
			want: "-",
		},
		{
			name: "whitespace-only reference renders placeholder",
			raw:  "   ",
			want: "-",
		},
		{
			name: "surrounding whitespace trimmed before formatting",
			raw:  " 0892 ",
			want: "FK/2026/0892",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.raw, created, cfg); got != tt.want {
				t.Errorf("FormatNumber(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatNumber_Idempotent(t *testing.T) {
	cfg := pricing.DefaultConfig()
	created := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	once := FormatNumber("0892", created, cfg)
	twice := FormatNumber(once, created, cfg)
	if once != twice {
		t.Errorf("re-formatting changed number: %q -> %q", once, twice)
	}
}

func TestFormatNumber_ZeroTimeUsesCurrentYear(t *testing.T) {
	cfg := pricing.DefaultConfig()

	got := FormatNumber("0001", time.Time{}, cfg)
	want := "FK/" + time.Now().Format("2006") + "/0001"
	if got != want {
		t.Errorf("FormatNumber with zero time = %q, want %q", got, want)
	}
}

func TestDeepLink(t *testing.T) {
	cfg := pricing.DefaultConfig()
	orderID := id.MustParse("0195c9a2-7b3e-7cc0-8a51-3f2d4e5a6b7c")

	got := DeepLink(orderID, cfg)
	want := "https://api.pharmakart.in/api/v1/orders/0195c9a2-7b3e-7cc0-8a51-3f2d4e5a6b7c"
	if got != want {
		t.Errorf("DeepLink() = %q, want %q", got, want)
	}
}

func TestDeepLink_TrailingSlashOrigin(t *testing.T) {
	cfg := pricing.DefaultConfig()
	cfg.DeepLinkOrigin = "https://staging.pharmakart.in/"
	orderID := id.MustParse("0195c9a2-7b3e-7cc0-8a51-3f2d4e5a6b7c")

	got := DeepLink(orderID, cfg)
	want := "https://staging.pharmakart.in/api/v1/orders/0195c9a2-7b3e-7cc0-8a51-3f2d4e5a6b7c"
	if got != want {
		t.Errorf("DeepLink() = %q, want %q", got, want)
	}
}

func TestDeepLink_NilID(t *testing.T) {
	if got := DeepLink(id.Nil(), pricing.DefaultConfig()); got != "" {
		t.Errorf("DeepLink(nil) = %q, want empty", got)
	}
}

func TestDeepLink_ConsistentWithNumber(t *testing.T) {
	// The deep link and the invoice number derive from the same order
	// record; rendering twice yields the same pair.
	cfg := pricing.DefaultConfig()
	orderID := id.New()
	created := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	n1, l1 := FormatNumber("0100", created, cfg), DeepLink(orderID, cfg)
	n2, l2 := FormatNumber("0100", created, cfg), DeepLink(orderID, cfg)
	if n1 != n2 || l1 != l2 {
		t.Errorf("re-render drifted: (%q,%q) vs (%q,%q)", n1, l1, n2, l2)
	}
}
