package pricing

import (
	"testing"

	"pharmakart/internal/core/types"
	"pharmakart/internal/domain/order"
)

func TestResolveCustomerClass_Signals(t *testing.T) {
	tests := []struct {
		name string
		o    *order.Order
		want CustomerClass
	}{
		{
			name: "nil order",
			o:    nil,
			want: Retail,
		},
		{
			name: "no signals",
			o:    &order.Order{},
			want: Retail,
		},
		{
			name: "userInfo role",
			o:    &order.Order{UserInfo: &order.UserInfo{Role: "wholesaler"}},
			want: Wholesale,
		},
		{
			name: "nested user role",
			o:    &order.Order{UserInfo: &order.UserInfo{User: &order.UserRef{Role: "wholesaler"}}},
			want: Wholesale,
		},
		{
			name: "top-level role",
			o:    &order.Order{Role: "wholesaler"},
			want: Wholesale,
		},
		{
			name: "userInfo userType",
			o:    &order.Order{UserInfo: &order.UserInfo{UserType: "wholesaler"}},
			want: Wholesale,
		},
		{
			name: "top-level userType",
			o:    &order.Order{UserType: "wholesaler"},
			want: Wholesale,
		},
		{
			name: "case and whitespace tolerant",
			o:    &order.Order{Role: "  Wholesaler "},
			want: Wholesale,
		},
		{
			name: "customer role is retail",
			o:    &order.Order{Role: "customer", UserInfo: &order.UserInfo{Role: "customer"}},
			want: Retail,
		},
		{
			name: "unrelated role containing substring is retail",
			o:    &order.Order{Role: "wholesaler-pending"},
			want: Retail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCustomerClass(tt.o); got != tt.want {
				t.Errorf("ResolveCustomerClass() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCustomerClass_StructuralFallback(t *testing.T) {
	// No role field anywhere, but a line carries a positive wholesale price.
	o := &order.Order{
		Cart: []order.CartLine{
			{Title: "Paracetamol 500mg", SellingPrice: types.NewAmount(20)},
			{Title: "Amoxicillin 250mg", WholesalePrice: types.NewAmount(80)},
		},
	}
	if got := ResolveCustomerClass(o); got != Wholesale {
		t.Errorf("expected wholesale from structural fallback, got %v", got)
	}

	// Zero and negative wholesale prices do not trigger the fallback.
	o = &order.Order{
		Cart: []order.CartLine{
			{Title: "A", WholesalePrice: types.NewAmount(0)},
			{Title: "B", WholesalePrice: types.NewAmount(-5)},
		},
	}
	if got := ResolveCustomerClass(o); got != Retail {
		t.Errorf("expected retail, got %v", got)
	}
}

func TestResolveCustomerClass_SignalPriority(t *testing.T) {
	// An explicit retail role on userInfo does not shadow a wholesaler
	// signal further down the chain; any wholesaler signal wins.
	o := &order.Order{
		Role:     "wholesaler",
		UserInfo: &order.UserInfo{Role: "customer"},
	}
	if got := ResolveCustomerClass(o); got != Wholesale {
		t.Errorf("expected wholesale, got %v", got)
	}
}

func TestCustomerClassString(t *testing.T) {
	if Retail.String() != "retail" {
		t.Errorf("Retail.String() = %q", Retail.String())
	}
	if Wholesale.String() != "wholesale" {
		t.Errorf("Wholesale.String() = %q", Wholesale.String())
	}
}
