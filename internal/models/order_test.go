package models

import "testing"

func validOrderRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		TableNumber:   3,
		PaymentMethod: PaymentCashOnDelivery,
		Items: []CartItem{
			{
				ID:       "line-1",
				MenuItem: MenuItem{ID: "m1", Name: "Zinger Burger", Price: 500},
				Quantity: 2,
			},
		},
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		wantErr bool
	}{
		{"valid request", func(r *CreateOrderRequest) {}, false},
		{"zero table number", func(r *CreateOrderRequest) { r.TableNumber = 0 }, true},
		{"negative table number", func(r *CreateOrderRequest) { r.TableNumber = -2 }, true},
		{"empty items", func(r *CreateOrderRequest) { r.Items = nil }, true},
		{"unknown payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "Barter" }, true},
		{"zero quantity item", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }, true},
		{"missing menu item id", func(r *CreateOrderRequest) { r.Items[0].MenuItem.ID = "" }, true},
		{"negative price", func(r *CreateOrderRequest) { r.Items[0].MenuItem.Price = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaymentMethod_IsValid(t *testing.T) {
	for _, method := range []PaymentMethod{PaymentEasyPaisa, PaymentJazzCash, PaymentBankTransfer, PaymentCashOnDelivery} {
		if !method.IsValid() {
			t.Errorf("expected %q to be valid", method)
		}
	}
	if PaymentMethod("Gold Bars").IsValid() {
		t.Error("expected unknown payment method to be invalid")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int64
		want  string
	}{
		{0, "Rs. 0"},
		{999, "Rs. 999"},
		{1000, "Rs. 1,000"},
		{1392, "Rs. 1,392"},
		{1250000, "Rs. 1,250,000"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.price, got, tt.want)
		}
	}
}
