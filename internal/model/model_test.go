package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestEmailAddressesUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EmailAddresses
		wantErr bool
	}{
		{name: "single string", input: `"jo@example.com"`, want: EmailAddresses{"jo@example.com"}},
		{name: "list", input: `["a@example.com","b@example.com"]`, want: EmailAddresses{"a@example.com", "b@example.com"}},
		{name: "null", input: `null`, want: nil},
		{name: "number", input: `42`, wantErr: true},
		{name: "mixed list", input: `["a@example.com", 7]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got EmailAddresses
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestUserViewOmitsPassword(t *testing.T) {
	user := User{ID: "abc", UserName: "jdoe", Password: "$2a$10$hash", EmailAddress: EmailAddresses{"jo@example.com"}}

	body, err := json.Marshal(user.View())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["Password"]; ok {
		t.Fatalf("view leaked the password hash: %s", body)
	}
	if fields["userName"] != "jdoe" {
		t.Fatalf("userName = %v", fields["userName"])
	}
}

func TestRequestValidation(t *testing.T) {
	zero := 0.0

	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{
			name: "player with zero salary",
			req:  &AddPlayerRequest{ID: "x", FirstName: "Jo", LastName: "Ray", Salary: &zero},
		},
		{
			name:    "player without salary",
			req:     &AddPlayerRequest{ID: "x", FirstName: "Jo", LastName: "Ray"},
			wantErr: true,
		},
		{
			name: "team with empty roster",
			req:  &CreateTeamRequest{Name: "Sharks", Mascot: "Shark", Players: []PlayerRequest{}},
		},
		{
			name:    "team without roster",
			req:     &CreateTeamRequest{Name: "Sharks", Mascot: "Shark"},
			wantErr: true,
		},
		{
			name:    "team with incomplete player",
			req:     &CreateTeamRequest{Name: "Sharks", Mascot: "Shark", Players: []PlayerRequest{{FirstName: "Jo"}}},
			wantErr: true,
		},
		{
			name:    "signup without email",
			req:     &SignupRequest{UserName: "jdoe", Password: "Secret1!", EmailAddress: EmailAddresses{}},
			wantErr: true,
		},
		{
			name: "signup",
			req:  &SignupRequest{UserName: "jdoe", Password: "Secret1!", EmailAddress: EmailAddresses{"jo@example.com"}},
		},
		{
			name:    "signup with multibyte password over 72 bytes",
			req:     &SignupRequest{UserName: "jdoe", Password: strings.Repeat("é", 40), EmailAddress: EmailAddresses{"jo@example.com"}},
			wantErr: true,
		},
		{
			name:    "invoice without line items",
			req:     &AddInvoiceRequest{UserName: "jdoe", Subtotal: &zero, Tax: &zero, DateCreated: "2024-01-01", DateShipped: "2024-01-02"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestAddInvoiceRequestInvoice(t *testing.T) {
	subtotal, tax, price, qty := 100.0, 8.25, 25.0, 4.0
	req := &AddInvoiceRequest{
		UserName:    "jdoe",
		Subtotal:    &subtotal,
		Tax:         &tax,
		DateCreated: "2024-01-01",
		DateShipped: "2024-01-03",
		LineItems:   []LineItemRequest{{Name: "Widget", Price: &price, Quantity: &qty}},
	}

	invoice := req.Invoice()
	if invoice.Subtotal != 100 || invoice.Tax != 8.25 || len(invoice.LineItems) != 1 {
		t.Fatalf("invoice = %+v", invoice)
	}
	if invoice.LineItems[0] != (LineItem{Name: "Widget", Price: 25, Quantity: 4}) {
		t.Fatalf("line item = %+v", invoice.LineItems[0])
	}
}
