package intent

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"payment inquiry english", "What is my outstanding amount?", PaymentInquiry},
		{"payment inquiry hindi", "मेरा भुगतान कितना बाकी है", PaymentInquiry},
		{"emi request", "मुझे EMI चाहिए", EMIRequest},
		{"settlement", "can we settle this with a discount", Settlement},
		{"dispute", "this loan is not mine, it's a mistake", Dispute},
		{"hardship", "I had a job loss and medical bills", Hardship},
		{"opt out", "STOP messaging me", OptOut},
		{"greeting", "namaste", Greeting},
		{"no match", "the weather is nice today", GeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

// The table encodes priority: a message hitting two keyword lists must resolve
// to the intent listed first.
func TestClassifyPriorityOrder(t *testing.T) {
	// "payment" (payment_inquiry) + "emi" (emi_request): payment_inquiry is
	// listed earlier, so it must win.
	if got := Classify("I want an EMI for this payment"); got != PaymentInquiry {
		t.Errorf("Classify(payment+emi) = %s, want %s", got, PaymentInquiry)
	}

	// payment_inquiry heads the table, so it also shadows hardship and
	// payment_promise keywords appearing in the same message.
	if got := Classify("payment problem"); got != PaymentInquiry {
		t.Errorf("Classify(payment+problem) = %s, want %s", got, PaymentInquiry)
	}
	if got := Classify("I will pay"); got != PaymentInquiry {
		t.Errorf("Classify(will pay) = %s, want %s", got, PaymentInquiry)
	}

	// dispute is listed before settlement.
	if got := Classify("this is wrong, reduce it"); got != Dispute {
		t.Errorf("Classify(wrong+reduce) = %s, want %s", got, Dispute)
	}

	// opt_out sits late in the table: an earlier intent's keyword in the same
	// message wins over "stop".
	if got := Classify("stop these emi messages"); got != EMIRequest {
		t.Errorf("Classify(stop+emi) = %s, want %s", got, EMIRequest)
	}
	if got := Classify("stop"); got != OptOut {
		t.Errorf("Classify(stop) = %s, want %s", got, OptOut)
	}
}

func TestExtractEntities(t *testing.T) {
	got := ExtractEntities("₹25,000 by tomorrow")
	if !reflect.DeepEqual(got.Amounts, []float64{25000}) {
		t.Errorf("Amounts = %v, want [25000]", got.Amounts)
	}
	if len(got.Dates) == 0 {
		t.Fatalf("Dates empty, want a relative-date match")
	}
	found := false
	for _, d := range got.Dates {
		if d == "tomorrow" {
			found = true
		}
	}
	if !found {
		t.Errorf("Dates = %v, want to contain %q", got.Dates, "tomorrow")
	}
}

func TestExtractEntitiesKinds(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount []float64
		wantDates  int
		wantPhones []string
	}{
		{
			name:       "numeric date and amount",
			text:       "pay 5000.50 on 15/09/2026",
			wantAmount: []float64{5000.50},
			wantDates:  1,
		},
		{
			name:       "phone number not double counted as amount",
			text:       "call me at +91 9876543210",
			wantPhones: []string{"9876543210"},
		},
		{
			name: "nothing extractable",
			text: "I do not understand",
		},
		{
			name:       "currency marker accepts small amount",
			text:       "I can pay ₹500 today",
			wantAmount: []float64{500},
		},
		{
			name:       "rs prefix accepts small amount",
			text:       "maybe rs 750 next week",
			wantAmount: []float64{750},
			wantDates:  1,
		},
		{
			name: "bare small number is not money",
			text: "I called you 500 times",
		},
		{
			name:       "hindi relative date",
			text:       "मैं कल ₹2,000 दूंगा",
			wantAmount: []float64{2000},
			wantDates:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.text)
			if !reflect.DeepEqual(got.Amounts, tt.wantAmount) {
				t.Errorf("Amounts = %v, want %v", got.Amounts, tt.wantAmount)
			}
			if len(got.Dates) != tt.wantDates {
				t.Errorf("Dates = %v, want %d entries", got.Dates, tt.wantDates)
			}
			if !reflect.DeepEqual(got.PhoneNumbers, tt.wantPhones) {
				t.Errorf("PhoneNumbers = %v, want %v", got.PhoneNumbers, tt.wantPhones)
			}
		})
	}
}

func TestSuggestedActions(t *testing.T) {
	actions := SuggestedActions(EMIRequest)
	if len(actions) == 0 || actions[0] != "calculate_emi" {
		t.Errorf("SuggestedActions(emi_request) = %v", actions)
	}
	fallback := SuggestedActions(GeneralInquiry)
	if !reflect.DeepEqual(fallback, []string{"general_assistance", "escalate_to_agent"}) {
		t.Errorf("SuggestedActions(general) = %v", fallback)
	}
}
