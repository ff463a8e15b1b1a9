package intent

import "strings"

// Intent is a coarse classification of what a message is asking for.
type Intent string

const (
	PaymentInquiry Intent = "payment_inquiry"
	PaymentPromise Intent = "payment_promise"
	Dispute        Intent = "dispute"
	Hardship       Intent = "hardship"
	Settlement     Intent = "settlement"
	EMIRequest     Intent = "emi_request"
	OptOut         Intent = "opt_out"
	Greeting       Intent = "greeting"
	GeneralInquiry Intent = "general_inquiry"
)

// keywordEntry pairs an intent with its trigger keywords. The slice order is
// the priority order: the first intent with any keyword hit wins.
type keywordEntry struct {
	intent   Intent
	keywords []string
}

var keywordTable = []keywordEntry{
	{PaymentInquiry, []string{
		"payment", "pay", "amount", "due", "outstanding",
		"भुगतान", "पैसा", "रकम", "पेमेंट", "baki",
	}},
	{PaymentPromise, []string{
		"will pay", "can pay", "tomorrow", "next week",
		"भुगतान करूंगा", "पैसे दूंगा", "kal dunga", "agle hafte",
	}},
	{Dispute, []string{
		"wrong", "mistake", "not mine", "dispute", "गलत", "गलती", "galat",
	}},
	{Hardship, []string{
		"problem", "difficulty", "job loss", "medical", "समस्या", "परेशानी", "pareshani",
	}},
	{Settlement, []string{
		"settle", "settlement", "discount", "reduce", "समझौता", "कम करो",
	}},
	{EMIRequest, []string{
		"installment", "emi", "monthly", "किस्त", "मासिक", "kisht",
	}},
	{OptOut, []string{
		"stop", "unsubscribe", "opt out", "don't contact", "do not contact",
		"बंद करो", "संपर्क न करें", "band karo",
	}},
	{Greeting, []string{
		"hello", "hi ", "namaste", "नमस्ते", "हैलो", "vanakkam", "start",
	}},
}

// Classify runs the ordered keyword match over the lower-cased text. No hit
// falls through to general_inquiry.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.intent
			}
		}
	}
	return GeneralInquiry
}

var actionTable = map[Intent][]string{
	PaymentInquiry: {"show_payment_options", "calculate_interest", "payment_history"},
	PaymentPromise: {"schedule_followup", "send_payment_link", "confirm_amount"},
	Dispute:        {"escalate_to_agent", "request_documents", "schedule_call"},
	Hardship:       {"offer_emi_plan", "discuss_settlement", "financial_counseling"},
	Settlement:     {"calculate_settlement", "get_approval", "generate_offer"},
	EMIRequest:     {"calculate_emi", "show_emi_options", "setup_autopay"},
	OptOut:         {"confirm_opt_out"},
	Greeting:       {"show_payment_options", "show_account_summary"},
}

// SuggestedActions returns the fixed next-step list for an intent.
func SuggestedActions(in Intent) []string {
	if actions, ok := actionTable[in]; ok {
		return actions
	}
	return []string{"general_assistance", "escalate_to_agent"}
}
