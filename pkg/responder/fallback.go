package responder

import (
	"fmt"
	"strings"

	"ai-debtchat-be/pkg/language"
)

// FormatAmount renders rupee amounts with thousands separators and two
// decimals, e.g. 36000 -> "36,000.00".
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	pre := len(intPart) % 3
	if pre > 0 {
		b.WriteString(intPart[:pre])
	}
	for i := pre; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

type fallbackSet struct {
	greeting string
	payment  string
	help     string
	emi      string
	fallback string
}

// FallbackContent selects a deterministic templated reply by keyword rules.
// Used whenever no generative backend produced content.
func FallbackContent(message string, subject SubjectContext, tag language.Tag) string {
	name := orDefault(subject.Name, "Customer")
	amount := FormatAmount(subject.Outstanding)
	token := FormatAmount(subject.Outstanding * 0.1)
	emi3 := FormatAmount(subject.Outstanding / 3)
	emi6 := FormatAmount(subject.Outstanding / 6)
	emi12 := FormatAmount(subject.Outstanding / 12)

	var set fallbackSet
	switch tag {
	case language.TagHindi, language.TagMarathi:
		set = fallbackSet{
			greeting: fmt.Sprintf("नमस्ते %s! मैं आपकी ऋण वसूली में सहायता के लिए यहाँ हूँ। आपकी बकाया राशि ₹%s है। क्या आप आज कुछ भुगतान कर सकते हैं?", name, amount),
			payment:  fmt.Sprintf("धन्यवाद! क्या आप बाकी राशि ₹%s के लिए EMI की व्यवस्था करना चाहेंगे? हम 3, 6, या 12 महीने का प्लान दे सकते हैं।", amount),
			help:     fmt.Sprintf("मैं आपकी सहायता कर सकता हूँ। आपके पास ये विकल्प हैं:\n1. तुरंत भुगतान करें\n2. EMI प्लान बनाएं\n3. खाता विवरण देखें\n4. ग्राहक सेवा से बात करें\n\nआपकी बकाया राशि: ₹%s", amount),
			emi:      fmt.Sprintf("EMI प्लान के लिए:\n• 3 महीने: ₹%s प्रति महीना\n• 6 महीने: ₹%s प्रति महीना\n• 12 महीने: ₹%s प्रति महीना\n\nकौन सा प्लान आपको सूट करता है?", emi3, emi6, emi12),
			fallback: fmt.Sprintf("मैं समझ गया। आपकी बकाया राशि ₹%s है। हम आपकी स्थिति समझते हैं। क्या आप आज कम से कम ₹%s का भुगतान कर सकते हैं?", amount, token),
		}
	case language.TagHinglish:
		set = fallbackSet{
			greeting: fmt.Sprintf("Hello %s! Main aapki help karne ke liye yahan hun. Aapka outstanding amount ₹%s hai. Kya aap aaj kuch payment kar sakte hain?", name, amount),
			payment:  fmt.Sprintf("Thank you! Kya aap baaki amount ₹%s ke liye EMI set up karna chahenge? Hum 3, 6, ya 12 month ke plans dete hain.", amount),
			help:     fmt.Sprintf("Main aapki help kar sakta hun:\n1. Abhi payment kariye\n2. EMI plan banaiye\n3. Account details dekhiye\n4. Customer service se baat kariye\n\nAapka outstanding amount: ₹%s", amount),
			emi:      fmt.Sprintf("EMI Plan Options:\n• 3 months: ₹%s per month\n• 6 months: ₹%s per month\n• 12 months: ₹%s per month\n\nKaun sa plan aapko theek lagta hai?", emi3, emi6, emi12),
			fallback: fmt.Sprintf("Main samajh gaya. Aapka outstanding amount ₹%s hai. Kya aap aaj kam se kam ₹%s ka payment kar sakte hain?", amount, token),
		}
	default:
		set = fallbackSet{
			greeting: fmt.Sprintf("Hello %s! I'm here to help with your debt recovery. Your outstanding amount is ₹%s. Can you make a payment today?", name, amount),
			payment:  fmt.Sprintf("Thank you for your payment! Would you like to set up an EMI plan for the remaining amount of ₹%s? We offer 3, 6, or 12-month plans.", amount),
			help:     fmt.Sprintf("I can help you with:\n1. Make immediate payment\n2. Set up EMI plan\n3. View account details\n4. Speak to customer service\n\nYour outstanding amount: ₹%s", amount),
			emi:      fmt.Sprintf("EMI Plan Options:\n• 3 months: ₹%s per month\n• 6 months: ₹%s per month\n• 12 months: ₹%s per month\n\nWhich plan works for you?", emi3, emi6, emi12),
			fallback: fmt.Sprintf("I understand your situation. Your outstanding amount is ₹%s. We want to help you. Can you make at least ₹%s payment today?", amount, token),
		}
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "hello", "hi", "नमस्ते", "हैलो", "start"):
		return set.greeting
	case containsAny(lower, "emi", "installment", "किस्त", "plan", "चाहिए"):
		return set.emi
	case containsAny(lower, "payment", "pay", "भुगतान", "पैसे", "paid"):
		return set.payment
	case containsAny(lower, "help", "सहायता", "मदद", "option"):
		return set.help
	default:
		return set.fallback
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
