package language

import "testing"

func TestIdentifyScripts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tag
	}{
		{
			name: "hindi devanagari",
			text: "मुझे भुगतान करना है",
			want: TagHindi,
		},
		{
			name: "marathi devanagari with marathi markers",
			text: "मी मुंबई मध्ये आहे आणि मराठी बोलतो",
			want: TagMarathi,
		},
		{
			name: "devanagari tie defaults to hindi",
			text: "नमस्कार",
			want: TagHindi,
		},
		{
			name: "tamil script",
			text: "நான் பணம் செலுத்த வேண்டும்",
			want: TagTamil,
		},
		{
			name: "telugu script",
			text: "నేను డబ్బు చెల్లించాలి",
			want: TagTelugu,
		},
		{
			name: "plain english",
			text: "I will make the payment on Friday.",
			want: TagEnglish,
		},
		{
			name: "romanized hinglish",
			text: "mujhe emi chahiye abhi",
			want: TagHinglish,
		},
		{
			name: "hinglish function word",
			text: "payment kab karna hai",
			want: TagHinglish,
		},
	}

	id := NewIdentifier(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := id.Identify(tt.text); got != tt.want {
				t.Errorf("Identify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestIdentifyNeverUnsupported(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"!!!???",
		"1234567890",
		"Grüß Gott, wie geht es dir heute",
		"これはテストです",
	}

	supported := map[Tag]bool{}
	for _, tag := range SupportedTags() {
		supported[tag] = true
	}

	id := NewIdentifier(DefaultConfig())
	for _, in := range inputs {
		got := id.Identify(in)
		if !supported[got] {
			t.Errorf("Identify(%q) = %q, not a supported tag", in, got)
		}
	}
}

func TestIdentifyDeterministic(t *testing.T) {
	id := NewIdentifier(DefaultConfig())
	text := "mera outstanding amount kitna hai"
	first := id.Identify(text)
	for i := 0; i < 50; i++ {
		if got := id.Identify(text); got != first {
			t.Fatalf("Identify unstable: run %d got %s, first run %s", i, got, first)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name(TagHinglish); got != "Hinglish" {
		t.Errorf("Name(en-IN) = %q", got)
	}
	if got := Name(Tag("xx")); got != "Unknown" {
		t.Errorf("Name(xx) = %q", got)
	}
}
