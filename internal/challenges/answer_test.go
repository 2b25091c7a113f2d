package challenges

import (
	"strings"
	"testing"
)

func TestSolutionsValidate(t *testing.T) {
	for ch := range All() {
		for _, d := range ch.Difficulties() {
			v, _ := ch.Variant(d)
			if !v.Check(v.Solution) {
				t.Errorf("%s: own solution %q rejected", v.ID, v.Solution)
			}
			if !Validate(v.ID, []byte(strings.ToUpper(v.Solution))) && v.ID != "reverse_engineering" {
				t.Errorf("%s: upper-cased solution rejected", v.ID)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		id     string
		answer string
		want   bool
	}{
		{"welcome", "Welcome to the Ghost Protocol", true},
		{"welcome", "  welcome   TO the ghost protocol  ", true},
		{"welcome", `"Welcome to the Ghost Protocol."`, true},
		{"welcome", "flag{welcome to the ghost protocol}", true},
		{"welcome", "welcome", false},
		{"welcome_tutorial", "welcome to the ghost protocol", true},
		{"port_scan", "6666", true},
		{"port_scan", "22", false},
		{"rot13_ghost", "rotation!", true},
		{"caesar_cipher_unknown_shift", "the answer is hello world", true},
		{"caesar_cipher_unknown_shift", "cryptography", false},
		{"sql_injection_basics", "' OR '1'='1' --", true},
		{"sql_injection_basics", "'OR 1=1--", true},
		{"sql_injection_basics", "admin'--", true},
		{"sql_injection_basics", "admin", false},
		{"jwt_token", "None-Algorithm", true},
		{"path_traversal", "../", true},
		{"path_traversal", `..\`, true},
		{"path_traversal", "/", false},
		{"command_injection", ";", true},
		{"command_injection", "&&", true},
		{"command_injection", ":", false},
		{"xss_attack", "<script>", true},
		{"api_key_leak", "a secret was leaked", true},
		{"api_key_leak", "leak", false},
		{"cors_bypass", "cross-origin resource sharing", true},
		{"osint_wayback_machine", "archive.org", true},
		{"steg_lsb_basics", "hidden_message", true},
		{"reverse_engineering", "o", true},
		{"reverse_engineering", "O", false},
		{"reverse_engineering", "0x6F", true},
		{"iot_mqtt", "1 2 3 4", true},
		{"iot_mqtt", "4321", false},
		{"final_protocol", "Phantom", true},
		{"nonexistent", "anything", false},
	}
	for _, tt := range tests {
		if got := ValidateString(tt.id, tt.answer); got != tt.want {
			t.Errorf("ValidateString(%q, %q) = %v, want %v", tt.id, tt.answer, got, tt.want)
		}
	}
}

func TestValidate_Adversarial(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("   "),
		[]byte("\x00\x01\x02"),
		{0xff, 0xfe, 0xfd},
		[]byte("​​"),
		[]byte("flag{}"),
		[]byte(`""`),
		[]byte("...!!!"),
		[]byte(strings.Repeat("a", MaxAnswerBytes+1)),
		[]byte(strings.Repeat("6", MaxAnswerBytes+1)),
	}
	for _, in := range inputs {
		for ch := range All() {
			if Validate(ch.ID, in) {
				t.Errorf("Validate(%q, %q) accepted adversarial input", ch.ID, truncate(in))
			}
		}
	}
}

func TestValidate_InvalidUTF8Stripped(t *testing.T) {
	in := append([]byte("66"), 0xff)
	in = append(in, []byte("66")...)
	if !Validate("port_scan", in) {
		t.Error("expected invalid byte to be dropped")
	}
}

func TestValidate_Fullwidth(t *testing.T) {
	// NFKC folds fullwidth digits.
	if !ValidateString("port_scan", "６６６６") {
		t.Error("fullwidth digits should normalize")
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Hello\tWorld  ", "hello world"},
		{"'quoted'", "quoted"},
		{"CTF{Inner}", "inner"},
		{"done!!", "done"},
		{"", ""},
		{strings.Repeat("x", MaxAnswerBytes+1), ""},
	}
	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRuleKind_String(t *testing.T) {
	if RuleContainsAll.String() != "contains_all" {
		t.Errorf("got %q", RuleContainsAll.String())
	}
	if RuleKind(99).String() != "unknown" {
		t.Errorf("got %q", RuleKind(99).String())
	}
}

func FuzzValidate(f *testing.F) {
	f.Add("welcome", []byte("welcome to the ghost protocol"))
	f.Add("sql_injection_basics", []byte("' OR '1'='1' --"))
	f.Add("reverse_engineering", []byte{0xff, 'o'})
	f.Add("nonexistent", []byte("flag{x}"))
	f.Fuzz(func(t *testing.T, id string, raw []byte) {
		_ = Validate(id, raw)
	})
}

func truncate(b []byte) string {
	if len(b) > 16 {
		return string(b[:16]) + "..."
	}
	return string(b)
}
