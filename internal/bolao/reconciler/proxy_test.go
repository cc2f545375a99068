package reconciler

import "testing"

func TestSplitProxyName(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantRest string
	}{
		{"NEI\nFlamengo 2x1 Vasco", "NEI", "Flamengo 2x1 Vasco"},
		{"  Tio João  \r\n1) 2x1\r\n2) 0x0", "Tio João", "1) 2x1\n2) 0x0"},
		{"Flamengo 2x1 Vasco", "", "Flamengo 2x1 Vasco"},
		{"1) 2x1\n2) 0x0", "", "1) 2x1\n2) 0x0"},
		{"Flamengo 2 a 1\n2) 0x0", "", "Flamengo 2 a 1\n2) 0x0"},
		{"um nome comprido demais para ser de alguém\n1) 2x1", "", "um nome comprido demais para ser de alguém\n1) 2x1"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, rest := SplitProxyName(tt.text, 30)
		if name != tt.wantName || rest != tt.wantRest {
			t.Errorf("SplitProxyName(%q) = (%q, %q), want (%q, %q)", tt.text, name, rest, tt.wantName, tt.wantRest)
		}
	}
}

func TestSplitProxyName_MaxLen(t *testing.T) {
	if name, _ := SplitProxyName("Maria\n1) 2x1", 4); name != "" {
		t.Errorf("SplitProxyName with maxLen 4 = %q, want no name", name)
	}
	if name, _ := SplitProxyName("Maria\n1) 2x1", 5); name != "Maria" {
		t.Errorf("SplitProxyName with maxLen 5 = %q, want %q", name, "Maria")
	}
}
