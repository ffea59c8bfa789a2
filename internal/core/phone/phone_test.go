package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "local format with leading zero",
			raw:  "08012345678",
			want: "+2348012345678",
		},
		{
			name: "country code without plus",
			raw:  "2348012345678",
			want: "+2348012345678",
		},
		{
			name: "already normalized is idempotent",
			raw:  "+2348012345678",
			want: "+2348012345678",
		},
		{
			name: "spaces and dashes stripped",
			raw:  "0801 234-5678",
			want: "+2348012345678",
		},
		{
			name: "formatted international input",
			raw:  "+234 (801) 234 5678",
			want: "+2348012345678",
		},
		{
			name: "bare subscriber number gets country code",
			raw:  "8012345678",
			want: "+2348012345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"08012345678", "+2349011234567", "2347012345678"}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestIsValidNigerianMobile(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{
			name:   "valid 080 number",
			number: "+2348012345678",
			want:   true,
		},
		{
			name:   "valid 090 number",
			number: "+2349012345678",
			want:   true,
		},
		{
			name:   "valid 071 number",
			number: "+2347112345678",
			want:   true,
		},
		{
			name:   "first digit outside 7-9",
			number: "+2341012345678",
			want:   false,
		},
		{
			name:   "second digit outside 0-1",
			number: "+2348212345678",
			want:   false,
		},
		{
			name:   "too short",
			number: "+234801234567",
			want:   false,
		},
		{
			name:   "too long",
			number: "+23480123456789",
			want:   false,
		},
		{
			name:   "missing plus",
			number: "2348012345678",
			want:   false,
		},
		{
			name:   "not normalized",
			number: "08012345678",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidNigerianMobile(tt.number); got != tt.want {
				t.Errorf("IsValidNigerianMobile(%q) = %v, want %v", tt.number, got, tt.want)
			}
		})
	}
}

func TestMaskForDisplay(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{
			name:   "canonical number",
			number: "+2348012345678",
			want:   "+234801...5678",
		},
		{
			name:   "short string untouched",
			number: "+23480",
			want:   "+23480",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskForDisplay(tt.number); got != tt.want {
				t.Errorf("MaskForDisplay(%q) = %q, want %q", tt.number, got, tt.want)
			}
		})
	}
}
